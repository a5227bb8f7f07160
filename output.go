package mpd

// OutputDecoder decodes the records of outputs.
var OutputDecoder = FromMap("outputid", decodeOutput)

// Output is an audio output.
type Output struct {
	ID      uint32
	Name    string
	Enabled bool
	Plugin  string // empty before protocol 0.21
}

func decodeOutput(f Fields) (Output, error) {
	id, err := f.Uint("outputid")
	if err != nil {
		return Output{}, err
	}
	name, err := f.String("outputname")
	if err != nil {
		return Output{}, err
	}
	enabled, err := f.Bool("outputenabled")
	if err != nil {
		return Output{}, err
	}
	return Output{
		ID:      id,
		Name:    name,
		Enabled: enabled,
		Plugin:  f.Optional("plugin"),
	}, nil
}
