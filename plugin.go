package mpd

// PluginDecoder decodes the records of decoders.
var PluginDecoder = FromMap("plugin", decodePlugin)

// Plugin is a decoder plugin with the suffixes and MIME types it handles.
type Plugin struct {
	Name      string
	Suffixes  []string
	MimeTypes []string
}

func decodePlugin(f Fields) (Plugin, error) {
	name, err := f.String("plugin")
	if err != nil {
		return Plugin{}, err
	}
	return Plugin{
		Name:      name,
		Suffixes:  f.Values("suffix"),
		MimeTypes: f.Values("mime_type"),
	}, nil
}
