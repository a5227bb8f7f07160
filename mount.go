package mpd

var (
	// MountDecoder decodes the records of listmounts.
	MountDecoder = FromMap("mount", decodeMount)

	// NeighborDecoder decodes the records of listneighbors.
	NeighborDecoder = FromMap("neighbor", decodeNeighbor)
)

// Mount is a storage mounted in the music directory. The root mount has
// an empty Name.
type Mount struct {
	Name    string
	Storage string
}

// Neighbor is a storage discovered on the network.
type Neighbor struct {
	URI  string
	Name string
}

func decodeMount(f Fields) (Mount, error) {
	name, err := f.String("mount")
	if err != nil {
		return Mount{}, err
	}
	storage, err := f.String("storage")
	if err != nil {
		return Mount{}, err
	}
	return Mount{Name: name, Storage: storage}, nil
}

func decodeNeighbor(f Fields) (Neighbor, error) {
	uri, err := f.String("neighbor")
	if err != nil {
		return Neighbor{}, err
	}
	name, err := f.String("name")
	if err != nil {
		return Neighbor{}, err
	}
	return Neighbor{URI: uri, Name: name}, nil
}
