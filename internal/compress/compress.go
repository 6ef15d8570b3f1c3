package compress

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownCodec = errors.New("unknown compression codec")

// Codec compresses a message into a self-delimiting buffer and back.
// Decompress must fail on input it did not produce.
type Codec interface {
	// Name returns the codec identifier used in configuration
	Name() string

	Compress(data []byte) ([]byte, error)

	Decompress(data []byte) ([]byte, error)
}

// NewFunc is a constructor function for creating codecs
type NewFunc func() Codec

// Registry maps codec names to constructor functions
var Registry = map[string]NewFunc{
	"lz4":  NewLZ4,
	"zstd": NewZstd,
}

// Default is the codec used when none is configured.
const Default = "lz4"

// New creates a codec by name. An empty name selects Default.
func New(name string) (Codec, error) {
	if name == "" {
		name = Default
	}
	fn, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownCodec, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
