package conf

import (
	"fmt"
	"slices"

	"pvdcrypt/internal/compress"
	"pvdcrypt/internal/flog"
	"pvdcrypt/internal/pvd"
)

// Stego holds the codec parameters. Both ends of an exchange must agree on
// every field here; none of them are stored in the image.
type Stego struct {
	// Seed of the pair traversal shuffle (default 42)
	Seed *uint32 `yaml:"seed"`

	// Compression codec: lz4 (default) or zstd
	Compression string `yaml:"compression"`
}

func (s *Stego) setDefaults() {
	if s.Seed == nil {
		seed := pvd.DefaultSeed
		s.Seed = &seed
	}
	if s.Compression == "" {
		s.Compression = compress.Default
	}
}

func (s *Stego) validate() []error {
	var errors []error

	if !slices.Contains(compress.Names(), s.Compression) {
		errors = append(errors, fmt.Errorf("stego.compression must be one of %v", compress.Names()))
	}
	if s.Seed != nil && *s.Seed != pvd.DefaultSeed {
		flog.Warnf("stego.seed is %d: images will not extract with tools using the default seed %d", *s.Seed, pvd.DefaultSeed)
	}
	return errors
}
