package stego

import (
	"io"

	"pvdcrypt/internal/compress"
	"pvdcrypt/internal/pvd"
)

// DefaultSeed is the traversal seed used when WithSeed is not given.
const DefaultSeed = pvd.DefaultSeed

// codecConfig holds configuration for a Codec.
type codecConfig struct {
	seed        uint32
	compression string
	random      io.Reader
}

// Option configures a Codec.
type Option func(*codecConfig)

// WithSeed sets the pair traversal seed. Embed and Extract must agree on it.
func WithSeed(seed uint32) Option {
	return func(c *codecConfig) {
		c.seed = seed
	}
}

// WithCompression selects the message compression codec ("lz4" or "zstd").
func WithCompression(name string) Option {
	return func(c *codecConfig) {
		c.compression = name
	}
}

// WithRandom replaces crypto/rand as the salt and nonce source.
func WithRandom(r io.Reader) Option {
	return func(c *codecConfig) {
		c.random = r
	}
}

func defaultConfig() *codecConfig {
	return &codecConfig{
		seed:        DefaultSeed,
		compression: compress.Default,
	}
}
