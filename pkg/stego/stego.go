// Package stego hides encrypted text in RGB images with Pixel Value
// Differencing.
//
// # Pipeline
//
// Embed appends a terminator to the message, compresses it, encrypts it with
// ChaCha20 under a PBKDF2-SHA256 key (100,000 iterations, random 16-byte
// salt and nonce), frames it as
//
//	0x45 | length (4, big-endian) | salt | nonce | ciphertext
//
// and writes the frame bits into the red-channel differences of horizontal
// pixel pairs, visited in a seeded pseudo-random order. Extract reverses each
// step.
//
// # Limitations
//
// The cipher is not authenticated. A wrong password is only noticed because
// the decrypted bytes fail to decompress or decode, and it cannot be told
// apart from a damaged image. The stego image must be stored losslessly
// (PNG, BMP); any lossy re-encode destroys the payload.
package stego

import (
	"errors"
	"image"
	"sync"

	"pvdcrypt/internal/compress"
	"pvdcrypt/internal/flog"
	"pvdcrypt/internal/frame"
	"pvdcrypt/internal/pvd"
)

// Codec embeds and extracts messages. It is safe for concurrent use as long
// as concurrent calls work on different images.
type Codec struct {
	cfg   *codecConfig
	codec compress.Codec

	mu     sync.Mutex
	orders map[image.Point][]pvd.Pair
}

func New(opts ...Option) (*Codec, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	codec, err := compress.New(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Codec{
		cfg:    cfg,
		codec:  codec,
		orders: make(map[image.Point][]pvd.Pair),
	}, nil
}

// Seed returns the traversal seed in use.
func (c *Codec) Seed() uint32 {
	return c.cfg.seed
}

// order returns the cached traversal for img's size. Callers must not
// modify the returned slice.
func (c *Codec) order(img *image.RGBA) []pvd.Pair {
	size := img.Bounds().Size()

	c.mu.Lock()
	defer c.mu.Unlock()
	if o, ok := c.orders[size]; ok {
		return o
	}
	o := pvd.Traversal(size.X, size.Y, c.cfg.seed)
	c.orders[size] = o
	return o
}

// Capacity returns how many bits img can carry.
func (c *Codec) Capacity(img *image.RGBA) int64 {
	return pvd.Capacity(img, c.order(img))
}

// MaxCiphertext returns the largest ciphertext, in bytes, that a frame can
// carry in capacityBits bits. Compression overhead is on top of the message.
func MaxCiphertext(capacityBits int64) int64 {
	n := capacityBits/8 - frame.TotalBits(0)/8
	if n < 0 {
		return 0
	}
	return n
}

// Embed hides message in img in place. On error img is unchanged.
func (c *Codec) Embed(img *image.RGBA, message, password string) error {
	payload, err := frame.Seal(message, password, c.codec, c.cfg.random)
	if err != nil {
		return err
	}

	if err := pvd.Embed(img, payload, c.order(img)); err != nil {
		return err
	}
	flog.Debugf("embedded %d payload bits into %dx%d image", len(payload)*8, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// Extract recovers a message hidden by Embed with the same password, seed
// and compression.
func (c *Codec) Extract(img *image.RGBA, password string) (string, error) {
	data, err := pvd.Extract(img, c.order(img))
	if err != nil {
		return "", err
	}
	flog.Debugf("located %d-bit payload", len(data)*8)

	message, err := frame.Open(data, password, c.codec)
	if err != nil {
		return "", &ExtractionError{Err: err}
	}
	return message, nil
}

var (
	defaultOnce  sync.Once
	defaultCodec *Codec
)

func getDefault() *Codec {
	defaultOnce.Do(func() {
		c, err := New()
		if err != nil {
			panic(err)
		}
		defaultCodec = c
	})
	return defaultCodec
}

// Embed hides message in img with the default seed and compression.
func Embed(img *image.RGBA, message, password string) error {
	return getDefault().Embed(img, message, password)
}

// Extract recovers a message hidden with the default seed and compression.
func Extract(img *image.RGBA, password string) (string, error) {
	return getDefault().Extract(img, password)
}

// IsExtractionError reports whether err came from decrypting, decompressing
// or decoding a located payload.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
