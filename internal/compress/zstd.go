package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

type Zstd struct{}

func NewZstd() Codec {
	return &Zstd{}
}

func (c *Zstd) Name() string {
	return "zstd"
}

func (c *Zstd) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func (c *Zstd) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}
