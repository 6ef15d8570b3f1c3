// Package frame builds and parses the container hidden in an image:
//
//	marker (1) | ciphertext length (4, big-endian) | salt (16) | nonce (16) | ciphertext
//
// Read most-significant-bit first, the frame bytes are the bit stream written
// into pixel pairs.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/awnumar/memguard"

	"pvdcrypt/internal/compress"
	"pvdcrypt/internal/crypt"
)

const (
	Marker byte = 0x45

	// Sentinel terminates the message inside the compressed envelope.
	Sentinel = "||END||"

	HeaderSize = 1 + 4
	HeaderBits = HeaderSize * 8
	MarkerBits = 8
)

var (
	ErrFormat     = errors.New("missing payload marker or wrong file format")
	ErrIncomplete = errors.New("incomplete payload data")
	ErrDecompress = errors.New("payload decompression failed")
	ErrDecode     = errors.New("payload is not valid UTF-8")
	ErrTooLarge   = errors.New("ciphertext too large to frame")
)

type Frame struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// TotalBits is the size in bits of a frame carrying length ciphertext bytes.
func TotalBits(length uint32) int64 {
	return HeaderBits + (crypt.SaltSize+crypt.NonceSize+int64(length))*8
}

// MarshalBinary lays the frame out in wire order.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if len(f.Salt) != crypt.SaltSize || len(f.Nonce) != crypt.NonceSize {
		return nil, fmt.Errorf("invalid salt or nonce size: %d/%d", len(f.Salt), len(f.Nonce))
	}
	if uint64(len(f.Ciphertext)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(f.Ciphertext))
	}

	out := make([]byte, 0, HeaderSize+crypt.SaltSize+crypt.NonceSize+len(f.Ciphertext))
	out = append(out, Marker)
	out = binary.BigEndian.AppendUint32(out, uint32(len(f.Ciphertext)))
	out = append(out, f.Salt...)
	out = append(out, f.Nonce...)
	out = append(out, f.Ciphertext...)
	return out, nil
}

// CheckMarker reports ErrFormat unless b starts with the marker byte.
func CheckMarker(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: need %d bits for the marker", ErrIncomplete, MarkerBits)
	}
	if b[0] != Marker {
		return fmt.Errorf("%w: got %#02x", ErrFormat, b[0])
	}
	return nil
}

// ParseHeader checks the marker and returns the declared ciphertext length.
func ParseHeader(b []byte) (uint32, error) {
	if err := CheckMarker(b); err != nil {
		return 0, err
	}
	if len(b) < HeaderSize {
		return 0, fmt.Errorf("%w: need %d bits for the header", ErrIncomplete, HeaderBits)
	}
	return binary.BigEndian.Uint32(b[1:HeaderSize]), nil
}

// Parse decodes a frame from data. Bytes past the declared length are ignored.
func Parse(data []byte) (*Frame, error) {
	length, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	total := TotalBits(length)
	if have := int64(len(data)) * 8; have < total {
		return nil, fmt.Errorf("%w: have %d bits, need %d", ErrIncomplete, have, total)
	}
	body := data[HeaderSize : total/8]

	return &Frame{
		Salt:       body[:crypt.SaltSize],
		Nonce:      body[crypt.SaltSize : crypt.SaltSize+crypt.NonceSize],
		Ciphertext: body[crypt.SaltSize+crypt.NonceSize:],
	}, nil
}

// Seal appends the sentinel, compresses, encrypts and frames message.
func Seal(message, password string, codec compress.Codec, random io.Reader) ([]byte, error) {
	envelope := []byte(message + Sentinel)
	defer memguard.WipeBytes(envelope)

	compressed, err := codec.Compress(envelope)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(compressed)

	sealed, err := crypt.Encrypt(random, compressed, password)
	if err != nil {
		return nil, err
	}

	f := &Frame{Salt: sealed.Salt, Nonce: sealed.Nonce, Ciphertext: sealed.Ciphertext}
	return f.MarshalBinary()
}

// Open reverses Seal. Without authentication a wrong password usually
// surfaces as ErrDecompress, occasionally as ErrDecode.
func Open(data []byte, password string, codec compress.Codec) (string, error) {
	f, err := Parse(data)
	if err != nil {
		return "", err
	}

	compressed, err := crypt.Decrypt(&crypt.Sealed{Salt: f.Salt, Nonce: f.Nonce, Ciphertext: f.Ciphertext}, password)
	if err != nil {
		return "", err
	}
	defer memguard.WipeBytes(compressed)

	envelope, err := codec.Decompress(compressed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	if !utf8.Valid(envelope) {
		return "", ErrDecode
	}

	message, _, _ := strings.Cut(string(envelope), Sentinel)
	return message, nil
}
