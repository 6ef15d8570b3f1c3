package stego

import (
	"fmt"

	"pvdcrypt/internal/frame"
	"pvdcrypt/internal/pvd"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrFormat is returned when the image does not start with the payload
	// marker: nothing was embedded, or a different seed was used.
	ErrFormat = frame.ErrFormat

	// ErrIncomplete is returned when the image runs out of pixel pairs
	// before the declared payload length.
	ErrIncomplete = frame.ErrIncomplete

	// ErrCapacity is returned by Embed, before any pixel is modified, when
	// the framed message needs more bits than the image holds.
	ErrCapacity = pvd.ErrCapacity

	// ErrDecompression is returned when the decrypted payload is not valid
	// compressed data, usually because the password is wrong.
	ErrDecompression = frame.ErrDecompress

	// ErrDecode is returned when the decompressed payload is not UTF-8.
	ErrDecode = frame.ErrDecode
)

// CapacityError carries the needed and available bit counts.
type CapacityError = pvd.CapacityError

// ExtractionError wraps a failure that happened after the frame was located:
// decryption, decompression or decoding. There is no authentication tag, so
// a wrong password and a corrupted image look the same here.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
