package pvd

import (
	"fmt"
	"image"

	"pvdcrypt/internal/frame"
	"pvdcrypt/internal/pkg/bitstream"
)

// Extract collects bits from img in traversal order until it holds the whole
// frame declared by the header, and returns exactly the frame bytes.
func Extract(img *image.RGBA, order []Pair) ([]byte, error) {
	w := bitstream.NewWriter(frame.HeaderSize)
	need := int64(-1)
	markerChecked := false

	for _, p := range order {
		if need >= 0 && w.Len() >= need {
			break
		}

		p1, p2 := redPair(img, p)
		diff := absDiff(p1, p2)
		k := CapacityBits(diff)
		w.WriteBits(uint32(diff%(1<<k)), k)

		if !markerChecked && w.Len() >= frame.MarkerBits {
			if err := frame.CheckMarker(w.Bytes()); err != nil {
				return nil, err
			}
			markerChecked = true
		}
		if need < 0 && w.Len() >= frame.HeaderBits {
			length, err := frame.ParseHeader(w.Bytes())
			if err != nil {
				return nil, err
			}
			need = frame.TotalBits(length)
		}
	}

	if !markerChecked {
		return nil, fmt.Errorf("%w: image holds %d bits", frame.ErrIncomplete, w.Len())
	}
	if need < 0 {
		return nil, fmt.Errorf("%w: image holds %d bits, header needs %d", frame.ErrIncomplete, w.Len(), frame.HeaderBits)
	}
	if w.Len() < need {
		return nil, fmt.Errorf("%w: image holds %d bits, payload declares %d", frame.ErrIncomplete, w.Len(), need)
	}
	return w.Bytes()[:need/8], nil
}
