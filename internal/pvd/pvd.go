// Package pvd hides bits in the red-channel difference of horizontal pixel
// pairs (Pixel Value Differencing). Larger differences carry more bits.
package pvd

import (
	"errors"
	"fmt"
	"image"
)

var ErrCapacity = errors.New("message exceeds image capacity")

// CapacityError reports how many bits a payload needed and how many the
// traversal could carry.
type CapacityError struct {
	Need int64
	Have int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: need %d bits, image holds %d", ErrCapacity, e.Need, e.Have)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// CapacityBits maps a pair difference to the number of bits it carries.
func CapacityBits(diff int) int {
	switch {
	case diff < 8:
		return 1
	case diff < 16:
		return 2
	case diff < 32:
		return 3
	case diff < 64:
		return 4
	default:
		return 5
	}
}

// Capacity sums the bits every pair in order can carry.
func Capacity(img *image.RGBA, order []Pair) int64 {
	var total int64
	for _, p := range order {
		p1, p2 := redPair(img, p)
		total += int64(CapacityBits(absDiff(p1, p2)))
	}
	return total
}

func redOffsets(img *image.RGBA, p Pair) (int, int) {
	b := img.Bounds()
	i := img.PixOffset(b.Min.X+p.Col, b.Min.Y+p.Row)
	return i, i + 4
}

func redPair(img *image.RGBA, p Pair) (int, int) {
	i, j := redOffsets(img, p)
	return int(img.Pix[i]), int(img.Pix[j])
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
