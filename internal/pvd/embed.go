package pvd

import (
	"image"

	"pvdcrypt/internal/pkg/bitstream"
)

// Embed writes payload, most significant bit first, into the pairs of img in
// traversal order. The image is left untouched when the order cannot carry
// the whole payload.
func Embed(img *image.RGBA, payload []byte, order []Pair) error {
	need := int64(len(payload)) * 8
	if have := Capacity(img, order); have < need {
		return &CapacityError{Need: need, Have: have}
	}

	r := bitstream.NewReader(payload)
	for _, p := range order {
		if r.Remaining() == 0 {
			break
		}

		i, j := redOffsets(img, p)
		p1, p2 := int(img.Pix[i]), int(img.Pix[j])
		diff := absDiff(p1, p2)
		k := CapacityBits(diff)

		n := k
		if rem := r.Remaining(); int64(n) > rem {
			n = int(rem)
		}
		v := int(r.ReadBits(n))

		// A short final chunk takes the top n bits of the k-bit window so the
		// extractor's most-significant-first read returns it first.
		window := 1 << k
		keep := diff % (1 << (k - n))
		newDiff := diff - diff%window + v<<(k-n) + keep

		var q1, q2 int
		if p1 < p2 {
			q1 = clamp(p1, 0, 255-newDiff)
			q2 = q1 + newDiff
		} else {
			q1 = clamp(p1, newDiff, 255)
			q2 = q1 - newDiff
		}

		img.Pix[i] = uint8(q1)
		img.Pix[j] = uint8(q2)
	}
	return nil
}
