package pvd

// DefaultSeed keeps pair order compatible with NumPy RandomState(42) based tools.
const DefaultSeed uint32 = 42

// Pair addresses the pixels (Row, Col) and (Row, Col+1).
type Pair struct {
	Row int
	Col int
}

// PairCount is the number of non-overlapping horizontal pairs in an image.
func PairCount(width, height int) int {
	if width < 2 || height < 1 {
		return 0
	}
	return height * (width / 2)
}

// Traversal lists every pair in row-major order and shuffles the list with
// MT19937 seeded by seed, drawing exactly as NumPy's
// RandomState(seed).shuffle does. Embedding and extraction must use the same
// (width, height, seed).
func Traversal(width, height int, seed uint32) []Pair {
	pairs := make([]Pair, 0, PairCount(width, height))
	for y := 0; y < height; y++ {
		for x := 0; x+1 < width; x += 2 {
			pairs = append(pairs, Pair{Row: y, Col: x})
		}
	}

	rng := newMT19937(seed)
	rng.shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})
	return pairs
}
