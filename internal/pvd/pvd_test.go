package pvd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"pvdcrypt/internal/frame"
	"pvdcrypt/internal/pkg/bitstream"
)

func TestMT19937_KnownAnswers(t *testing.T) {
	t.Parallel()
	// Reference init_genrand(5489) output.
	if got := newMT19937(5489).Uint32(); got != 3499211612 {
		t.Errorf("first output for seed 5489 = %d, want 3499211612", got)
	}

	// numpy: np.random.seed(42); np.random.rand(2)
	m := newMT19937(42)
	want := []float64{0.3745401188473625, 0.9507143064099162}
	for i, w := range want {
		if got := m.Float64(); got != w {
			t.Errorf("Float64() #%d = %v, want %v", i, got, w)
		}
	}
}

func TestMT19937_Shuffle_NumPyPermutation(t *testing.T) {
	t.Parallel()
	// numpy: np.random.seed(42); np.random.permutation(10)
	want := []int{8, 1, 5, 0, 7, 2, 9, 4, 3, 6}

	got := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	newMT19937(42).shuffle(len(got), func(i, j int) {
		got[i], got[j] = got[j], got[i]
	})
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("permutation = %v, want %v", got, want)
		}
	}
}

func TestTraversal_MatchesNumPyPermutation(t *testing.T) {
	t.Parallel()
	order := Traversal(20, 1, DefaultSeed)
	wantCols := []int{16, 2, 10, 0, 14, 4, 18, 8, 6, 12}
	if len(order) != len(wantCols) {
		t.Fatalf("len = %d, want %d", len(order), len(wantCols))
	}
	for i, p := range order {
		if p.Row != 0 || p.Col != wantCols[i] {
			t.Errorf("order[%d] = %+v, want {0 %d}", i, p, wantCols[i])
		}
	}
}

func TestTraversal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		width, height int
		wantPairs     int
	}{
		{"even width", 8, 4, 16},
		{"odd width drops last column", 7, 3, 9},
		{"single column", 1, 5, 0},
		{"single pair", 2, 1, 1},
		{"empty", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Traversal(tt.width, tt.height, DefaultSeed)
			if len(order) != tt.wantPairs || PairCount(tt.width, tt.height) != tt.wantPairs {
				t.Fatalf("pairs = %d, PairCount = %d, want %d", len(order), PairCount(tt.width, tt.height), tt.wantPairs)
			}

			used := make(map[Pair]bool)
			for _, p := range order {
				if p.Col%2 != 0 || p.Col+1 >= tt.width || p.Row >= tt.height {
					t.Errorf("pair %+v out of range", p)
				}
				if used[p] {
					t.Errorf("pair %+v repeated", p)
				}
				used[p] = true
			}
		})
	}
}

func TestTraversal_Deterministic(t *testing.T) {
	t.Parallel()
	a := Traversal(64, 48, DefaultSeed)
	b := Traversal(64, 48, DefaultSeed)
	c := Traversal(64, 48, 7)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d for the same seed", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("changing the seed did not change the order")
	}
}

func TestCapacityBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		diff, want int
	}{
		{0, 1}, {7, 1}, {8, 2}, {15, 2}, {16, 3}, {31, 3},
		{32, 4}, {63, 4}, {64, 5}, {128, 5}, {255, 5},
	}
	for _, tt := range tests {
		if got := CapacityBits(tt.diff); got != tt.want {
			t.Errorf("CapacityBits(%d) = %d, want %d", tt.diff, got, tt.want)
		}
	}
}

func newImage(w, h int, red func(x, y int) uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: red(x, y), G: uint8(x), B: uint8(y), A: 255})
		}
	}
	return img
}

func randomImage(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	return newImage(w, h, func(x, y int) uint8 { return uint8(rng.Intn(256)) })
}

func testPayload(t *testing.T, n int, seed int64) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	f := &frame.Frame{
		Salt:       make([]byte, 16),
		Nonce:      make([]byte, 16),
		Ciphertext: make([]byte, n),
	}
	rng.Read(f.Salt)
	rng.Read(f.Nonce)
	rng.Read(f.Ciphertext)
	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestEmbedExtract_RoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		img  *image.RGBA
		n    int
	}{
		{"random pixels", randomImage(64, 64, 1), 200},
		{"flat image", newImage(40, 40, func(x, y int) uint8 { return 128 }), 50},
		{"high contrast tail", newImage(200, 1, func(x, y int) uint8 { return uint8(100 * (x % 2)) }), 1},
		{"odd width", randomImage(33, 21, 2), 10},
		{"saturated extremes", newImage(64, 32, func(x, y int) uint8 {
			return []uint8{0, 255, 255, 0, 0, 0, 255, 255, 3, 250, 254, 1}[(x+y*64)%12]
		}), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := testPayload(t, tt.n, int64(tt.n))
			order := Traversal(tt.img.Bounds().Dx(), tt.img.Bounds().Dy(), DefaultSeed)

			if err := Embed(tt.img, payload, order); err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			got, err := Extract(tt.img, order)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("Extract() returned %d bytes, differs from the %d embedded", len(got), len(payload))
			}
		})
	}
}

func TestEmbed_LowBitsCarryPayload(t *testing.T) {
	t.Parallel()
	img := randomImage(48, 48, 3)
	order := Traversal(48, 48, DefaultSeed)
	payload := testPayload(t, 16, 9)

	before := make([]int, len(order))
	for i, p := range order {
		p1, p2 := redPair(img, p)
		before[i] = CapacityBits(absDiff(p1, p2))
	}

	if err := Embed(img, payload, order); err != nil {
		t.Fatal(err)
	}

	r := bitstream.NewReader(payload)
	for i, p := range order {
		if r.Remaining() == 0 {
			break
		}
		p1, p2 := redPair(img, p)
		diff := absDiff(p1, p2)
		k := CapacityBits(diff)
		if k != before[i] {
			t.Fatalf("pair %+v moved from %d to %d capacity bits", p, before[i], k)
		}
		if int64(k) > r.Remaining() {
			break
		}
		if want := int(r.ReadBits(k)); diff%(1<<k) != want {
			t.Fatalf("pair %+v low bits = %b, want %b", p, diff%(1<<k), want)
		}
	}
}

func TestEmbed_PreservesOtherChannelsAndOrdering(t *testing.T) {
	t.Parallel()
	img := randomImage(32, 32, 4)
	orig := image.NewRGBA(img.Bounds())
	copy(orig.Pix, img.Pix)

	order := Traversal(32, 32, DefaultSeed)
	if err := Embed(img, testPayload(t, 20, 4), order); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < len(img.Pix); i++ {
		if i%4 != 0 && img.Pix[i] != orig.Pix[i] {
			t.Fatalf("non-red byte %d changed", i)
		}
	}
	for _, p := range order {
		o1, o2 := redPair(orig, p)
		n1, n2 := redPair(img, p)
		if (o1 < o2) != (n1 < n2) && n1 != n2 {
			t.Fatalf("pair %+v flipped ordering: %d,%d -> %d,%d", p, o1, o2, n1, n2)
		}
	}
}

func TestEmbed_CapacityError(t *testing.T) {
	t.Parallel()
	img := newImage(8, 8, func(x, y int) uint8 { return 10 })
	orig := append([]byte(nil), img.Pix...)
	order := Traversal(8, 8, DefaultSeed)

	err := Embed(img, testPayload(t, 1, 1), order)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("Embed() error = %v, want ErrCapacity", err)
	}
	var ce *CapacityError
	if !errors.As(err, &ce) || ce.Have != 32 || ce.Need != 38*8 {
		t.Errorf("CapacityError = %+v, want Need=%d Have=32", ce, 38*8)
	}
	if !bytes.Equal(img.Pix, orig) {
		t.Error("image modified despite capacity error")
	}
}

func TestEmbed_ExactCapacity(t *testing.T) {
	t.Parallel()
	payload := testPayload(t, 3, 5)
	bits := len(payload) * 8

	// Flat pixels give every pair one bit.
	fits := newImage(2, bits, func(x, y int) uint8 { return 0 })
	order := Traversal(2, bits, DefaultSeed)
	if got := Capacity(fits, order); got != int64(bits) {
		t.Fatalf("Capacity() = %d, want %d", got, bits)
	}
	if err := Embed(fits, payload, order); err != nil {
		t.Fatalf("Embed() at exact capacity error = %v", err)
	}
	got, err := Extract(fits, order)
	if err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("Extract() at exact capacity = %x, %v", got, err)
	}

	short := newImage(2, bits-1, func(x, y int) uint8 { return 0 })
	if err := Embed(short, payload, Traversal(2, bits-1, DefaultSeed)); !errors.Is(err, ErrCapacity) {
		t.Errorf("Embed() one bit short error = %v, want ErrCapacity", err)
	}
}

func TestExtract_Errors(t *testing.T) {
	t.Parallel()
	embedded := randomImage(64, 64, 6)
	fullOrder := Traversal(64, 64, DefaultSeed)
	if err := Embed(embedded, testPayload(t, 300, 6), fullOrder); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		img   *image.RGBA
		order []Pair
		want  error
	}{
		{"blank image", newImage(16, 16, func(x, y int) uint8 { return 0 }), Traversal(16, 16, DefaultSeed), frame.ErrFormat},
		{"too few pairs for a marker", newImage(2, 2, func(x, y int) uint8 { return 0 }), Traversal(2, 2, DefaultSeed), frame.ErrIncomplete},
		{"truncated traversal", embedded, fullOrder[:200], frame.ErrIncomplete},
		{"no pairs", newImage(1, 1, func(x, y int) uint8 { return 0 }), nil, frame.ErrIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.img, tt.order)
			if !errors.Is(err, tt.want) {
				t.Errorf("Extract() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCapacity_SubImage(t *testing.T) {
	t.Parallel()
	base := randomImage(60, 60, 8)
	sub := base.SubImage(image.Rect(4, 6, 44, 46)).(*image.RGBA)
	order := Traversal(40, 40, DefaultSeed)
	payload := testPayload(t, 20, 8)

	if err := Embed(sub, payload, order); err != nil {
		t.Fatal(err)
	}
	got, err := Extract(sub, order)
	if err != nil || !bytes.Equal(got, payload) {
		t.Errorf("Extract() on sub-image = %x, %v", got, err)
	}
}
