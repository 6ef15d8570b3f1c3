package pvd

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// mt19937 is the 32-bit Mersenne Twister, seeded the way NumPy's legacy
// RandomState seeds it from an integer.
type mt19937 struct {
	state [mtN]uint32
	pos   int
}

func newMT19937(seed uint32) *mt19937 {
	m := &mt19937{}
	m.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.pos = mtN
	return m
}

func (m *mt19937) generate() {
	for i := 0; i < mtN; i++ {
		y := (m.state[i] & mtUpperMask) | (m.state[(i+1)%mtN] & mtLowerMask)
		next := m.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 == 1 {
			next ^= mtMatrixA
		}
		m.state[i] = next
	}
	m.pos = 0
}

func (m *mt19937) Uint32() uint32 {
	if m.pos >= mtN {
		m.generate()
	}
	y := m.state[m.pos]
	m.pos++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func (m *mt19937) Uint64() uint64 {
	hi := uint64(m.Uint32())
	return hi<<32 | uint64(m.Uint32())
}

// Float64 matches NumPy's random_sample: 53 bits from two draws.
func (m *mt19937) Float64() float64 {
	a := m.Uint32() >> 5
	b := m.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// interval returns a value in [0, max] by masked rejection sampling.
func (m *mt19937) interval(max uint64) uint64 {
	if max == 0 {
		return 0
	}
	mask := max
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16
	mask |= mask >> 32

	if max <= 0xffffffff {
		for {
			if v := uint64(m.Uint32()) & mask; v <= max {
				return v
			}
		}
	}
	for {
		if v := m.Uint64() & mask; v <= max {
			return v
		}
	}
}

// shuffle permutes n elements in place with the same draws as
// RandomState.shuffle.
func (m *mt19937) shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(m.interval(uint64(i)))
		swap(i, j)
	}
}
