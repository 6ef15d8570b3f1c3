// Package bitstream reads and writes bits most-significant-first within each
// byte, in byte order.
package bitstream

type Reader struct {
	ptr  int64
	data []byte
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int64 {
	return int64(len(r.data))*8 - r.ptr
}

// ReadBits returns the next n bits (n <= 32) as an unsigned integer, first bit
// most significant. Reading past the end yields zero bits.
func (r *Reader) ReadBits(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v <<= 1
		idx := r.ptr / 8
		if idx < int64(len(r.data)) {
			bit := uint(r.ptr % 8)
			v |= uint32(r.data[idx]>>(7-bit)) & 1
		}
		r.ptr++
	}
	return v
}

type Writer struct {
	n    int64
	data []byte
}

func NewWriter(sizeHint int) *Writer {
	return &Writer{data: make([]byte, 0, sizeHint)}
}

// WriteBits appends the low n bits of v (n <= 32), most significant first.
func (w *Writer) WriteBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.data = append(w.data, 0)
		}
		if (v>>uint(i))&1 == 1 {
			w.data[len(w.data)-1] |= 0x80 >> uint(w.n%8)
		}
		w.n++
	}
}

// Len returns the number of bits written.
func (w *Writer) Len() int64 {
	return w.n
}

// Bytes returns the written bits; a partial last byte is zero padded.
func (w *Writer) Bytes() []byte {
	return w.data
}
