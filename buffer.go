package cmsgpack

// Buffer is an append-only growable byte sink used exclusively as the
// encoder's output accumulator. It grows by doubling, the same policy as
// the reference mp_buf: when the free tail can't hold an append, the
// backing array is reallocated to 2*(len+n) and the committed bytes are
// copied across.
type Buffer struct {
	b []byte
}

// Append copies p onto the end of the buffer, growing the backing array
// if necessary.
func (buf *Buffer) Append(p []byte) {
	n := len(p)
	if n == 0 {
		return
	}
	if cap(buf.b)-len(buf.b) < n {
		buf.grow(n)
	}
	buf.b = append(buf.b, p...)
}

// AppendByte appends a single byte.
func (buf *Buffer) AppendByte(b byte) {
	if cap(buf.b)-len(buf.b) < 1 {
		buf.grow(1)
	}
	buf.b = append(buf.b, b)
}

func (buf *Buffer) grow(n int) {
	newCap := (len(buf.b) + n) * 2
	nb := make([]byte, len(buf.b), newCap)
	copy(nb, buf.b)
	buf.b = nb
}

// Len returns the number of committed bytes.
func (buf *Buffer) Len() int { return len(buf.b) }

// Detach transfers ownership of the backing bytes to the caller and
// resets the buffer to empty.
func (buf *Buffer) Detach() []byte {
	b := buf.b
	buf.b = nil
	return b
}
