package net

// maxLengthBytes bounds a 7-bit encoded length to 32 bits of payload.
const maxLengthBytes = 5

// ReadLength reads a 7-bit little-endian length prefix.
func (r *Reader) ReadLength() (int, error) {
	var result uint32
	for i := 0; i < maxLengthBytes; i++ {
		b, err := r.ReadU8()
		if err != nil {
			return 0, err
		}
		if i == maxLengthBytes-1 && b&0x78 != 0 {
			return 0, ErrInvalidNumber
		}
		result |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int(result), nil
		}
	}
	return 0, ErrInvalidNumber
}

// WriteLength appends n as a 7-bit little-endian length prefix.
func (w *Writer) WriteLength(n int) {
	v := uint32(n)
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// LengthSize returns the number of bytes WriteLength uses for n.
func LengthSize(n int) int {
	v := uint32(n)
	size := 1
	for v >= 0x80 {
		v >>= 7
		size++
	}
	return size
}
