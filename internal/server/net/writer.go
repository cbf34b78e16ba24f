package net

import (
	"encoding/binary"
	"math"
)

// Writer appends little-endian values to a growable buffer.
type Writer struct {
	buf []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) Reset() { w.buf = w.buf[:0] }

// Write implements io.Writer; it never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *Writer) WriteBytes(p []byte) { w.buf = append(w.buf, p...) }

func (w *Writer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) WriteI8(v int8) { w.buf = append(w.buf, byte(v)) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

func (w *Writer) WriteU16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

func (w *Writer) WriteI16(v int16) { w.WriteU16(uint16(v)) }

func (w *Writer) WriteU32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) }

func (w *Writer) WriteU64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

func (w *Writer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }

func (w *Writer) WriteF64(v float64) { w.WriteU64(math.Float64bits(v)) }

func (w *Writer) WriteString(s string) {
	w.WriteLength(len(s))
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteRGB(c RGB) { w.buf = append(w.buf, c.R, c.G, c.B) }

func (w *Writer) WriteVector2(v Vector2) {
	w.WriteF32(v.X)
	w.WriteF32(v.Y)
}

func (w *Writer) WriteText(t Text) {
	w.WriteU8(uint8(t.Mode))
	w.WriteString(t.Text)
	if t.Mode != TextFormattable && t.Mode != TextLocalizationKey {
		return
	}
	w.WriteU8(uint8(len(t.Substitutions)))
	for _, sub := range t.Substitutions {
		w.WriteText(sub)
	}
}

// PatchU16 overwrites two bytes at off, used to back-fill length prefixes.
func (w *Writer) PatchU16(off int, v uint16) {
	binary.LittleEndian.PutUint16(w.buf[off:], v)
}
