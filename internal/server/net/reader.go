package net

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"
)

var (
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidString = errors.New("invalid utf-8 string")
)

// Reader decodes little-endian values from a byte slice it does not own.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the cursor offset from the start of the buffer.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Rest returns the unread bytes and moves the cursor to the end.
func (r *Reader) Rest() []byte {
	b := r.buf[r.pos:]
	r.pos = len(r.buf)
	return b
}

func (r *Reader) Skip(n int) error {
	_, err := r.ReadBytes(n)
	return err
}

// ReadBytes returns the next n bytes. The slice aliases the reader's buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrUnexpectedEOF
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	if r.Len() < 1 {
		return 0, ErrUnexpectedEOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadU8()
	return b != 0, err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadLength()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidString
	}
	return string(b), nil
}

func (r *Reader) ReadRGB() (RGB, error) {
	b, err := r.ReadBytes(3)
	if err != nil {
		return RGB{}, err
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

func (r *Reader) ReadVector2() (Vector2, error) {
	x, err := r.ReadF32()
	if err != nil {
		return Vector2{}, err
	}
	y, err := r.ReadF32()
	if err != nil {
		return Vector2{}, err
	}
	return Vector2{X: x, Y: y}, nil
}

// ReadText reads a tagged network text with its substitutions.
func (r *Reader) ReadText() (Text, error) {
	mode, err := r.ReadU8()
	if err != nil {
		return Text{}, err
	}
	t := Text{Mode: TextMode(mode)}
	if t.Mode > TextLocalizationKey {
		t.Mode = TextInvalid
	}
	if t.Text, err = r.ReadString(); err != nil {
		return Text{}, err
	}
	if t.Mode != TextFormattable && t.Mode != TextLocalizationKey {
		return t, nil
	}

	count, err := r.ReadU8()
	if err != nil {
		return Text{}, err
	}
	if count > 0 {
		t.Substitutions = make([]Text, count)
	}
	for i := range t.Substitutions {
		if t.Substitutions[i], err = r.ReadText(); err != nil {
			return Text{}, err
		}
	}
	return t, nil
}
