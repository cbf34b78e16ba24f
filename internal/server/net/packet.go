package net

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// HeaderSize is the u16 length plus the opcode byte.
const HeaderSize = 3

// Frame is one length-prefixed network unit with its length stripped.
type Frame struct {
	Opcode uint8
	Body   []byte
}

// ReadFrame reads the next frame from r. Frames whose declared length does not
// cover an opcode are skipped.
func ReadFrame(r io.Reader) (Frame, error) {
	var hdr [2]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return Frame{}, err
		}
		length := int(binary.LittleEndian.Uint16(hdr[:]))
		if length <= 2 {
			continue
		}

		payload := make([]byte, length-2)
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, fmt.Errorf("read frame payload: %w", err)
		}
		return Frame{Opcode: payload[0], Body: payload[1:]}, nil
	}
}

// BeginFrame starts a frame in w, reserving the length and writing the opcode.
// It returns the offset to pass to EndFrame.
func BeginFrame(w *Writer, opcode uint8) int {
	off := w.Len()
	w.WriteU16(0)
	w.WriteU8(opcode)
	return off
}

// EndFrame back-fills the length of the frame started at off.
func EndFrame(w *Writer, off int) error {
	n := w.Len() - off
	if n > math.MaxUint16 {
		return fmt.Errorf("frame too large: %d bytes", n)
	}
	w.PatchU16(off, uint16(n))
	return nil
}

// AppendFrame encodes opcode and body as a complete frame.
func AppendFrame(dst []byte, opcode uint8, body []byte) ([]byte, error) {
	n := HeaderSize + len(body)
	if n > math.MaxUint16 {
		return nil, fmt.Errorf("frame too large: %d bytes", n)
	}
	dst = binary.LittleEndian.AppendUint16(dst, uint16(n))
	dst = append(dst, opcode)
	return append(dst, body...), nil
}
