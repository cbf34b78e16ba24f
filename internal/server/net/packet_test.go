package net

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReadFrame(t *testing.T) {
	raw := []byte{0x05, 0x00, 0x03, 0x00, 0x00}
	f, err := ReadFrame(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f.Opcode != 3 {
		t.Errorf("Opcode = %d, want 3", f.Opcode)
	}
	if !bytes.Equal(f.Body, []byte{0, 0}) {
		t.Errorf("Body = % X, want 00 00", f.Body)
	}
}

func TestReadFrameSkipsShort(t *testing.T) {
	// Declared lengths 0, 1 and 2 carry no opcode and are discarded.
	raw := []byte{
		0x00, 0x00,
		0x01, 0x00,
		0x02, 0x00,
		0x03, 0x00, 0x25,
	}
	f, err := ReadFrame(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f.Opcode != 0x25 || len(f.Body) != 0 {
		t.Errorf("ReadFrame = %+v, want opcode 0x25 with empty body", f)
	}
}

func TestReadFrameTruncated(t *testing.T) {
	raw := []byte{0x08, 0x00, 0x01, 0x02}
	_, err := ReadFrame(bytes.NewReader(raw))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadFrame err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestBeginEndFrame(t *testing.T) {
	w := NewWriter(16)
	off := BeginFrame(w, 1)
	w.WriteString("Terraria279")
	if err := EndFrame(w, off); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}

	want := append([]byte{0x0F, 0x00, 0x01, 0x0B}, "Terraria279"...)
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("frame = % X, want % X", w.Bytes(), want)
	}
}

func TestAppendFrame(t *testing.T) {
	got, err := AppendFrame(nil, 37, nil)
	if err != nil {
		t.Fatalf("AppendFrame: %v", err)
	}
	if !bytes.Equal(got, []byte{0x03, 0x00, 0x25}) {
		t.Errorf("AppendFrame = % X, want 03 00 25", got)
	}

	if _, err := AppendFrame(nil, 10, make([]byte, 70000)); err == nil {
		t.Error("AppendFrame accepted an oversized body")
	}
}
