package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "cache"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func writeWorld(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "small.wld")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write world: %v", err)
	}
	return path
}

func TestFetchWorldLocalPath(t *testing.T) {
	s := newStorage(t)
	src := writeWorld(t, []byte("world"))

	got, err := s.FetchWorld(context.Background(), src)
	if err != nil {
		t.Fatalf("FetchWorld: %v", err)
	}
	if got != src {
		t.Errorf("FetchWorld = %q, want the source path %q", got, src)
	}
}

func TestFetchWorldGetter(t *testing.T) {
	s := newStorage(t)
	data := []byte{0x17, 0x01, 0x00, 0x00, 'r', 'e', 'l', 'o', 'g', 'i', 'c'}
	src := writeWorld(t, data)

	got, err := s.FetchWorld(context.Background(), "file::"+src)
	if err != nil {
		t.Fatalf("FetchWorld: %v", err)
	}
	if want := filepath.Join(s.dir, "small.wld"); got != want {
		t.Errorf("FetchWorld = %q, want %q", got, want)
	}
	fetched, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("read fetched world: %v", err)
	}
	if !bytes.Equal(fetched, data) {
		t.Errorf("fetched world = %x, want %x", fetched, data)
	}
	if _, err := os.Lstat(got + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestFetchWorldErrors(t *testing.T) {
	s := newStorage(t)
	if _, err := s.FetchWorld(context.Background(), ""); !errors.Is(err, ErrNoWorld) {
		t.Errorf("FetchWorld(\"\") error = %v, want %v", err, ErrNoWorld)
	}
	missing := "file::" + filepath.Join(t.TempDir(), "missing.wld")
	if _, err := s.FetchWorld(context.Background(), missing); err == nil {
		t.Error("FetchWorld of a missing file succeeded")
	}
}

func TestWorldFileName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"worlds/small.wld", "small.wld"},
		{"file::/srv/worlds/large.wld", "large.wld"},
		{"https://example.com/dl/medium.wld?checksum=sha256:abcd", "medium.wld"},
		{"s3::https://s3.amazonaws.com/bucket/saves/hard.wld", "hard.wld"},
		{"https://example.com/", defaultWorldName},
	}
	for _, tt := range tests {
		if got := worldFileName(tt.src); got != tt.want {
			t.Errorf("worldFileName(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
