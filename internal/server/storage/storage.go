package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// ErrNoWorld is returned when no world source is configured.
var ErrNoWorld = errors.New("no world source configured")

// defaultWorldName names a fetched world whose source has no file name.
const defaultWorldName = "world.wld"

// Storage keeps fetched world files in a cache directory.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating it as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

// FetchWorld returns a local path for the world at src. An existing local
// file is used in place. Anything else is handed to go-getter (file::,
// http(s)::, s3::, gcs::...) and stored in the cache directory.
func (s *Storage) FetchWorld(ctx context.Context, src string) (string, error) {
	if src == "" {
		return "", ErrNoWorld
	}
	if fi, err := os.Stat(src); err == nil && !fi.IsDir() {
		return src, nil
	}

	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	dst := filepath.Join(s.dir, worldFileName(src))
	tmp := dst + ".tmp"
	s.log.Info("fetching world", "src", src, "dst", dst)

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  tmp,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("fetch world %s: %w", src, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename temp file: %w", err)
	}
	return dst, nil
}

// worldFileName picks the cache file name for src from the last element of
// its path, ignoring a forced getter prefix, the query and any subdirectory.
func worldFileName(src string) string {
	if i := strings.Index(src, "::"); i >= 0 {
		src = src[i+2:]
	}
	if i := strings.Index(src, "?"); i >= 0 {
		src = src[:i]
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		src = u.Path
	}
	src = strings.TrimSuffix(filepath.ToSlash(src), "/")
	name := path.Base(src)
	if name == "." || name == "/" || name == "" {
		return defaultWorldName
	}
	return name
}
