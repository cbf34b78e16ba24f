package world

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// SectionCache memoizes encoded section frames. The world never changes
// after load, so entries never go stale; eviction only bounds memory.
type SectionCache struct {
	world *World
	cache *ristretto.Cache[uint64, []byte]
}

// NewSectionCache returns a cache holding up to maxBytes of frames.
func NewSectionCache(w *World, maxBytes int64) (*SectionCache, error) {
	sx, sy := w.MaxSection()
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []byte]{
		NumCounters: int64(10 * (sx + 1) * (sy + 1)),
		MaxCost:     max(maxBytes, 1),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create section cache: %w", err)
	}
	return &SectionCache{world: w, cache: cache}, nil
}

// Frame returns the encoded frame of section sx, sy, encoding it on a miss.
func (c *SectionCache) Frame(sx, sy int) ([]byte, error) {
	key := uint64(uint32(sx))<<32 | uint64(uint32(sy))
	if frame, ok := c.cache.Get(key); ok {
		return frame, nil
	}
	frame, err := c.world.SectionFrame(sx, sy)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, frame, int64(len(frame)))
	return frame, nil
}

// Wait blocks until pending writes are visible to Frame.
func (c *SectionCache) Wait() { c.cache.Wait() }

func (c *SectionCache) Close() { c.cache.Close() }
