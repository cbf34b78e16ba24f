package world

import (
	"math"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// Liquid is the kind of liquid in a tile.
type Liquid uint8

const (
	LiquidNone Liquid = iota
	LiquidWater
	LiquidLava
	LiquidHoney
	LiquidShimmer
)

// Tile is one cell of the world grid. FrameX and FrameY are only meaningful
// for tile ids marked important; other active tiles hold -1.
type Tile struct {
	ID        int16
	Active    bool
	FrameX    int16
	FrameY    int16
	Color     uint8
	Wall      uint16
	WallColor uint8

	Liquid     uint8
	LiquidKind Liquid

	Wire1, Wire2, Wire3, Wire4 bool
	Actuator                   bool
	InActive                   bool
	HalfBrick                  bool
	Slope                      uint8

	InvisibleBlock  bool
	InvisibleWall   bool
	FullbrightBlock bool
	FullbrightWall  bool
}

// Header bits of the tile encoding.
const (
	h1More     = 1 << 0
	h1Active   = 1 << 1
	h1Wall     = 1 << 2
	h1Liquid   = 3 << 3
	h1WideID   = 1 << 5
	h1Repeat8  = 1 << 6
	h1Repeat16 = 1 << 7

	h2Wire1 = 1 << 1
	h2Wire2 = 1 << 2
	h2Wire3 = 1 << 3

	h3Actuator  = 1 << 1
	h3InActive  = 1 << 2
	h3Color     = 1 << 3
	h3WallColor = 1 << 4
	h3Wire4     = 1 << 5
	h3WideWall  = 1 << 6
	h3Shimmer   = 1 << 7

	h4InvisibleBlock  = 1 << 1
	h4InvisibleWall   = 1 << 2
	h4FullbrightBlock = 1 << 3
	h4FullbrightWall  = 1 << 4
)

// MaxRepeat is the longest run a single encoded tile can describe.
const MaxRepeat = math.MaxInt16

// DecodeTile reads one encoded tile and returns it with the number of
// additional copies that follow it in the run.
func DecodeTile(r *tnet.Reader, importance []bool) (Tile, int, error) {
	d := &decoder{r: r}
	t, repeat := decodeTile(d, importance)
	if d.err != nil {
		return Tile{}, 0, d.err
	}
	return t, repeat, nil
}

func decodeTile(d *decoder, importance []bool) (Tile, int) {
	var t Tile
	var h2, h3, h4 uint8
	h1 := d.u8()
	if h1&h1More != 0 {
		h2 = d.u8()
	}
	if h2&1 != 0 {
		h3 = d.u8()
	}
	if h3&1 != 0 {
		h4 = d.u8()
	}

	if h1&h1Active != 0 {
		t.Active = true
		if h1&h1WideID != 0 {
			t.ID = d.i16()
		} else {
			t.ID = int16(d.u8())
		}
		if important(importance, t.ID) {
			t.FrameX = d.i16()
			t.FrameY = d.i16()
			if t.ID == TileTimer {
				t.FrameY = 0
			}
		} else {
			t.FrameX, t.FrameY = -1, -1
		}
		if h3&h3Color != 0 {
			t.Color = d.u8()
		}
	}

	if h1&h1Wall != 0 {
		t.Wall = uint16(d.u8())
		if h3&h3WallColor != 0 {
			t.WallColor = d.u8()
		}
	}

	if bits := (h1 & h1Liquid) >> 3; bits != 0 {
		switch {
		case h3&h3Shimmer != 0:
			t.LiquidKind = LiquidShimmer
		case bits == 2:
			t.LiquidKind = LiquidLava
		case bits == 3:
			t.LiquidKind = LiquidHoney
		default:
			t.LiquidKind = LiquidWater
		}
		t.Liquid = d.u8()
	}

	if h2 > 1 {
		t.Wire1 = h2&h2Wire1 != 0
		t.Wire2 = h2&h2Wire2 != 0
		t.Wire3 = h2&h2Wire3 != 0
		switch n := (h2 >> 4) & 7; n {
		case 0:
		case 1:
			t.HalfBrick = true
		default:
			t.Slope = n - 1
		}
	}

	if h3 > 1 {
		t.Actuator = h3&h3Actuator != 0
		t.InActive = h3&h3InActive != 0
		t.Wire4 = h3&h3Wire4 != 0
		if h3&h3WideWall != 0 {
			t.Wall |= uint16(d.u8()) << 8
			if t.Wall >= WallCount {
				t.Wall = 0
			}
		}
	}

	if h4 > 1 {
		t.InvisibleBlock = h4&h4InvisibleBlock != 0
		t.InvisibleWall = h4&h4InvisibleWall != 0
		t.FullbrightBlock = h4&h4FullbrightBlock != 0
		t.FullbrightWall = h4&h4FullbrightWall != 0
	}

	var repeat int
	switch h1 >> 6 {
	case 0:
	case 1:
		repeat = int(d.u8())
	default:
		repeat = int(d.i16())
		if repeat < 0 {
			repeat = 0
		}
	}
	return t, repeat
}

// Encode appends t followed by a run of repeat further copies. Only
// non-default header bytes and their guarded fields are written.
func (t *Tile) Encode(w *tnet.Writer, repeat int, importance []bool) {
	var h1, h2, h3, h4 uint8
	var body [16]byte
	n := 0

	if t.Active {
		h1 |= h1Active
		body[n] = byte(t.ID)
		n++
		if t.ID > math.MaxUint8 {
			h1 |= h1WideID
			body[n] = byte(uint16(t.ID) >> 8)
			n++
		}
		if important(importance, t.ID) {
			body[n], body[n+1] = byte(t.FrameX), byte(uint16(t.FrameX)>>8)
			body[n+2], body[n+3] = byte(t.FrameY), byte(uint16(t.FrameY)>>8)
			n += 4
		}
		if t.Color != 0 {
			h3 |= h3Color
			body[n] = t.Color
			n++
		}
	}

	if t.Wall != 0 {
		h1 |= h1Wall
		body[n] = byte(t.Wall)
		n++
		if t.WallColor != 0 {
			h3 |= h3WallColor
			body[n] = t.WallColor
			n++
		}
	}

	if t.Liquid != 0 {
		switch t.LiquidKind {
		case LiquidShimmer:
			h1 |= 1 << 3
			h3 |= h3Shimmer
		case LiquidLava:
			h1 |= 2 << 3
		case LiquidHoney:
			h1 |= 3 << 3
		default:
			h1 |= 1 << 3
		}
		body[n] = t.Liquid
		n++
	}

	if t.Wire1 {
		h2 |= h2Wire1
	}
	if t.Wire2 {
		h2 |= h2Wire2
	}
	if t.Wire3 {
		h2 |= h2Wire3
	}
	if t.HalfBrick {
		h2 |= 1 << 4
	} else if t.Slope != 0 {
		h2 |= ((t.Slope + 1) & 7) << 4
	}

	if t.Actuator {
		h3 |= h3Actuator
	}
	if t.InActive {
		h3 |= h3InActive
	}
	if t.Wire4 {
		h3 |= h3Wire4
	}
	if t.Wall > math.MaxUint8 {
		h3 |= h3WideWall
		body[n] = byte(t.Wall >> 8)
		n++
	}

	if t.InvisibleBlock {
		h4 |= h4InvisibleBlock
	}
	if t.InvisibleWall {
		h4 |= h4InvisibleWall
	}
	if t.FullbrightBlock {
		h4 |= h4FullbrightBlock
	}
	if t.FullbrightWall {
		h4 |= h4FullbrightWall
	}

	if h4 != 0 {
		h3 |= 1
	}
	if h3 != 0 {
		h2 |= 1
	}
	if h2 != 0 {
		h1 |= h1More
	}

	switch {
	case repeat <= 0:
	case repeat <= math.MaxUint8:
		h1 |= h1Repeat8
		body[n] = byte(repeat)
		n++
	default:
		if repeat > MaxRepeat {
			repeat = MaxRepeat
		}
		h1 |= h1Repeat16
		body[n], body[n+1] = byte(repeat), byte(repeat>>8)
		n += 2
	}

	w.WriteU8(h1)
	if h1&h1More != 0 {
		w.WriteU8(h2)
	}
	if h2&1 != 0 {
		w.WriteU8(h3)
	}
	if h3&1 != 0 {
		w.WriteU8(h4)
	}
	w.WriteBytes(body[:n])
}

// SameAs reports whether t and o encode identically, so o can extend a run
// started by t. Fields the encoding drops are ignored: the id, frames and
// paint of inactive tiles, frames of unimportant ids, the wall paint of an
// empty wall and the kind of an empty liquid.
func (t *Tile) SameAs(o *Tile, importance []bool) bool {
	if t.Active != o.Active || t.Wall != o.Wall || t.Liquid != o.Liquid {
		return false
	}
	if t.Active {
		if t.ID != o.ID || t.Color != o.Color {
			return false
		}
		if important(importance, t.ID) && (t.FrameX != o.FrameX || t.FrameY != o.FrameY) {
			return false
		}
	}
	if t.Wall != 0 && t.WallColor != o.WallColor {
		return false
	}
	if t.Liquid != 0 && t.liquidBits() != o.liquidBits() {
		return false
	}
	if t.HalfBrick != o.HalfBrick || (!t.HalfBrick && t.Slope != o.Slope) {
		return false
	}
	return t.Wire1 == o.Wire1 && t.Wire2 == o.Wire2 && t.Wire3 == o.Wire3 && t.Wire4 == o.Wire4 &&
		t.Actuator == o.Actuator && t.InActive == o.InActive &&
		t.InvisibleBlock == o.InvisibleBlock && t.InvisibleWall == o.InvisibleWall &&
		t.FullbrightBlock == o.FullbrightBlock && t.FullbrightWall == o.FullbrightWall
}

// liquidBits folds None into Water, matching the encoder.
func (t *Tile) liquidBits() Liquid {
	if t.LiquidKind == LiquidNone {
		return LiquidWater
	}
	return t.LiquidKind
}

// Batchable reports whether t may be collapsed into a run.
func (t *Tile) Batchable() bool {
	return !t.Active || !noBatch[t.ID]
}
