package world

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
)

// Section dimensions in tiles.
const (
	SectionWidth  = 200
	SectionHeight = 150
)

// SectionOf returns the section holding tile x, y.
func SectionOf(x, y int) (sx, sy int) {
	return x / SectionWidth, y / SectionHeight
}

// Rect is an inclusive range of sections.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether r holds no sections.
func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// MaxSection returns the largest valid section coordinates.
func (w *World) MaxSection() (sx, sy int) {
	return (w.Width() - 1) / SectionWidth, (w.Height() - 1) / SectionHeight
}

// Near returns the sections around tile x, y that a player there can see:
// two columns of sections either side and one row above and below.
func (w *World) Near(x, y int) Rect {
	sx, sy := SectionOf(x, y)
	maxX, maxY := w.MaxSection()
	return Rect{
		MinX: min(max(sx-2, 0), maxX),
		MinY: min(max(sy-1, 0), maxY),
		MaxX: min(max(sx+2, 0), maxX),
		MaxY: min(max(sy+1, 0), maxY),
	}
}

// Around returns the section holding tile x, y and its eight neighbours,
// clamped to the world.
func (w *World) Around(x, y int) Rect {
	sx, sy := SectionOf(max(x, 0), max(y, 0))
	maxX, maxY := w.MaxSection()
	return Rect{
		MinX: min(max(sx-1, 0), maxX),
		MinY: min(max(sy-1, 0), maxY),
		MaxX: min(sx+1, maxX),
		MaxY: min(sy+1, maxY),
	}
}

// sectionBounds returns the tile origin and extent of section sx, sy,
// clipped to the world.
func (w *World) sectionBounds(sx, sy int) (x0, y0, width, height int, err error) {
	maxX, maxY := w.MaxSection()
	if sx < 0 || sy < 0 || sx > maxX || sy > maxY {
		return 0, 0, 0, 0, fmt.Errorf("section %d,%d outside world", sx, sy)
	}
	x0, y0 = sx*SectionWidth, sy*SectionHeight
	width = min(SectionWidth, w.Width()-x0)
	height = min(SectionHeight, w.Height()-y0)
	return x0, y0, width, height, nil
}

// SectionFrame encodes section sx, sy as a complete section frame.
func (w *World) SectionFrame(sx, sy int) ([]byte, error) {
	body, err := w.EncodeSection(sx, sy)
	if err != nil {
		return nil, err
	}
	return tnet.AppendFrame(nil, uint8(packet.OpSection), body)
}

// EncodeSection returns the zlib-compressed body of section sx, sy: its
// bounds, the run-length encoded tiles in column order, then the chests,
// signs and tile entities anchored inside it.
func (w *World) EncodeSection(sx, sy int) ([]byte, error) {
	x0, y0, width, height, err := w.sectionBounds(sx, sy)
	if err != nil {
		return nil, err
	}
	imp := w.Format.Importance

	out := tnet.NewWriter(width * height)
	out.WriteI32(int32(x0))
	out.WriteI32(int32(y0))
	out.WriteI16(int16(width))
	out.WriteI16(int16(height))

	var chests, signs, entities []int
	var last *Tile
	repeat := 0
	for x := x0; x < x0+width; x++ {
		for y := y0; y < y0+height; y++ {
			t := &w.Tiles[x][y]
			if last != nil && repeat < MaxRepeat && last.Batchable() && t.SameAs(last, imp) {
				repeat++
			} else {
				if last != nil {
					last.Encode(out, repeat, imp)
				}
				last, repeat = t, 0
			}

			if !t.Active {
				continue
			}
			p := Point{int32(x), int32(y)}
			if chestAnchor(t) {
				if i, ok := w.chestAt[p]; ok {
					chests = append(chests, i)
				}
			}
			if signAnchor(t) {
				if i, ok := w.signAt[p]; ok {
					signs = append(signs, i)
				}
			}
			if entityAnchor(t) {
				if i, ok := w.entityAt[p]; ok {
					entities = append(entities, i)
				}
			}
		}
	}
	if last != nil {
		last.Encode(out, repeat, imp)
	}

	out.WriteI16(int16(len(chests)))
	for _, i := range chests {
		c := &w.Chests[i]
		out.WriteI16(int16(i))
		out.WriteI16(int16(c.X))
		out.WriteI16(int16(c.Y))
		out.WriteString(c.Name)
	}
	out.WriteI16(int16(len(signs)))
	for _, i := range signs {
		s := &w.Signs[i]
		out.WriteI16(int16(i))
		out.WriteI16(int16(s.X))
		out.WriteI16(int16(s.Y))
		out.WriteString(s.Text)
	}
	out.WriteI16(int16(len(entities)))
	for _, i := range entities {
		w.Entities[i].Encode(out)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(out.Bytes()); err != nil {
		return nil, fmt.Errorf("compress section: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close section stream: %w", err)
	}
	return buf.Bytes(), nil
}

// SectionChest is a chest reference inside a section.
type SectionChest struct {
	Index int16
	X, Y  int16
	Name  string
}

// SectionSign is a sign inside a section.
type SectionSign struct {
	Index int16
	X, Y  int16
	Text  string
}

// Section is a decoded section body.
type Section struct {
	X, Y          int32
	Width, Height int16
	Tiles         [][]Tile // Tiles[x-X][y-Y]
	Chests        []SectionChest
	Signs         []SectionSign
	Entities      []Entity
}

// DecodeSection inflates and parses a section body produced by EncodeSection.
func DecodeSection(body []byte, importance []bool) (*Section, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("open section stream: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate section: %w", err)
	}

	d := &decoder{r: tnet.NewReader(raw)}
	s := &Section{X: d.i32(), Y: d.i32(), Width: d.i16(), Height: d.i16()}
	if d.err != nil {
		return nil, fmt.Errorf("read section bounds: %w", d.err)
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("section has negative size %dx%d", s.Width, s.Height)
	}

	width, height := int(s.Width), int(s.Height)
	s.Tiles = make([][]Tile, width)
	for x := range s.Tiles {
		s.Tiles[x] = make([]Tile, height)
	}
	for k := 0; k < width*height && d.err == nil; {
		t, repeat := decodeTile(d, importance)
		end := min(k+repeat+1, width*height)
		for ; k < end; k++ {
			s.Tiles[k/height][k%height] = t
		}
	}

	n := d.i16()
	for i := int16(0); i < n && d.err == nil; i++ {
		s.Chests = append(s.Chests, SectionChest{Index: d.i16(), X: d.i16(), Y: d.i16(), Name: d.str()})
	}
	n = d.i16()
	for i := int16(0); i < n && d.err == nil; i++ {
		s.Signs = append(s.Signs, SectionSign{Index: d.i16(), X: d.i16(), Y: d.i16(), Text: d.str()})
	}
	n = d.i16()
	for i := int16(0); i < n && d.err == nil; i++ {
		e := decodeEntity(d)
		if d.err == nil {
			s.Entities = append(s.Entities, e)
		}
	}
	if d.err != nil {
		return nil, fmt.Errorf("read section: %w", d.err)
	}
	return s, nil
}
