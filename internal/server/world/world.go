package world

// Point is a tile position.
type Point struct {
	X, Y int32
}

// World is a loaded save file. It is not modified after Reindex, so any
// number of sessions may read it concurrently.
type World struct {
	Metadata       Metadata
	Format         Format
	Header         Header
	Tiles          [][]Tile // Tiles[x][y], Width columns of Height tiles
	Chests         []Chest
	Signs          []Sign
	NPCs           []NPC
	Entities       []Entity
	PressurePlates []WeightedPressurePlate
	Rooms          []RoomLocation
	Bestiary       Bestiary
	CreativePowers []CreativePower

	chestAt  map[Point]int
	signAt   map[Point]int
	entityAt map[Point]int
}

// New returns an empty world of the header's dimensions.
func New(meta Metadata, format Format, header Header) *World {
	w := &World{
		Metadata: meta,
		Format:   format,
		Header:   header,
		Tiles:    make([][]Tile, max(header.Width, 0)),
	}
	for x := range w.Tiles {
		w.Tiles[x] = make([]Tile, max(header.Height, 0))
	}
	w.Reindex()
	return w
}

// Reindex rebuilds the position lookups for chests, signs and entities.
// Callers that edit those slices directly must call it before sharing w.
func (w *World) Reindex() {
	w.chestAt = make(map[Point]int, len(w.Chests))
	for i, c := range w.Chests {
		w.chestAt[Point{c.X, c.Y}] = i
	}
	w.signAt = make(map[Point]int, len(w.Signs))
	for i, s := range w.Signs {
		w.signAt[Point{s.X, s.Y}] = i
	}
	w.entityAt = make(map[Point]int, len(w.Entities))
	for i, e := range w.Entities {
		w.entityAt[Point{int32(e.X), int32(e.Y)}] = i
	}
}

// Width and Height are the grid dimensions in tiles.
func (w *World) Width() int  { return len(w.Tiles) }
func (w *World) Height() int {
	if len(w.Tiles) == 0 {
		return 0
	}
	return len(w.Tiles[0])
}

// Tile returns the tile at x, y, or nil outside the grid.
func (w *World) Tile(x, y int) *Tile {
	if x < 0 || y < 0 || x >= w.Width() || y >= w.Height() {
		return nil
	}
	return &w.Tiles[x][y]
}

// ChestAt returns the index of the chest anchored at p.
func (w *World) ChestAt(p Point) (int, bool) {
	i, ok := w.chestAt[p]
	return i, ok
}

// SignAt returns the index of the sign anchored at p.
func (w *World) SignAt(p Point) (int, bool) {
	i, ok := w.signAt[p]
	return i, ok
}

// EntityAt returns the index of the tile entity anchored at p.
func (w *World) EntityAt(p Point) (int, bool) {
	i, ok := w.entityAt[p]
	return i, ok
}
