package world

import (
	"bytes"
	"fmt"
	"os"
	"time"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// Checkpoint names, in file order.
var sections = [...]string{
	"format", "header", "tiles", "chests", "signs", "npcs", "entities",
	"pressure_plates", "rooms", "bestiary", "creative_powers",
}

// Load reads the world file at path.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world: %w", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat world: %w", err)
	}
	return Read(data, fi.ModTime())
}

// Read parses a world file. modTime stands in for the creation time of
// files older than version 141, which do not record one.
func Read(data []byte, modTime time.Time) (*World, error) {
	d := &decoder{r: tnet.NewReader(data)}

	meta, err := readMetadata(d)
	if err != nil {
		return nil, err
	}
	d.version = meta.Version

	format := readFormat(d)
	if err := d.check(format, 0); err != nil {
		return nil, err
	}

	header := readHeader(d)
	if err := d.check(format, 1); err != nil {
		return nil, err
	}
	if meta.Version < 141 {
		header.CreationTime = modTime.UTC()
	}

	w := &World{Metadata: meta, Format: format, Header: header}

	w.Tiles = readTiles(d, &header, format.Importance)
	if err := d.check(format, 2); err != nil {
		return nil, err
	}

	w.Chests = readChests(d)
	if err := d.check(format, 3); err != nil {
		return nil, err
	}

	w.Signs = readSigns(d, w)
	if err := d.check(format, 4); err != nil {
		return nil, err
	}

	w.NPCs = readNPCs(d)
	if err := d.check(format, 5); err != nil {
		return nil, err
	}

	if meta.Version >= 116 {
		if meta.Version >= 122 {
			w.Entities = readEntities(d)
		} else {
			w.Entities = readLegacyDummies(d)
		}
		if err := d.check(format, 6); err != nil {
			return nil, err
		}
	}

	if meta.Version >= 170 {
		w.PressurePlates = readPressurePlates(d)
		if err := d.check(format, 7); err != nil {
			return nil, err
		}
	}

	if meta.Version >= 189 {
		w.Rooms = readRooms(d)
		if err := d.check(format, 8); err != nil {
			return nil, err
		}
	}

	if meta.Version >= 210 {
		w.Bestiary = readBestiary(d)
		if err := d.check(format, 9); err != nil {
			return nil, err
		}
	}

	if meta.Version >= 220 {
		w.CreativePowers = readCreativePowers(d)
		if err := d.check(format, 10); err != nil {
			return nil, err
		}
	}

	ok := d.flag() && d.str() == header.Name && d.i32() == header.ID
	if d.err != nil {
		return nil, fmt.Errorf("read footer: %w", d.err)
	}
	if !ok {
		return nil, ErrInvalidFooter
	}

	w.Reindex()
	return w, nil
}

// check fails on a pending read error or when the cursor is not on the
// checkpoint of section i.
func (d *decoder) check(f Format, i int) error {
	if d.err != nil {
		return fmt.Errorf("read %s: %w", sections[i], d.err)
	}
	want := -1
	if i < len(f.Positions) {
		want = int(f.Positions[i])
	}
	if got := d.r.Pos(); got != want {
		return &PositionCheckError{Section: sections[i], Want: want, Got: got}
	}
	return nil
}

func readMetadata(d *decoder) (Metadata, error) {
	m := Metadata{Version: d.i32(), FileType: FileTypeWorld}
	if d.err != nil {
		return m, fmt.Errorf("read metadata: %w", d.err)
	}
	if m.Version < MinVersion {
		return m, &UnsupportedVersionError{Version: m.Version}
	}
	if m.Version >= 135 {
		magic := d.raw(len(Magic))
		if d.err == nil && !bytes.Equal(magic, []byte(Magic)) {
			return m, ErrBadFileSignature
		}
		m.FileType = FileType(d.u8())
		m.Revision = d.u32()
		m.Favorite = d.u64()&1 == 1
		if d.err != nil {
			return m, fmt.Errorf("read metadata: %w", d.err)
		}
	}
	if m.FileType != FileTypeWorld {
		return m, ErrExpectedWorldType
	}
	if m.Version > MaxVersion {
		return m, &UnsupportedVersionError{Version: m.Version}
	}
	return m, nil
}

// readFormat reads the checkpoints and the importance bitmap. The bitmap
// stores the first tile id in the least significant bit of each byte.
func readFormat(d *decoder) Format {
	var f Format
	f.Positions = d.i32s(int32(d.i16()))

	n := int(d.u16())
	f.Importance = make([]bool, n)
	var b uint8
	for i := 0; i < n && d.err == nil; i++ {
		if i%8 == 0 {
			b = d.u8()
		}
		f.Importance[i] = b&(1<<(i%8)) != 0
	}
	return f
}

func readTiles(d *decoder, h *Header, importance []bool) [][]Tile {
	width, height := int(max(h.Width, 0)), int(max(h.Height, 0))
	tiles := make([][]Tile, width)
	for x := 0; x < width && d.err == nil; x++ {
		col := make([]Tile, height)
		for y := 0; y < height && d.err == nil; {
			t, repeat := decodeTile(d, importance)
			end := min(y+repeat+1, height)
			for ; y < end; y++ {
				col[y] = t
			}
		}
		tiles[x] = col
	}
	return tiles
}

func readChests(d *decoder) []Chest {
	n := d.i16()
	perChest := d.i16()
	keep := min(max(perChest, 0), MaxChestItems)
	overflow := max(perChest-MaxChestItems, 0)

	chests := make([]Chest, 0, d.count(int32(n)))
	for i := int16(0); i < n && d.err == nil; i++ {
		c := Chest{X: d.i32(), Y: d.i32(), Name: d.str()}
		c.Items = make([]ChestItem, keep)
		for j := range c.Items {
			stack := d.i16()
			if stack == 0 {
				continue
			}
			c.Items[j] = ChestItem{ID: d.i32(), Prefix: d.u8(), Stack: max(stack, 1)}
		}
		for j := int16(0); j < overflow; j++ {
			if d.i16() > 0 {
				d.skip(5)
			}
		}
		chests = append(chests, c)
	}
	return chests
}

// readSigns drops signs that do not sit on an active sign-family tile.
func readSigns(d *decoder, w *World) []Sign {
	n := d.i16()
	signs := make([]Sign, 0, d.count(int32(n)))
	for i := int16(0); i < n && d.err == nil; i++ {
		s := Sign{Text: d.str(), X: d.i32(), Y: d.i32()}
		if t := w.Tile(int(s.X), int(s.Y)); t != nil && t.Active && IsSign(t.ID) {
			signs = append(signs, s)
		}
	}
	return signs
}

func readNPCs(d *decoder) []NPC {
	v := d.version
	shimmered := make(map[int32]bool)
	if v >= 268 {
		for _, id := range d.i32s(d.i32()) {
			shimmered[id] = true
		}
	}

	var npcs []NPC
	for d.err == nil && d.flag() {
		npc := NPC{Resident: true}
		d.npcType(&npc)
		npc.Name = d.str()
		npc.Position = d.vec()
		npc.Homeless = d.flag()
		npc.HomeX = d.i32()
		npc.HomeY = d.i32()
		if v >= 213 && d.u8()&1 != 0 {
			npc.Variation = d.i32()
		}
		npc.Shimmer = shimmered[npc.ID]
		npcs = append(npcs, npc)
	}

	if v >= 140 {
		for d.err == nil && d.flag() {
			var npc NPC
			d.npcType(&npc)
			npc.Position = d.vec()
			npcs = append(npcs, npc)
		}
	}
	return npcs
}

// npcType reads the numeric id, or the legacy type name before version 190.
func (d *decoder) npcType(npc *NPC) {
	if d.version >= 190 {
		npc.ID = d.i32()
		return
	}
	npc.LegacyName = d.str()
}

func readEntities(d *decoder) []Entity {
	n := d.i32()
	entities := make([]Entity, 0, d.count(n))
	for i := int32(0); i < n && d.err == nil; i++ {
		e := decodeEntity(d)
		if d.err == nil {
			entities = append(entities, e)
		}
	}
	return entities
}

// readLegacyDummies converts the target dummy list of versions 116 to 121.
func readLegacyDummies(d *decoder) []Entity {
	n := d.i32()
	entities := make([]Entity, 0, d.count(n))
	for i := int32(0); i < n && d.err == nil; i++ {
		entities = append(entities, Entity{ID: i, X: d.i16(), Y: d.i16(), Payload: &Dummy{NPC: -1}})
	}
	return entities
}

func readPressurePlates(d *decoder) []WeightedPressurePlate {
	n := d.i32()
	plates := make([]WeightedPressurePlate, 0, d.count(n))
	for i := int32(0); i < n && d.err == nil; i++ {
		plates = append(plates, WeightedPressurePlate{X: d.i32(), Y: d.i32()})
	}
	return plates
}

func readRooms(d *decoder) []RoomLocation {
	n := d.i32()
	rooms := make([]RoomLocation, 0, d.count(n))
	for i := int32(0); i < n && d.err == nil; i++ {
		rooms = append(rooms, RoomLocation{ID: d.i32(), X: d.i32(), Y: d.i32()})
	}
	return rooms
}

func readBestiary(d *decoder) Bestiary {
	var b Bestiary
	n := d.i32()
	b.Kills = make([]BestiaryKill, 0, d.count(n))
	for i := int32(0); i < n && d.err == nil; i++ {
		b.Kills = append(b.Kills, BestiaryKill{NPC: d.str(), Count: d.i32()})
	}
	b.Sights = d.strs(d.i32())
	b.Chats = d.strs(d.i32())
	return b
}

func (d *decoder) strs(n int32) []string {
	out := make([]string, 0, d.count(n))
	for i := int32(0); i < n && d.err == nil; i++ {
		out = append(out, d.str())
	}
	return out
}

// readCreativePowers skips codes it does not know; they carry no payload in
// any released version.
func readCreativePowers(d *decoder) []CreativePower {
	var powers []CreativePower
	for d.err == nil && d.flag() {
		p := CreativePower{Kind: CreativePowerKind(d.i16())}
		switch p.Kind {
		case PowerFreezeTime, PowerFreezeRain, PowerFreezeWind, PowerStopBiomeSpread:
			p.Enabled = d.flag()
		case PowerModifyTimeRate, PowerDifficultySlider:
			p.Value = d.f32()
		case PowerStartDay, PowerStartNoon, PowerStartNight, PowerStartMidnight,
			PowerGodmode, PowerModifyWind, PowerModifyRain, PowerFarPlacement,
			PowerSpawnRateSlider:
		default:
			continue
		}
		powers = append(powers, p)
	}
	return powers
}
