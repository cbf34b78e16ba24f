package world

import (
	"fmt"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// EntityKind is the saved tag of a tile entity.
type EntityKind uint8

const (
	EntityDummy EntityKind = iota
	EntityItemFrame
	EntityLogicSensor
	EntityDisplayDoll
	EntityWeaponsRack
	EntityHatRack
	EntityFoodPlatter
	EntityPylon
)

func (k EntityKind) String() string {
	switch k {
	case EntityDummy:
		return "dummy"
	case EntityItemFrame:
		return "item_frame"
	case EntityLogicSensor:
		return "logic_sensor"
	case EntityDisplayDoll:
		return "display_doll"
	case EntityWeaponsRack:
		return "weapons_rack"
	case EntityHatRack:
		return "hat_rack"
	case EntityFoodPlatter:
		return "food_platter"
	case EntityPylon:
		return "pylon"
	}
	return fmt.Sprintf("entity(%d)", uint8(k))
}

// Entity is a tile entity anchored at X, Y.
type Entity struct {
	ID      int32
	X, Y    int16
	Payload EntityPayload
}

// EntityPayload is implemented by *Dummy, *ItemFrame, *LogicSensor,
// *DisplayDoll, *WeaponsRack, *HatRack, *FoodPlatter and *Pylon.
type EntityPayload interface {
	Kind() EntityKind
}

type EntityItem struct {
	ID     int16
	Stack  int16
	Prefix uint8
}

type Dummy struct {
	NPC int16
}

type ItemFrame struct {
	Item EntityItem
}

type LogicSensor struct {
	Check uint8
	On    bool
}

type DisplayDoll struct {
	Items [8]EntityItem
	Dyes  [8]EntityItem
}

type WeaponsRack struct {
	Item EntityItem
}

type HatRack struct {
	Items [2]EntityItem
	Dyes  [2]EntityItem
}

type FoodPlatter struct {
	Item EntityItem
}

type Pylon struct{}

func (*Dummy) Kind() EntityKind       { return EntityDummy }
func (*ItemFrame) Kind() EntityKind   { return EntityItemFrame }
func (*LogicSensor) Kind() EntityKind { return EntityLogicSensor }
func (*DisplayDoll) Kind() EntityKind { return EntityDisplayDoll }
func (*WeaponsRack) Kind() EntityKind { return EntityWeaponsRack }
func (*HatRack) Kind() EntityKind     { return EntityHatRack }
func (*FoodPlatter) Kind() EntityKind { return EntityFoodPlatter }
func (*Pylon) Kind() EntityKind       { return EntityPylon }

// DecodeEntity reads one serialized tile entity.
func DecodeEntity(r *tnet.Reader) (Entity, error) {
	d := &decoder{r: r}
	e := decodeEntity(d)
	if d.err != nil {
		return Entity{}, d.err
	}
	return e, nil
}

func decodeEntity(d *decoder) Entity {
	kind := EntityKind(d.u8())
	e := Entity{ID: d.i32(), X: d.i16(), Y: d.i16()}
	if d.err != nil {
		return e
	}

	switch kind {
	case EntityDummy:
		e.Payload = &Dummy{NPC: d.i16()}
	case EntityItemFrame:
		e.Payload = &ItemFrame{Item: d.entityItem()}
	case EntityLogicSensor:
		e.Payload = &LogicSensor{Check: d.u8(), On: d.flag()}
	case EntityDisplayDoll:
		p := &DisplayDoll{}
		items, dyes := d.u8(), d.u8()
		d.entityItems(p.Items[:], items)
		d.entityItems(p.Dyes[:], dyes)
		e.Payload = p
	case EntityWeaponsRack:
		e.Payload = &WeaponsRack{Item: d.entityItem()}
	case EntityHatRack:
		p := &HatRack{}
		bits := d.u8()
		d.entityItems(p.Items[:], bits)
		d.entityItems(p.Dyes[:], bits>>2)
		e.Payload = p
	case EntityFoodPlatter:
		e.Payload = &FoodPlatter{Item: d.entityItem()}
	case EntityPylon:
		e.Payload = &Pylon{}
	default:
		d.err = fmt.Errorf("%w: %d", ErrInvalidEntityKind, kind)
	}
	return e
}

func (d *decoder) entityItem() EntityItem {
	return EntityItem{ID: d.i16(), Prefix: d.u8(), Stack: d.i16()}
}

// entityItems fills the slots whose bit is set in present, lowest bit first.
func (d *decoder) entityItems(slots []EntityItem, present uint8) {
	for i := range slots {
		if present&(1<<i) != 0 {
			slots[i] = d.entityItem()
		}
	}
}

// Encode appends the serialized entity: kind, id, position, payload.
func (e *Entity) Encode(w *tnet.Writer) {
	w.WriteU8(uint8(e.Payload.Kind()))
	w.WriteI32(e.ID)
	w.WriteI16(e.X)
	w.WriteI16(e.Y)

	switch p := e.Payload.(type) {
	case *Dummy:
		w.WriteI16(p.NPC)
	case *ItemFrame:
		writeEntityItem(w, p.Item)
	case *LogicSensor:
		w.WriteU8(p.Check)
		w.WriteBool(p.On)
	case *DisplayDoll:
		w.WriteU8(presentBits(p.Items[:]))
		w.WriteU8(presentBits(p.Dyes[:]))
		writeEntityItems(w, p.Items[:])
		writeEntityItems(w, p.Dyes[:])
	case *WeaponsRack:
		writeEntityItem(w, p.Item)
	case *HatRack:
		w.WriteU8(presentBits(p.Items[:]) | presentBits(p.Dyes[:])<<2)
		writeEntityItems(w, p.Items[:])
		writeEntityItems(w, p.Dyes[:])
	case *FoodPlatter:
		writeEntityItem(w, p.Item)
	case *Pylon:
	}
}

func writeEntityItem(w *tnet.Writer, it EntityItem) {
	w.WriteI16(it.ID)
	w.WriteU8(it.Prefix)
	w.WriteI16(it.Stack)
}

func writeEntityItems(w *tnet.Writer, items []EntityItem) {
	for _, it := range items {
		if it.ID != 0 {
			writeEntityItem(w, it)
		}
	}
}

func presentBits(items []EntityItem) uint8 {
	var b uint8
	for i, it := range items {
		if it.ID != 0 {
			b |= 1 << i
		}
	}
	return b
}
