package packet

import (
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

const (
	MaxBuffs = 44
	// MaxSkinVariant is PlayerVariantID.Count.
	MaxSkinVariant = 12
	MaxHair        = 165
	MaxHealthCap   = 100
)

// PlayerDetails carries a player's name and appearance.
type PlayerDetails struct {
	ClientID        uint8
	SkinVariant     uint8
	Hair            uint8
	Name            string
	HairDye         uint8
	HideAccessory   uint16
	HideMisc        uint8
	HairColor       tnet.RGB
	SkinColor       tnet.RGB
	EyeColor        tnet.RGB
	ShirtColor      tnet.RGB
	UndershirtColor tnet.RGB
	PantsColor      tnet.RGB
	ShoeColor       tnet.RGB
	// Flags1 holds difficulty (bits 0, 1, 3) and extra accessory (bit 2).
	Flags1 uint8
	// Flags2 holds biome torch and super cart unlocks.
	Flags2 uint8
	// Flags3 holds consumed permanent upgrades.
	Flags3 uint8
}

func (*PlayerDetails) Opcode() Opcode { return OpPlayerDetails }

func decodePlayerDetails(r *tnet.Reader) (*PlayerDetails, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerDetails{
		ClientID:        d.u8(),
		SkinVariant:     d.u8(),
		Hair:            d.u8(),
		Name:            d.str(),
		HairDye:         d.u8(),
		HideAccessory:   d.u16(),
		HideMisc:        d.u8(),
		HairColor:       d.rgb(),
		SkinColor:       d.rgb(),
		EyeColor:        d.rgb(),
		ShirtColor:      d.rgb(),
		UndershirtColor: d.rgb(),
		PantsColor:      d.rgb(),
		ShoeColor:       d.rgb(),
		Flags1:          d.u8(),
		Flags2:          d.u8(),
		Flags3:          d.u8(),
	})
}

func encodePlayerDetails(w *tnet.Writer, m *PlayerDetails) {
	w.WriteU8(m.ClientID)
	w.WriteU8(m.SkinVariant)
	w.WriteU8(m.Hair)
	w.WriteString(m.Name)
	w.WriteU8(m.HairDye)
	w.WriteU16(m.HideAccessory)
	w.WriteU8(m.HideMisc)
	w.WriteRGB(m.HairColor)
	w.WriteRGB(m.SkinColor)
	w.WriteRGB(m.EyeColor)
	w.WriteRGB(m.ShirtColor)
	w.WriteRGB(m.UndershirtColor)
	w.WriteRGB(m.PantsColor)
	w.WriteRGB(m.ShoeColor)
	w.WriteU8(m.Flags1)
	w.WriteU8(m.Flags2)
	w.WriteU8(m.Flags3)
}

type PlayerInventorySlot struct {
	ClientID uint8
	SlotID   int16
	Amount   int16
	Prefix   uint8
	ItemID   int16
}

func (*PlayerInventorySlot) Opcode() Opcode { return OpPlayerInventorySlot }

func decodePlayerInventorySlot(r *tnet.Reader) (*PlayerInventorySlot, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerInventorySlot{
		ClientID: d.u8(),
		SlotID:   d.i16(),
		Amount:   d.i16(),
		Prefix:   d.u8(),
		ItemID:   d.i16(),
	})
}

func encodePlayerInventorySlot(w *tnet.Writer, m *PlayerInventorySlot) {
	w.WriteU8(m.ClientID)
	w.WriteI16(m.SlotID)
	w.WriteI16(m.Amount)
	w.WriteU8(m.Prefix)
	w.WriteI16(m.ItemID)
}

type PlayerHealth struct {
	ClientID uint8
	Current  int16
	Maximum  int16
}

func (*PlayerHealth) Opcode() Opcode { return OpPlayerHealth }

func decodePlayerHealth(r *tnet.Reader) (*PlayerHealth, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerHealth{ClientID: d.u8(), Current: d.i16(), Maximum: d.i16()})
}

func encodePlayerHealth(w *tnet.Writer, m *PlayerHealth) {
	w.WriteU8(m.ClientID)
	w.WriteI16(m.Current)
	w.WriteI16(m.Maximum)
}

type PlayerBuffs struct {
	ClientID uint8
	Buffs    [MaxBuffs]uint16
}

func (*PlayerBuffs) Opcode() Opcode { return OpPlayerBuffs }

func decodePlayerBuffs(r *tnet.Reader) (*PlayerBuffs, error) {
	d := &decoder{r: r}
	m := &PlayerBuffs{ClientID: d.u8()}
	for i := range m.Buffs {
		m.Buffs[i] = d.u16()
	}
	return finish(d, m)
}

func encodePlayerBuffs(w *tnet.Writer, m *PlayerBuffs) {
	w.WriteU8(m.ClientID)
	for _, b := range m.Buffs {
		w.WriteU16(b)
	}
}

type PlayerLoadout struct {
	ClientID      uint8
	Index         uint8
	HideAccessory uint16
}

func (*PlayerLoadout) Opcode() Opcode { return OpPlayerLoadout }

func decodePlayerLoadout(r *tnet.Reader) (*PlayerLoadout, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerLoadout{ClientID: d.u8(), Index: d.u8(), HideAccessory: d.u16()})
}

func encodePlayerLoadout(w *tnet.Writer, m *PlayerLoadout) {
	w.WriteU8(m.ClientID)
	w.WriteU8(m.Index)
	w.WriteU16(m.HideAccessory)
}

// Bits of PlayerAction.Pulley and PlayerAction.Misc that gate optional fields.
const (
	PulleyHasVelocity   = 1 << 2
	MiscHasPotionReturn = 1 << 6
)

// PlayerAction is the per-tick movement and input state of a player.
type PlayerAction struct {
	ClientID     uint8
	Control      uint8
	Pulley       uint8
	Misc         uint8
	Sleeping     uint8
	SelectedItem uint8
	Position     tnet.Vector2
	// Velocity is present when Pulley has PulleyHasVelocity.
	Velocity tnet.Vector2
	// PotionOrigin and PotionHome are present when Misc has MiscHasPotionReturn.
	PotionOrigin tnet.Vector2
	PotionHome   tnet.Vector2
}

func (*PlayerAction) Opcode() Opcode { return OpPlayerAction }

func decodePlayerAction(r *tnet.Reader) (*PlayerAction, error) {
	d := &decoder{r: r}
	m := &PlayerAction{
		ClientID:     d.u8(),
		Control:      d.u8(),
		Pulley:       d.u8(),
		Misc:         d.u8(),
		Sleeping:     d.u8(),
		SelectedItem: d.u8(),
		Position:     d.vec(),
	}
	if m.Pulley&PulleyHasVelocity != 0 {
		m.Velocity = d.vec()
	}
	if m.Misc&MiscHasPotionReturn != 0 {
		m.PotionOrigin = d.vec()
		m.PotionHome = d.vec()
	}
	return finish(d, m)
}

func encodePlayerAction(w *tnet.Writer, m *PlayerAction) {
	w.WriteU8(m.ClientID)
	w.WriteU8(m.Control)
	w.WriteU8(m.Pulley)
	w.WriteU8(m.Misc)
	w.WriteU8(m.Sleeping)
	w.WriteU8(m.SelectedItem)
	w.WriteVector2(m.Position)
	if m.Pulley&PulleyHasVelocity != 0 {
		w.WriteVector2(m.Velocity)
	}
	if m.Misc&MiscHasPotionReturn != 0 {
		w.WriteVector2(m.PotionOrigin)
		w.WriteVector2(m.PotionHome)
	}
}

type PlayerSpawnRequest struct {
	ClientID     uint8
	X            int16
	Y            int16
	RespawnTimer int32
	DeathsPVE    int16
	DeathsPVP    int16
	Context      uint8
}

func (*PlayerSpawnRequest) Opcode() Opcode { return OpPlayerSpawnRequest }

func decodePlayerSpawnRequest(r *tnet.Reader) (*PlayerSpawnRequest, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerSpawnRequest{
		ClientID:     d.u8(),
		X:            d.i16(),
		Y:            d.i16(),
		RespawnTimer: d.i32(),
		DeathsPVE:    d.i16(),
		DeathsPVP:    d.i16(),
		Context:      d.u8(),
	})
}

func encodePlayerSpawnRequest(w *tnet.Writer, m *PlayerSpawnRequest) {
	w.WriteU8(m.ClientID)
	w.WriteI16(m.X)
	w.WriteI16(m.Y)
	w.WriteI32(m.RespawnTimer)
	w.WriteI16(m.DeathsPVE)
	w.WriteI16(m.DeathsPVP)
	w.WriteU8(m.Context)
}

type PlayerReserveItem struct {
	ItemIndex int16
	ClientID  uint8
}

func (*PlayerReserveItem) Opcode() Opcode { return OpPlayerReserveItem }

func decodePlayerReserveItem(r *tnet.Reader) (*PlayerReserveItem, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerReserveItem{ItemIndex: d.i16(), ClientID: d.u8()})
}

func encodePlayerReserveItem(w *tnet.Writer, m *PlayerReserveItem) {
	w.WriteI16(m.ItemIndex)
	w.WriteU8(m.ClientID)
}

type PlayInstrument struct {
	ClientID uint8
	Pitch    float32
}

func (*PlayInstrument) Opcode() Opcode { return OpPlayInstrument }

func decodePlayInstrument(r *tnet.Reader) (*PlayInstrument, error) {
	d := &decoder{r: r}
	return finish(d, &PlayInstrument{ClientID: d.u8(), Pitch: d.f32()})
}

func encodePlayInstrument(w *tnet.Writer, m *PlayInstrument) {
	w.WriteU8(m.ClientID)
	w.WriteF32(m.Pitch)
}

type PlayerPickTile struct {
	ClientID uint8
	X        int16
	Y        int16
	Damage   uint8
}

func (*PlayerPickTile) Opcode() Opcode { return OpPlayerPickTile }

func decodePlayerPickTile(r *tnet.Reader) (*PlayerPickTile, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerPickTile{ClientID: d.u8(), X: d.i16(), Y: d.i16(), Damage: d.u8()})
}

func encodePlayerPickTile(w *tnet.Writer, m *PlayerPickTile) {
	w.WriteU8(m.ClientID)
	w.WriteI16(m.X)
	w.WriteI16(m.Y)
	w.WriteU8(m.Damage)
}

// Tile modification actions carried by UpdateTile.
const (
	TileActionKillTile  = 0
	TileActionPlaceTile = 1
	TileActionKillWall  = 2
)

type UpdateTile struct {
	Action uint8
	X      int16
	Y      int16
	// Target is the tile or wall type; for kill actions a nonzero value
	// means the hit failed.
	Target int16
	Style  uint8
}

func (*UpdateTile) Opcode() Opcode { return OpUpdateTile }

func decodeUpdateTile(r *tnet.Reader) (*UpdateTile, error) {
	d := &decoder{r: r}
	return finish(d, &UpdateTile{Action: d.u8(), X: d.i16(), Y: d.i16(), Target: d.i16(), Style: d.u8()})
}

func encodeUpdateTile(w *tnet.Writer, m *UpdateTile) {
	w.WriteU8(m.Action)
	w.WriteI16(m.X)
	w.WriteI16(m.Y)
	w.WriteI16(m.Target)
	w.WriteU8(m.Style)
}

// DropItem spawns (or updates) a world item.
type DropItem struct {
	ID        int16
	Position  tnet.Vector2
	Velocity  tnet.Vector2
	Stack     int16
	Prefix    uint8
	OwnIgnore uint8
	ItemID    int16
}

func (*DropItem) Opcode() Opcode { return OpDropItem }

func decodeDropItem(r *tnet.Reader) (*DropItem, error) {
	d := &decoder{r: r}
	return finish(d, &DropItem{
		ID:        d.i16(),
		Position:  d.vec(),
		Velocity:  d.vec(),
		Stack:     d.i16(),
		Prefix:    d.u8(),
		OwnIgnore: d.u8(),
		ItemID:    d.i16(),
	})
}

func encodeDropItem(w *tnet.Writer, m *DropItem) {
	w.WriteI16(m.ID)
	w.WriteVector2(m.Position)
	w.WriteVector2(m.Velocity)
	w.WriteI16(m.Stack)
	w.WriteU8(m.Prefix)
	w.WriteU8(m.OwnIgnore)
	w.WriteI16(m.ItemID)
}
