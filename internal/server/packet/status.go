package packet

import (
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// WorldTotals reports the good/evil/blood percentages of the world.
type WorldTotals struct {
	Good  uint8
	Evil  uint8
	Blood uint8
}

func (*WorldTotals) Opcode() Opcode { return OpWorldTotals }

func decodeWorldTotals(r *tnet.Reader) (*WorldTotals, error) {
	d := &decoder{r: r}
	return finish(d, &WorldTotals{Good: d.u8(), Evil: d.u8(), Blood: d.u8()})
}

func encodeWorldTotals(w *tnet.Writer, m *WorldTotals) {
	w.WriteU8(m.Good)
	w.WriteU8(m.Evil)
	w.WriteU8(m.Blood)
}

type AnglerQuest struct {
	Quest    uint8
	Finished bool
}

func (*AnglerQuest) Opcode() Opcode { return OpAnglerQuest }

func decodeAnglerQuest(r *tnet.Reader) (*AnglerQuest, error) {
	d := &decoder{r: r}
	return finish(d, &AnglerQuest{Quest: d.u8(), Finished: d.flag()})
}

func encodeAnglerQuest(w *tnet.Writer, m *AnglerQuest) {
	w.WriteU8(m.Quest)
	w.WriteBool(m.Finished)
}

type InvasionProgress struct {
	Progress int32
	Max      int32
	Icon     int8
	Wave     int8
}

func (*InvasionProgress) Opcode() Opcode { return OpInvasionProgress }

func decodeInvasionProgress(r *tnet.Reader) (*InvasionProgress, error) {
	d := &decoder{r: r}
	return finish(d, &InvasionProgress{Progress: d.i32(), Max: d.i32(), Icon: d.i8(), Wave: d.i8()})
}

func encodeInvasionProgress(w *tnet.Writer, m *InvasionProgress) {
	w.WriteI32(m.Progress)
	w.WriteI32(m.Max)
	w.WriteI8(m.Icon)
	w.WriteI8(m.Wave)
}

// KillCount is the banner kill tally for one NPC type.
type KillCount struct {
	ID     uint16
	Amount uint32
}

func (*KillCount) Opcode() Opcode { return OpKillCount }

func decodeKillCount(r *tnet.Reader) (*KillCount, error) {
	d := &decoder{r: r}
	return finish(d, &KillCount{ID: d.u16(), Amount: d.u32()})
}

func encodeKillCount(w *tnet.Writer, m *KillCount) {
	w.WriteU16(m.ID)
	w.WriteU32(m.Amount)
}

// PillarsStatus carries the shield strength of the four celestial towers.
type PillarsStatus struct {
	Solar    uint16
	Vortex   uint16
	Nebula   uint16
	Stardust uint16
}

func (*PillarsStatus) Opcode() Opcode { return OpPillarsStatus }

func decodePillarsStatus(r *tnet.Reader) (*PillarsStatus, error) {
	d := &decoder{r: r}
	return finish(d, &PillarsStatus{Solar: d.u16(), Vortex: d.u16(), Nebula: d.u16(), Stardust: d.u16()})
}

func encodePillarsStatus(w *tnet.Writer, m *PillarsStatus) {
	w.WriteU16(m.Solar)
	w.WriteU16(m.Vortex)
	w.WriteU16(m.Nebula)
	w.WriteU16(m.Stardust)
}

// MonsterTypes lists the cavern monster types, two rows of three.
type MonsterTypes struct {
	Types [6]uint16
}

// DefaultMonsterTypes is what a freshly started server reports.
var DefaultMonsterTypes = [6]uint16{506, 506, 499, 495, 494, 495}

func (*MonsterTypes) Opcode() Opcode { return OpMonsterTypes }

func decodeMonsterTypes(r *tnet.Reader) (*MonsterTypes, error) {
	d := &decoder{r: r}
	m := &MonsterTypes{}
	for i := range m.Types {
		m.Types[i] = d.u16()
	}
	return finish(d, m)
}

func encodeMonsterTypes(w *tnet.Writer, m *MonsterTypes) {
	for _, t := range m.Types {
		w.WriteU16(t)
	}
}
