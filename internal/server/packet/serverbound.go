package packet

import (
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// Client-to-server only variants. Their encoders exist for tests and tooling
// that play the client side.

type WorldRequest struct{}

func (*WorldRequest) Opcode() Opcode { return OpWorldRequest }

// SpawnRequest asks for the sections around spawn and, when in bounds, the
// given tile position.
type SpawnRequest struct {
	X int32
	Y int32
}

func (*SpawnRequest) Opcode() Opcode { return OpSpawnRequest }

func decodeSpawnRequest(r *tnet.Reader) (*SpawnRequest, error) {
	d := &decoder{r: r}
	return finish(d, &SpawnRequest{X: d.i32(), Y: d.i32()})
}

func encodeSpawnRequest(w *tnet.Writer, m *SpawnRequest) {
	w.WriteI32(m.X)
	w.WriteI32(m.Y)
}

type PlayerMana struct {
	ClientID uint8
	Current  int16
	Maximum  int16
}

func (*PlayerMana) Opcode() Opcode { return OpPlayerMana }

func decodePlayerMana(r *tnet.Reader) (*PlayerMana, error) {
	d := &decoder{r: r}
	return finish(d, &PlayerMana{ClientID: d.u8(), Current: d.i16(), Maximum: d.i16()})
}

func encodePlayerMana(w *tnet.Writer, m *PlayerMana) {
	w.WriteU8(m.ClientID)
	w.WriteI16(m.Current)
	w.WriteI16(m.Maximum)
}

// UUID is the client's persistent player identifier as text.
type UUID struct {
	UUID string
}

func (*UUID) Opcode() Opcode { return OpUUID }

func decodeUUID(r *tnet.Reader) (*UUID, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &UUID{UUID: s}, nil
}

func encodeUUID(w *tnet.Writer, m *UUID) {
	w.WriteString(m.UUID)
}

type InventorySynced struct{}

func (*InventorySynced) Opcode() Opcode { return OpInventorySynced }
