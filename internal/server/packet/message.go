package packet

import (
	"errors"
	"fmt"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// Opcode identifies a message variant on the wire.
type Opcode uint8

const (
	OpVersionIdentifier   Opcode = 1
	OpConnectionRefuse    Opcode = 2
	OpConnectionApprove   Opcode = 3
	OpPlayerDetails       Opcode = 4
	OpPlayerInventorySlot Opcode = 5
	OpWorldRequest        Opcode = 6
	OpWorldHeader         Opcode = 7
	OpSpawnRequest        Opcode = 8
	OpSpawnResponse       Opcode = 9
	OpSection             Opcode = 10
	OpPlayerSpawnRequest  Opcode = 12
	OpPlayerAction        Opcode = 13
	OpPlayerHealth        Opcode = 16
	OpUpdateTile          Opcode = 17
	OpDropItem            Opcode = 21
	OpPlayerReserveItem   Opcode = 22
	OpNPCInfo             Opcode = 23
	OpPasswordRequest     Opcode = 37
	OpPasswordResponse    Opcode = 38
	OpPlayerMana          Opcode = 42
	OpPlayerSpawnResponse Opcode = 49
	OpPlayerBuffs         Opcode = 50
	OpWorldTotals         Opcode = 57
	OpPlayInstrument      Opcode = 58
	OpUUID                Opcode = 68
	OpAnglerQuest         Opcode = 74
	OpInvasionProgress    Opcode = 78
	OpKillCount           Opcode = 83
	OpPillarsStatus       Opcode = 101
	OpPlayerPickTile      Opcode = 125
	OpPlayerSyncDone      Opcode = 129
	OpMonsterTypes        Opcode = 136
	OpInventorySynced     Opcode = 138
	OpPlayerLoadout       Opcode = 147
)

// Direction records which side may send a variant.
type Direction uint8

const (
	ToServer Direction = 1 << iota
	ToClient
	Both = ToServer | ToClient
)

// ErrUnserializable is returned when encoding a variant only clients send.
var ErrUnserializable = errors.New("message is client-to-server only")

// Message is one of the variant types in this package. The concrete type is
// the tag; handlers switch on it.
type Message interface {
	Opcode() Opcode
}

// Custom carries an opcode the table does not decode, or a raw body the server
// wants to send as is.
type Custom struct {
	Code Opcode
	Body []byte
}

func (m *Custom) Opcode() Opcode { return m.Code }

type codec struct {
	name   string
	dir    Direction
	decode func(r *tnet.Reader) (Message, error)
	encode func(w *tnet.Writer, m Message)
}

func variant[M Message](name string, dir Direction, dec func(r *tnet.Reader) (M, error), enc func(w *tnet.Writer, m M)) codec {
	return codec{
		name: name,
		dir:  dir,
		decode: func(r *tnet.Reader) (Message, error) {
			m, err := dec(r)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		encode: func(w *tnet.Writer, m Message) { enc(w, m.(M)) },
	}
}

// empty builds the codec pair for variants without a payload.
func empty[M Message](name string, dir Direction, zero func() M) codec {
	return variant(name, dir,
		func(*tnet.Reader) (M, error) { return zero(), nil },
		func(*tnet.Writer, M) {})
}

var table = map[Opcode]codec{
	OpVersionIdentifier:   variant("VersionIdentifier", ToServer, decodeVersionIdentifier, encodeVersionIdentifier),
	OpConnectionRefuse:    variant("ConnectionRefuse", ToClient, decodeConnectionRefuse, encodeConnectionRefuse),
	OpConnectionApprove:   variant("ConnectionApprove", ToClient, decodeConnectionApprove, encodeConnectionApprove),
	OpPlayerDetails:       variant("PlayerDetails", Both, decodePlayerDetails, encodePlayerDetails),
	OpPlayerInventorySlot: variant("PlayerInventorySlot", Both, decodePlayerInventorySlot, encodePlayerInventorySlot),
	OpWorldRequest:        empty("WorldRequest", ToServer, func() *WorldRequest { return &WorldRequest{} }),
	OpWorldHeader:         variant("WorldHeader", ToClient, decodeWorldHeader, encodeWorldHeader),
	OpSpawnRequest:        variant("SpawnRequest", ToServer, decodeSpawnRequest, encodeSpawnRequest),
	OpSpawnResponse:       variant("SpawnResponse", ToClient, decodeSpawnResponse, encodeSpawnResponse),
	OpPlayerSpawnRequest:  variant("PlayerSpawnRequest", Both, decodePlayerSpawnRequest, encodePlayerSpawnRequest),
	OpPlayerAction:        variant("PlayerAction", Both, decodePlayerAction, encodePlayerAction),
	OpPlayerHealth:        variant("PlayerHealth", Both, decodePlayerHealth, encodePlayerHealth),
	OpUpdateTile:          variant("UpdateTile", Both, decodeUpdateTile, encodeUpdateTile),
	OpDropItem:            variant("DropItem", Both, decodeDropItem, encodeDropItem),
	OpPlayerReserveItem:   variant("PlayerReserveItem", Both, decodePlayerReserveItem, encodePlayerReserveItem),
	OpNPCInfo:             variant("NPCInfo", ToClient, decodeNPCInfo, encodeNPCInfo),
	OpPasswordRequest:     empty("PasswordRequest", ToClient, func() *PasswordRequest { return &PasswordRequest{} }),
	OpPasswordResponse:    variant("PasswordResponse", ToServer, decodePasswordResponse, encodePasswordResponse),
	OpPlayerMana:          variant("PlayerMana", ToServer, decodePlayerMana, encodePlayerMana),
	OpPlayerSpawnResponse: empty("PlayerSpawnResponse", ToClient, func() *PlayerSpawnResponse { return &PlayerSpawnResponse{} }),
	OpPlayerBuffs:         variant("PlayerBuffs", Both, decodePlayerBuffs, encodePlayerBuffs),
	OpWorldTotals:         variant("WorldTotals", ToClient, decodeWorldTotals, encodeWorldTotals),
	OpPlayInstrument:      variant("PlayInstrument", Both, decodePlayInstrument, encodePlayInstrument),
	OpUUID:                variant("UUID", ToServer, decodeUUID, encodeUUID),
	OpAnglerQuest:         variant("AnglerQuest", ToClient, decodeAnglerQuest, encodeAnglerQuest),
	OpInvasionProgress:    variant("InvasionProgress", ToClient, decodeInvasionProgress, encodeInvasionProgress),
	OpKillCount:           variant("KillCount", ToClient, decodeKillCount, encodeKillCount),
	OpPillarsStatus:       variant("PillarsStatus", ToClient, decodePillarsStatus, encodePillarsStatus),
	OpPlayerPickTile:      variant("PlayerPickTile", Both, decodePlayerPickTile, encodePlayerPickTile),
	OpPlayerSyncDone:      empty("PlayerSyncDone", ToClient, func() *PlayerSyncDone { return &PlayerSyncDone{} }),
	OpMonsterTypes:        variant("MonsterTypes", ToClient, decodeMonsterTypes, encodeMonsterTypes),
	OpInventorySynced:     empty("InventorySynced", ToServer, func() *InventorySynced { return &InventorySynced{} }),
	OpPlayerLoadout:       variant("PlayerLoadout", Both, decodePlayerLoadout, encodePlayerLoadout),
}

func (op Opcode) String() string {
	if c, ok := table[op]; ok {
		return c.name
	}
	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// Decode parses a frame received by the server. Opcodes the server is not
// meant to receive come back as *Custom.
func Decode(f tnet.Frame) (Message, error) {
	return decodeAs(f, ToServer)
}

// DecodeClientbound parses a frame as a client would receive it.
func DecodeClientbound(f tnet.Frame) (Message, error) {
	return decodeAs(f, ToClient)
}

func decodeAs(f tnet.Frame, dir Direction) (Message, error) {
	op := Opcode(f.Opcode)
	c, ok := table[op]
	if !ok || c.dir&dir == 0 {
		return &Custom{Code: op, Body: f.Body}, nil
	}
	m, err := c.decode(tnet.NewReader(f.Body))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return m, nil
}

// AppendFrame encodes m as a complete server-to-client frame appended to w.
func AppendFrame(w *tnet.Writer, m Message) error {
	return appendAs(w, m, ToClient)
}

// Encode returns m as a standalone server-to-client frame.
func Encode(m Message) ([]byte, error) {
	w := tnet.NewWriter(64)
	if err := AppendFrame(w, m); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeServerbound returns m as a frame a client would send.
func EncodeServerbound(m Message) ([]byte, error) {
	w := tnet.NewWriter(64)
	if err := appendAs(w, m, ToServer); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func appendAs(w *tnet.Writer, m Message, dir Direction) error {
	if c, ok := m.(*Custom); ok {
		off := tnet.BeginFrame(w, uint8(c.Code))
		w.WriteBytes(c.Body)
		return tnet.EndFrame(w, off)
	}

	op := m.Opcode()
	c, ok := table[op]
	if !ok {
		return fmt.Errorf("encode opcode %d: unknown variant", uint8(op))
	}
	if c.dir&dir == 0 {
		if dir == ToClient {
			return fmt.Errorf("encode %s: %w", c.name, ErrUnserializable)
		}
		return fmt.Errorf("encode %s: server-to-client only", c.name)
	}
	off := tnet.BeginFrame(w, uint8(op))
	c.encode(w, m)
	return tnet.EndFrame(w, off)
}
