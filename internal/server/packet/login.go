package packet

import (
	"math"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// WorldHeader is the client's view of the world header.
type WorldHeader struct {
	Time int32
	// DayInfo bits: 0 day time, 1 blood moon, 2 eclipse.
	DayInfo         uint8
	MoonPhase       uint8
	MaxTilesX       int16
	MaxTilesY       int16
	SpawnX          int16
	SpawnY          int16
	WorldSurface    int16
	RockLayer       int16
	WorldID         int32
	WorldName       string
	GameMode        uint8
	UUID            [16]byte
	WorldGenVersion uint64
	MoonType        uint8
	// Backgrounds in wire order: tree 1-4, corruption, jungle, snow, hallow,
	// crimson, desert, ocean, mushroom, underworld.
	Backgrounds     [13]uint8
	IceBackStyle    uint8
	JungleBackStyle uint8
	HellBackStyle   uint8
	WindSpeedTarget float32
	NumClouds       uint8
	TreeX           [3]int32
	TreeStyle       [4]uint8
	CaveBackX       [3]int32
	CaveBackStyle   [4]uint8
	TreeTops        [13]uint8
	MaxRaining      float32
	// EventFlags are the progression bit bytes; see world.WorldInfo.
	EventFlags        [10]uint8
	SundialCooldown   uint8
	MoondialCooldown  uint8
	OreTiers          [7]int16
	InvasionType      int8
	LobbyID           uint64
	SandstormSeverity float32
}

func (*WorldHeader) Opcode() Opcode { return OpWorldHeader }

func decodeWorldHeader(r *tnet.Reader) (*WorldHeader, error) {
	d := &decoder{r: r}
	m := &WorldHeader{
		Time:            d.i32(),
		DayInfo:         d.u8(),
		MoonPhase:       d.u8(),
		MaxTilesX:       d.i16(),
		MaxTilesY:       d.i16(),
		SpawnX:          d.i16(),
		SpawnY:          d.i16(),
		WorldSurface:    d.i16(),
		RockLayer:       d.i16(),
		WorldID:         d.i32(),
		WorldName:       d.str(),
		GameMode:        d.u8(),
		UUID:            [16]byte(d.raw16()),
		WorldGenVersion: d.u64(),
		MoonType:        d.u8(),
	}
	for i := range m.Backgrounds {
		m.Backgrounds[i] = d.u8()
	}
	m.IceBackStyle = d.u8()
	m.JungleBackStyle = d.u8()
	m.HellBackStyle = d.u8()
	m.WindSpeedTarget = d.f32()
	m.NumClouds = d.u8()
	for i := range m.TreeX {
		m.TreeX[i] = d.i32()
	}
	for i := range m.TreeStyle {
		m.TreeStyle[i] = d.u8()
	}
	for i := range m.CaveBackX {
		m.CaveBackX[i] = d.i32()
	}
	for i := range m.CaveBackStyle {
		m.CaveBackStyle[i] = d.u8()
	}
	for i := range m.TreeTops {
		m.TreeTops[i] = d.u8()
	}
	m.MaxRaining = d.f32()
	for i := range m.EventFlags {
		m.EventFlags[i] = d.u8()
	}
	m.SundialCooldown = d.u8()
	m.MoondialCooldown = d.u8()
	for i := range m.OreTiers {
		m.OreTiers[i] = d.i16()
	}
	m.InvasionType = d.i8()
	m.LobbyID = d.u64()
	m.SandstormSeverity = d.f32()
	return finish(d, m)
}

func encodeWorldHeader(w *tnet.Writer, m *WorldHeader) {
	w.WriteI32(m.Time)
	w.WriteU8(m.DayInfo)
	w.WriteU8(m.MoonPhase)
	w.WriteI16(m.MaxTilesX)
	w.WriteI16(m.MaxTilesY)
	w.WriteI16(m.SpawnX)
	w.WriteI16(m.SpawnY)
	w.WriteI16(m.WorldSurface)
	w.WriteI16(m.RockLayer)
	w.WriteI32(m.WorldID)
	w.WriteString(m.WorldName)
	w.WriteU8(m.GameMode)
	w.WriteBytes(m.UUID[:])
	w.WriteU64(m.WorldGenVersion)
	w.WriteU8(m.MoonType)
	w.WriteBytes(m.Backgrounds[:])
	w.WriteU8(m.IceBackStyle)
	w.WriteU8(m.JungleBackStyle)
	w.WriteU8(m.HellBackStyle)
	w.WriteF32(m.WindSpeedTarget)
	w.WriteU8(m.NumClouds)
	for _, x := range m.TreeX {
		w.WriteI32(x)
	}
	w.WriteBytes(m.TreeStyle[:])
	for _, x := range m.CaveBackX {
		w.WriteI32(x)
	}
	w.WriteBytes(m.CaveBackStyle[:])
	w.WriteBytes(m.TreeTops[:])
	w.WriteF32(m.MaxRaining)
	w.WriteBytes(m.EventFlags[:])
	w.WriteU8(m.SundialCooldown)
	w.WriteU8(m.MoondialCooldown)
	for _, t := range m.OreTiers {
		w.WriteI16(t)
	}
	w.WriteI8(m.InvasionType)
	w.WriteU64(m.LobbyID)
	w.WriteF32(m.SandstormSeverity)
}

func (d *decoder) raw16() []byte {
	b := d.raw(16)
	if b == nil {
		return make([]byte, 16)
	}
	return b
}

// SpawnResponse is the status line shown while sections stream in; Status is
// the number of sections that follow.
type SpawnResponse struct {
	Status int32
	Text   tnet.Text
	Flags  uint8
}

func (*SpawnResponse) Opcode() Opcode { return OpSpawnResponse }

func decodeSpawnResponse(r *tnet.Reader) (*SpawnResponse, error) {
	d := &decoder{r: r}
	return finish(d, &SpawnResponse{Status: d.i32(), Text: d.text(), Flags: d.u8()})
}

func encodeSpawnResponse(w *tnet.Writer, m *SpawnResponse) {
	w.WriteI32(m.Status)
	w.WriteText(m.Text)
	w.WriteU8(m.Flags)
}

type PlayerSpawnResponse struct{}

func (*PlayerSpawnResponse) Opcode() Opcode { return OpPlayerSpawnResponse }

type PlayerSyncDone struct{}

func (*PlayerSyncDone) Opcode() Opcode { return OpPlayerSyncDone }

// NPCInfo flag bits.
const (
	NPCFlags1LifeMax      = 1 << 7
	NPCFlags2StatsScaled  = 1 << 0
	NPCFlags2StrengthMult = 1 << 2
)

// NPCInfo synchronizes one active NPC.
type NPCInfo struct {
	ID       int16
	Position tnet.Vector2
	Velocity tnet.Vector2
	Target   uint16
	// Flags1: 0 direction, 1 vertical direction, 2-5 ai[i] present,
	// 6 sprite direction, 7 at full life.
	Flags1 uint8
	Flags2 uint8
	AI     [4]float32
	Type   int16
	// PlayerScale is present with NPCFlags2StatsScaled.
	PlayerScale uint8
	// Strength is present with NPCFlags2StrengthMult.
	Strength float32
	// Life is present unless NPCFlags1LifeMax is set.
	Life            int32
	HasReleaseOwner bool
	ReleaseOwner    uint8
}

func (*NPCInfo) Opcode() Opcode { return OpNPCInfo }

func aiBit(i int) uint8 { return 1 << (2 + i) }

func decodeNPCInfo(r *tnet.Reader) (*NPCInfo, error) {
	d := &decoder{r: r}
	m := &NPCInfo{
		ID:       d.i16(),
		Position: d.vec(),
		Velocity: d.vec(),
		Target:   d.u16(),
		Flags1:   d.u8(),
		Flags2:   d.u8(),
	}
	for i := range m.AI {
		if m.Flags1&aiBit(i) != 0 {
			m.AI[i] = d.f32()
		}
	}
	m.Type = d.i16()
	if m.Flags2&NPCFlags2StatsScaled != 0 {
		m.PlayerScale = d.u8()
	}
	if m.Flags2&NPCFlags2StrengthMult != 0 {
		m.Strength = d.f32()
	}
	if m.Flags1&NPCFlags1LifeMax == 0 {
		switch d.u8() {
		case 2:
			m.Life = int32(d.i16())
		case 4:
			m.Life = d.i32()
		default:
			m.Life = int32(d.i8())
		}
	}
	if d.err == nil && r.Len() > 0 {
		m.HasReleaseOwner = true
		m.ReleaseOwner = d.u8()
	}
	return finish(d, m)
}

func encodeNPCInfo(w *tnet.Writer, m *NPCInfo) {
	w.WriteI16(m.ID)
	w.WriteVector2(m.Position)
	w.WriteVector2(m.Velocity)
	w.WriteU16(m.Target)
	w.WriteU8(m.Flags1)
	w.WriteU8(m.Flags2)
	for i, ai := range m.AI {
		if m.Flags1&aiBit(i) != 0 {
			w.WriteF32(ai)
		}
	}
	w.WriteI16(m.Type)
	if m.Flags2&NPCFlags2StatsScaled != 0 {
		w.WriteU8(m.PlayerScale)
	}
	if m.Flags2&NPCFlags2StrengthMult != 0 {
		w.WriteF32(m.Strength)
	}
	if m.Flags1&NPCFlags1LifeMax == 0 {
		switch {
		case m.Life > math.MaxInt16 || m.Life < math.MinInt16:
			w.WriteU8(4)
			w.WriteI32(m.Life)
		case m.Life > math.MaxInt8 || m.Life < math.MinInt8:
			w.WriteU8(2)
			w.WriteI16(int16(m.Life))
		default:
			w.WriteU8(1)
			w.WriteI8(int8(m.Life))
		}
	}
	if m.HasReleaseOwner {
		w.WriteU8(m.ReleaseOwner)
	}
}
