package packet

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

func readFrame(t *testing.T, b []byte) tnet.Frame {
	t.Helper()
	f, err := tnet.ReadFrame(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	return f
}

func TestEncodeConnectionApprove(t *testing.T) {
	got, err := Encode(&ConnectionApprove{ClientID: 0, Flag: false})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0x05, 0x00, 0x03, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % X, want % X", got, want)
	}
}

func TestEncodePasswordRequest(t *testing.T) {
	got, err := Encode(&PasswordRequest{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(got, []byte{0x03, 0x00, 0x25}) {
		t.Errorf("Encode = % X, want 03 00 25", got)
	}
}

func TestEncodeRefuse(t *testing.T) {
	got, err := Encode(Refuse(ReasonVersionMismatch))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var want []byte
	want = append(want, 0, 0, byte(OpConnectionRefuse), byte(tnet.TextLocalizationKey), 19)
	want = append(want, "LegacyMultiplayer.4"...)
	want = append(want, 0)
	want[0] = byte(len(want))
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % X, want % X", got, want)
	}
}

func TestDecodeVersionIdentifier(t *testing.T) {
	raw := append([]byte{0x0F, 0x00, 0x01, 0x0B}, "Terraria279"...)
	m, err := Decode(readFrame(t, raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, ok := m.(*VersionIdentifier)
	if !ok {
		t.Fatalf("Decode = %T, want *VersionIdentifier", m)
	}
	if v.Version != "Terraria279" {
		t.Errorf("Version = %q, want %q", v.Version, "Terraria279")
	}
}

func TestDecodeOutboundOnlyIsCustom(t *testing.T) {
	raw := []byte{0x05, 0x00, 0x03, 0x07, 0x00}
	m, err := Decode(readFrame(t, raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c, ok := m.(*Custom)
	if !ok {
		t.Fatalf("Decode = %T, want *Custom", m)
	}
	if c.Code != OpConnectionApprove || !bytes.Equal(c.Body, []byte{0x07, 0x00}) {
		t.Errorf("Custom = %+v", c)
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	raw := []byte{0x05, 0x00, 0xFA, 0x01, 0x02}
	m, err := Decode(readFrame(t, raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c, ok := m.(*Custom)
	if !ok || c.Code != 0xFA {
		t.Fatalf("Decode = %#v, want Custom(250)", m)
	}

	out, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("Encode(Custom) = % X, want % X", out, raw)
	}
}

func TestDecodeTruncated(t *testing.T) {
	// PlayerHealth needs five bytes of payload.
	raw := []byte{0x05, 0x00, 0x10, 0x01, 0x02}
	if _, err := Decode(readFrame(t, raw)); !errors.Is(err, tnet.ErrUnexpectedEOF) {
		t.Errorf("Decode err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestEncodeInboundOnly(t *testing.T) {
	tests := []Message{
		&VersionIdentifier{Version: "Terraria279"},
		&PasswordResponse{Password: "x"},
		&WorldRequest{},
		&SpawnRequest{X: 1, Y: 2},
		&PlayerMana{},
		&UUID{UUID: "x"},
		&InventorySynced{},
	}
	for _, m := range tests {
		t.Run(m.Opcode().String(), func(t *testing.T) {
			if _, err := Encode(m); !errors.Is(err, ErrUnserializable) {
				t.Errorf("Encode err = %v, want ErrUnserializable", err)
			}
			if _, err := EncodeServerbound(m); err != nil {
				t.Errorf("EncodeServerbound: %v", err)
			}
		})
	}
}

func TestEncodeServerboundRejectsOutbound(t *testing.T) {
	if _, err := EncodeServerbound(&ConnectionApprove{}); err == nil {
		t.Error("EncodeServerbound(ConnectionApprove) succeeded")
	}
}

func TestServerboundRoundTrip(t *testing.T) {
	tests := []Message{
		&VersionIdentifier{Version: "Terraria279"},
		&PasswordResponse{Password: "hunter2"},
		&WorldRequest{},
		&SpawnRequest{X: -1, Y: -1},
		&PlayerMana{ClientID: 3, Current: 20, Maximum: 200},
		&UUID{UUID: "01234567-89ab-cdef-0123-456789abcdef"},
		&InventorySynced{},
	}
	for _, m := range tests {
		t.Run(m.Opcode().String(), func(t *testing.T) {
			raw, err := EncodeServerbound(m)
			if err != nil {
				t.Fatalf("EncodeServerbound: %v", err)
			}
			got, err := Decode(readFrame(t, raw))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, m) {
				t.Errorf("Decode = %+v, want %+v", got, m)
			}
		})
	}
}

func TestClientboundRoundTrip(t *testing.T) {
	var buffs PlayerBuffs
	buffs.ClientID = 2
	buffs.Buffs[0] = 1
	buffs.Buffs[43] = 355

	header := &WorldHeader{
		Time:            27000,
		DayInfo:         1,
		MaxTilesX:       4200,
		MaxTilesY:       1200,
		SpawnX:          2100,
		SpawnY:          300,
		WorldID:         77,
		WorldName:       "Test World",
		GameMode:        1,
		UUID:            [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		WorldGenVersion: 1 << 40,
		TreeX:           [3]int32{100, 200, 300},
		TreeTops:        [13]uint8{1, 2, 3},
		EventFlags:      [10]uint8{0xFF, 0, 0x10},
		OreTiers:        [7]int16{7, 6, 9, 8, 107, 108, 111},
		InvasionType:    -1,
	}

	tests := []Message{
		Refuse(ReasonNameTaken, tnet.Literal("Alice")),
		&ConnectionApprove{ClientID: 7},
		&PlayerDetails{
			ClientID:    1,
			SkinVariant: 4,
			Hair:        12,
			Name:        "Alice",
			HairColor:   tnet.RGB{R: 10, G: 20, B: 30},
			ShoeColor:   tnet.RGB{R: 1, G: 2, B: 3},
			Flags1:      1,
			Flags3:      0x40,
		},
		&PlayerInventorySlot{ClientID: 2, SlotID: 5, Amount: 3, ItemID: 42},
		header,
		&SpawnResponse{Status: 15, Text: tnet.Key("LegacyInterface.44")},
		&PlayerSpawnRequest{ClientID: 1, X: -1, Y: -1, Context: 1},
		&PlayerAction{ClientID: 1, SelectedItem: 3, Position: tnet.Vector2{X: 32, Y: 48}},
		&PlayerAction{
			ClientID:     1,
			Pulley:       PulleyHasVelocity,
			Misc:         MiscHasPotionReturn,
			Position:     tnet.Vector2{X: 1, Y: 2},
			Velocity:     tnet.Vector2{X: 3, Y: 4},
			PotionOrigin: tnet.Vector2{X: 5, Y: 6},
			PotionHome:   tnet.Vector2{X: 7, Y: 8},
		},
		&PlayerHealth{ClientID: 1, Current: 80, Maximum: 100},
		&UpdateTile{Action: TileActionKillTile, X: 10, Y: 20},
		&DropItem{ID: 3, Position: tnet.Vector2{X: 160, Y: 320}, Stack: 1, ItemID: 3},
		&PlayerReserveItem{ItemIndex: 3, ClientID: 1},
		&NPCInfo{ID: 0, Position: tnet.Vector2{X: 1, Y: 1}, Flags1: NPCFlags1LifeMax, Type: 22},
		&NPCInfo{ID: 1, Flags1: 1<<2 | 1<<5, AI: [4]float32{1.5, 0, 0, -2}, Type: 17, Life: 250},
		&NPCInfo{ID: 2, Flags2: NPCFlags2StatsScaled | NPCFlags2StrengthMult, PlayerScale: 3, Strength: 2, Type: 4, Life: 40000},
		&NPCInfo{ID: 3, Flags1: NPCFlags1LifeMax, Type: 355, HasReleaseOwner: true, ReleaseOwner: 255},
		&PasswordRequest{},
		&PlayerSpawnResponse{},
		&buffs,
		&WorldTotals{Good: 10, Evil: 5, Blood: 1},
		&PlayInstrument{ClientID: 1, Pitch: -0.5},
		&AnglerQuest{Quest: 12},
		&InvasionProgress{Progress: 1, Max: 10, Icon: -1, Wave: 2},
		&KillCount{ID: 3, Amount: 10},
		&PillarsStatus{Solar: 100, Vortex: 90, Nebula: 80, Stardust: 70},
		&PlayerPickTile{ClientID: 1, X: 100, Y: 200, Damage: 40},
		&PlayerSyncDone{},
		&MonsterTypes{Types: DefaultMonsterTypes},
		&PlayerLoadout{ClientID: 1, Index: 2, HideAccessory: 0x3FF},
	}

	for _, m := range tests {
		t.Run(m.Opcode().String(), func(t *testing.T) {
			raw, err := Encode(m)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if int(raw[0])|int(raw[1])<<8 != len(raw) {
				t.Errorf("frame length = %d, want %d", int(raw[0])|int(raw[1])<<8, len(raw))
			}
			got, err := DecodeClientbound(readFrame(t, raw))
			if err != nil {
				t.Fatalf("DecodeClientbound: %v", err)
			}
			if !reflect.DeepEqual(got, m) {
				t.Errorf("DecodeClientbound = %+v, want %+v", got, m)
			}
		})
	}
}

func TestTableDirections(t *testing.T) {
	tests := []struct {
		op  Opcode
		dir Direction
	}{
		{OpVersionIdentifier, ToServer},
		{OpConnectionRefuse, ToClient},
		{OpConnectionApprove, ToClient},
		{OpPlayerDetails, Both},
		{OpPlayerInventorySlot, Both},
		{OpWorldRequest, ToServer},
		{OpWorldHeader, ToClient},
		{OpSpawnRequest, ToServer},
		{OpPlayerHealth, Both},
		{OpPasswordRequest, ToClient},
		{OpPasswordResponse, ToServer},
		{OpPlayerMana, ToServer},
		{OpPlayerBuffs, Both},
		{OpUUID, ToServer},
		{OpKillCount, ToClient},
		{OpPillarsStatus, ToClient},
		{OpPlayerLoadout, Both},
	}
	for _, tt := range tests {
		c, ok := table[tt.op]
		if !ok {
			t.Errorf("opcode %d missing from table", tt.op)
			continue
		}
		if c.dir != tt.dir {
			t.Errorf("%s direction = %d, want %d", tt.op, c.dir, tt.dir)
		}
	}
}
