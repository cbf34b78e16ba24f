package packet

import "testing"

func TestSanitizePlayerDetails(t *testing.T) {
	tests := []struct {
		name     string
		skin     uint8
		hair     uint8
		wantSkin uint8
		wantHair uint8
	}{
		{"in_range", 3, 100, 3, 100},
		{"skin_boundary", 11, 164, 11, 164},
		{"skin_too_high", 12, 0, 11, 0},
		{"skin_max", 255, 0, 11, 0},
		{"hair_too_high", 0, 165, 0, 0},
		{"hair_max", 0, 255, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &PlayerDetails{ClientID: 9, SkinVariant: tt.skin, Hair: tt.hair, Name: "x"}
			if !Sanitize(m, 4) {
				t.Fatal("Sanitize reported no client id")
			}
			if m.ClientID != 4 {
				t.Errorf("ClientID = %d, want 4", m.ClientID)
			}
			if m.SkinVariant != tt.wantSkin {
				t.Errorf("SkinVariant = %d, want %d", m.SkinVariant, tt.wantSkin)
			}
			if m.Hair != tt.wantHair {
				t.Errorf("Hair = %d, want %d", m.Hair, tt.wantHair)
			}
		})
	}
}

func TestSanitizeHealth(t *testing.T) {
	tests := []struct {
		max, want int16
	}{
		{80, 80},
		{100, 100},
		{101, 100},
		{500, 100},
	}
	for _, tt := range tests {
		m := &PlayerHealth{ClientID: 200, Current: 50, Maximum: tt.max}
		Sanitize(m, 1)
		if m.Maximum != tt.want {
			t.Errorf("Sanitize(max=%d).Maximum = %d, want %d", tt.max, m.Maximum, tt.want)
		}
		if m.ClientID != 1 {
			t.Errorf("ClientID = %d, want 1", m.ClientID)
		}
	}
}

func TestSanitizeOverwritesClientID(t *testing.T) {
	tests := []Message{
		&PlayerMana{ClientID: 77},
		&PlayerBuffs{ClientID: 77},
		&PlayerLoadout{ClientID: 77},
		&PlayerInventorySlot{ClientID: 77},
		&PlayerSpawnRequest{ClientID: 77},
		&PlayerAction{ClientID: 77},
		&PlayerReserveItem{ClientID: 77},
		&PlayInstrument{ClientID: 77},
		&PlayerPickTile{ClientID: 77},
	}
	for _, m := range tests {
		t.Run(m.Opcode().String(), func(t *testing.T) {
			if !Sanitize(m, 5) {
				t.Fatal("Sanitize reported no client id")
			}
			raw, err := Encode(m)
			if err != nil {
				// PlayerMana is inbound only.
				raw, err = EncodeServerbound(m)
				if err != nil {
					t.Fatalf("encode: %v", err)
				}
			}
			if got := clientIDOf(t, raw); got != 5 {
				t.Errorf("client id = %d, want 5", got)
			}
		})
	}
}

// clientIDOf finds the client id byte in an encoded frame.
func clientIDOf(t *testing.T, raw []byte) uint8 {
	t.Helper()
	if Opcode(raw[2]) == OpPlayerReserveItem {
		return raw[5]
	}
	return raw[3]
}

func TestSanitizePlayerActionSelectedItem(t *testing.T) {
	m := &PlayerAction{SelectedItem: 200}
	Sanitize(m, 0)
	if m.SelectedItem != 0 {
		t.Errorf("SelectedItem = %d, want 0", m.SelectedItem)
	}

	m = &PlayerAction{SelectedItem: 58}
	Sanitize(m, 0)
	if m.SelectedItem != 58 {
		t.Errorf("SelectedItem = %d, want 58", m.SelectedItem)
	}
}

func TestSanitizeIgnoresOtherVariants(t *testing.T) {
	if Sanitize(&VersionIdentifier{}, 1) {
		t.Error("Sanitize(VersionIdentifier) = true, want false")
	}
	if Sanitize(&UpdateTile{}, 1) {
		t.Error("Sanitize(UpdateTile) = true, want false")
	}
}
