package player

import (
	"testing"

	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
)

func slot(id int16, item int16) *packet.PlayerInventorySlot {
	return &packet.PlayerInventorySlot{SlotID: id, Amount: 1, ItemID: item}
}

func TestInventorySet(t *testing.T) {
	inv := NewInventory()

	if !inv.Set(&packet.PlayerInventorySlot{SlotID: 5, Amount: 3, ItemID: 42}) {
		t.Fatal("Set(5) reported out of range")
	}
	if got := inv.Slot(5); got != (Item{ID: 42, Stack: 3}) {
		t.Errorf("Slot(5) = %+v, want 3 of 42", got)
	}

	for _, id := range []int16{-1, MaxSlots, 1000} {
		if inv.Set(slot(id, 1)) {
			t.Errorf("Set(%d) reported in range", id)
		}
	}
	if got := inv.Slot(MaxSlots); !got.IsEmpty() {
		t.Errorf("Slot(%d) = %+v, want empty", MaxSlots, got)
	}
}

func TestInventoryLoadoutMirror(t *testing.T) {
	inv := NewInventory()

	// Armor goes to its own slot and the matching slot of loadout 0.
	inv.Set(slot(ArmorStart+2, 88))
	if got := inv.Slot(ArmorStart + 2).ID; got != 88 {
		t.Errorf("armor slot = %d, want 88", got)
	}
	if got := inv.Slot(LoadoutStart + 2).ID; got != 88 {
		t.Errorf("loadout 0 slot = %d, want 88", got)
	}

	// Dyes mirror too.
	inv.Set(slot(DyesEnd, 1007))
	if got := inv.Slot(LoadoutStart + LoadoutSize - 1).ID; got != 1007 {
		t.Errorf("loadout 0 last dye = %d, want 1007", got)
	}

	// The client sends the current loadout's slots empty; they are ignored.
	inv.Set(&packet.PlayerInventorySlot{SlotID: LoadoutStart + 2})
	if got := inv.Slot(LoadoutStart + 2).ID; got != 88 {
		t.Errorf("loadout 0 slot after empty update = %d, want 88", got)
	}

	// Other loadouts are stored directly.
	inv.Set(slot(LoadoutStart+LoadoutSize, 99))
	if got := inv.Slot(LoadoutStart + LoadoutSize).ID; got != 99 {
		t.Errorf("loadout 1 slot = %d, want 99", got)
	}

	inv.SetLoadout(2)
	inv.Set(slot(ArmorStart, 77))
	if got := inv.Slot(LoadoutStart + 2*LoadoutSize).ID; got != 77 {
		t.Errorf("loadout 2 slot = %d, want 77", got)
	}
	if got := inv.Slot(LoadoutStart).ID; got != 0 {
		t.Errorf("loadout 0 first slot = %d, want untouched", got)
	}
}

func TestInventorySetLoadoutOutOfRange(t *testing.T) {
	inv := NewInventory()
	inv.SetLoadout(1)
	inv.SetLoadout(LoadoutCount)
	if got := inv.Loadout(); got != 1 {
		t.Errorf("Loadout() = %d, want 1", got)
	}
}

func TestInventoryHolder(t *testing.T) {
	inv := NewInventory()
	inv.Set(slot(3, 281))
	inv.Set(slot(MouseSlot, 986))
	inv.Set(slot(ArmorStart+5, 4345))
	inv.Set(slot(MiscStart, 50))

	tests := []struct {
		name string
		fn   func(int16) bool
		id   int16
		want bool
	}{
		{"has_item", inv.HasItem, 281, true},
		{"has_item_mouse", inv.HasItem, 986, false},
		{"has_item_armor", inv.HasItem, 4345, false},
		{"has_equipped", inv.HasEquipped, 4345, true},
		{"has_equipped_misc", inv.HasEquipped, 50, false},
		{"has_in_hand_unselected", inv.HasInHand, 281, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.id); got != tt.want {
				t.Errorf("%s(%d) = %v, want %v", tt.name, tt.id, got, tt.want)
			}
		})
	}

	inv.SetSelected(3)
	if !inv.HasInHand(281) {
		t.Error("HasInHand(281) = false after selecting slot 3")
	}
	if got := inv.Selected(); got != 3 {
		t.Errorf("Selected() = %d, want 3", got)
	}
}
