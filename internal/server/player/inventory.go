package player

import (
	"sync"

	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
)

// Inventory slot layout.
//
//	0-58     main inventory, coins, ammo; 58 is the item held on the cursor
//	59-78    armor and accessories
//	79-88    dyes
//	89-98    misc equipment and dyes
//	99-259   piggy bank, safe, defender's forge, void vault
//	260-349  three equipment loadouts of 30 slots (20 armor, 10 dyes)
const (
	MaxSlots     = 350
	MouseSlot    = 58
	ArmorStart   = 59
	ArmorEnd     = 78
	DyesEnd      = 88
	MiscStart    = 89
	BanksStart   = 99
	LoadoutStart = 260
	LoadoutSize  = 30
	LoadoutCount = 3
)

// Item is the content of one inventory slot.
type Item struct {
	ID     int16
	Stack  int16
	Prefix uint8
}

// IsEmpty reports whether the slot holds nothing.
func (i Item) IsEmpty() bool {
	return i.ID == 0 || i.Stack <= 0
}

// Inventory holds a player's 350 slots. It has its own lock so the session can
// update it while holding the Manager lock; the order is always Manager, then
// Inventory.
type Inventory struct {
	mu       sync.RWMutex
	slots    [MaxSlots]Item
	selected uint8
	loadout  uint8
}

// NewInventory returns an empty inventory with loadout 0 selected.
func NewInventory() *Inventory {
	return &Inventory{}
}

// loadoutRange returns the first and last slot of loadout i.
func loadoutRange(i uint8) (first, last int) {
	first = LoadoutStart + int(i)*LoadoutSize
	return first, first + LoadoutSize - 1
}

// Set stores s. Armor and dye slots are mirrored into the current loadout;
// the current loadout's own slots are not stored because the client always
// sends them empty. It reports whether the slot id is in range.
func (inv *Inventory) Set(s *packet.PlayerInventorySlot) bool {
	idx := int(s.SlotID)
	if idx < 0 || idx >= MaxSlots {
		return false
	}
	item := Item{ID: s.ItemID, Stack: s.Amount, Prefix: s.Prefix}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	first, last := loadoutRange(inv.loadout)
	if idx >= ArmorStart && idx <= DyesEnd {
		inv.slots[idx-ArmorStart+first] = item
	}
	if idx < first || idx > last {
		inv.slots[idx] = item
	}
	return true
}

// Slot returns the item in slot i, or an empty item when i is out of range.
func (inv *Inventory) Slot(i int) Item {
	if i < 0 || i >= MaxSlots {
		return Item{}
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.slots[i]
}

// SetSelected records the hotbar slot the player holds.
func (inv *Inventory) SetSelected(i uint8) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.selected = i
}

// Selected returns the hotbar slot the player holds.
func (inv *Inventory) Selected() uint8 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.selected
}

// SetLoadout switches the current equipment loadout. Out of range indexes
// are ignored.
func (inv *Inventory) SetLoadout(i uint8) {
	if i >= LoadoutCount {
		return
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.loadout = i
}

// Loadout returns the current equipment loadout.
func (inv *Inventory) Loadout() uint8 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.loadout
}

func (inv *Inventory) contains(first, last int, id int16) bool {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	for i := first; i <= last; i++ {
		if s := inv.slots[i]; s.ID == id && !s.IsEmpty() {
			return true
		}
	}
	return false
}

// HasItem reports whether id is anywhere in the main inventory, not counting
// the cursor slot.
func (inv *Inventory) HasItem(id int16) bool {
	return inv.contains(0, MouseSlot-1, id)
}

// HasEquipped reports whether id is worn in an armor or accessory slot.
func (inv *Inventory) HasEquipped(id int16) bool {
	return inv.contains(ArmorStart, ArmorEnd, id)
}

// HasInHand reports whether the selected slot holds id.
func (inv *Inventory) HasInHand(id int16) bool {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	s := inv.slots[inv.selected]
	return s.ID == id && !s.IsEmpty()
}
