package packet

// MaxSelectedItem bounds PlayerAction.SelectedItem to the inventory slots a
// player can hold.
const MaxSelectedItem = 58

// Sanitize rewrites any client id m asserts to src and clamps enum-like fields
// that index into client-side tables. Variants without such fields are left
// untouched. It reports whether m carried a client id.
func Sanitize(m Message, src uint8) bool {
	switch m := m.(type) {
	case *PlayerDetails:
		m.ClientID = src
		if m.SkinVariant >= MaxSkinVariant {
			m.SkinVariant = MaxSkinVariant - 1
		}
		if m.Hair >= MaxHair {
			m.Hair = 0
		}
	case *PlayerHealth:
		m.ClientID = src
		if m.Maximum > MaxHealthCap {
			m.Maximum = MaxHealthCap
		}
	case *PlayerMana:
		m.ClientID = src
	case *PlayerBuffs:
		m.ClientID = src
	case *PlayerLoadout:
		m.ClientID = src
	case *PlayerInventorySlot:
		m.ClientID = src
	case *PlayerSpawnRequest:
		m.ClientID = src
	case *PlayerAction:
		m.ClientID = src
		if m.SelectedItem > MaxSelectedItem {
			m.SelectedItem = 0
		}
	case *PlayerReserveItem:
		m.ClientID = src
	case *PlayInstrument:
		m.ClientID = src
	case *PlayerPickTile:
		m.ClientID = src
	default:
		return false
	}
	return true
}
