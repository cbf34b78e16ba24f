package player

import (
	"net"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

// State is a player's position in the connection handshake.
type State uint8

const (
	StateNew State = iota
	StatePendingAuth
	StateAuthenticated
	StateDetailsReceived
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StatePendingAuth:
		return "pending_auth"
	case StateAuthenticated:
		return "authenticated"
	case StateDetailsReceived:
		return "details_received"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Player is the server-side state of one connected client. Its fields are
// owned by the player's session; Details is also read by the Manager under
// its lock when checking names.
type Player struct {
	ID    uint8
	Addr  net.Addr
	State State

	UUID    uuid.UUID
	HasUUID bool

	Details *packet.PlayerDetails
	Health  *packet.PlayerHealth
	Mana    *packet.PlayerMana
	Buffs   *packet.PlayerBuffs
	Loadout *packet.PlayerLoadout

	Inventory *Inventory

	// sent marks sections already streamed, column-major.
	sent      []bool
	sectionsY int
}

// NewPlayer creates a player for slot id that can be streamed sections of a
// sectionsX by sectionsY world.
func NewPlayer(id uint8, addr net.Addr, sectionsX, sectionsY int) *Player {
	return &Player{
		ID:        id,
		Addr:      addr,
		State:     StateNew,
		Inventory: NewInventory(),
		sent:      make([]bool, sectionsX*sectionsY),
		sectionsY: sectionsY,
	}
}

// Name returns the player's name, or "" before details arrive.
func (p *Player) Name() string {
	if p.Details == nil {
		return ""
	}
	return p.Details.Name
}

// Authenticated reports whether the handshake has passed the password stage.
func (p *Player) Authenticated() bool {
	return p.State >= StateAuthenticated
}

// MarkSent records section sx, sy as streamed. It reports false if the
// section was already sent or lies outside the world.
func (p *Player) MarkSent(sx, sy int) bool {
	if sx < 0 || sy < 0 || sy >= p.sectionsY {
		return false
	}
	i := sx*p.sectionsY + sy
	if i >= len(p.sent) || p.sent[i] {
		return false
	}
	p.sent[i] = true
	return true
}

// Pending returns the sections of r not yet streamed to the player and marks
// them sent, in column order.
func (p *Player) Pending(r world.Rect) [][2]int {
	var out [][2]int
	for sx := r.MinX; sx <= r.MaxX; sx++ {
		for sy := r.MinY; sy <= r.MaxY; sy++ {
			if p.MarkSent(sx, sy) {
				out = append(out, [2]int{sx, sy})
			}
		}
	}
	return out
}
