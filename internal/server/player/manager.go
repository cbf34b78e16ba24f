package player

import (
	"errors"
	"net"
	"sync"

	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
)

// MaxPlayers is the number of slots; a slot index doubles as the client id.
const MaxPlayers = 256

var (
	// ErrServerFull is returned by Allocate when every slot is taken.
	ErrServerFull = errors.New("player: server is full")
	// ErrNameTaken is returned by SetDetails when another slot uses the name.
	ErrNameTaken = errors.New("player: name already in use")
)

// Manager owns the slot table. A single lock guards it; callers keep their
// critical sections short and never write to a socket while holding it.
type Manager struct {
	mu      sync.Mutex
	players [MaxPlayers]*Player

	sectionsX int
	sectionsY int
}

// NewManager creates an empty table for a world of sectionsX by sectionsY
// sections.
func NewManager(sectionsX, sectionsY int) *Manager {
	return &Manager{sectionsX: sectionsX, sectionsY: sectionsY}
}

// Allocate installs a new player in the lowest free slot.
func (m *Manager) Allocate(addr net.Addr) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.players {
		if p == nil {
			p = NewPlayer(uint8(i), addr, m.sectionsX, m.sectionsY)
			m.players[i] = p
			return p, nil
		}
	}
	return nil, ErrServerFull
}

// Release frees the slot held by p. A slot since reused by another player
// is left alone.
func (m *Manager) Release(p *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.players[p.ID] == p {
		m.players[p.ID] = nil
	}
}

// Get returns the player in slot id, or nil.
func (m *Manager) Get(id uint8) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[id]
}

// SetDetails stores d on p unless another occupied slot already has a player
// of that name. check, when not nil, runs after the name check with the lock
// held; an error from it leaves p unchanged.
func (m *Manager) SetDetails(p *Player, d *packet.PlayerDetails, check func(*packet.PlayerDetails) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.players {
		if other == nil || other == p {
			continue
		}
		if other.Details != nil && other.Details.Name == d.Name {
			return ErrNameTaken
		}
	}
	if check != nil {
		if err := check(d); err != nil {
			return err
		}
	}
	p.Details = d
	return nil
}

// ForEach calls fn for each occupied slot with the lock held.
func (m *Manager) ForEach(fn func(p *Player)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p != nil {
			fn(p)
		}
	}
}

// PlayerCount returns the number of occupied slots.
func (m *Manager) PlayerCount() int {
	n := 0
	m.ForEach(func(*Player) { n++ })
	return n
}
