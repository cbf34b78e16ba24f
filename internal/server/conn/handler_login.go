package conn

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
	"github.com/OCharnyshevich/terraria-server/internal/server/player"
)

// MaxNameLength is the longest player name accepted, in characters.
const MaxNameLength = 20

// Spawn request coordinates closer than this to the world edge stream only
// the sections around the world spawn.
const spawnEdgeMargin = 10

// KillCounts is the number of NPC types whose banner tallies are sent on join.
const KillCounts = 290

const spawnStatusKey = "LegacyInterface.44"

// errNameRejected carries the refusal key of a name that failed validation.
type errNameRejected string

func (e errNameRejected) Error() string { return "name rejected: " + string(e) }

// checkName rejects names that are too long or empty.
func checkName(d *packet.PlayerDetails) error {
	if utf8.RuneCountInString(d.Name) > MaxNameLength {
		return errNameRejected(packet.ReasonNameTooLong)
	}
	if d.Name == "" {
		return errNameRejected(packet.ReasonEmptyName)
	}
	return nil
}

// handlePlayerDetails accepts the character once, right after
// authentication. The name checks run in order: taken, too long, empty.
func (c *Connection) handlePlayerDetails(m *packet.PlayerDetails) error {
	if c.self.State != player.StateAuthenticated {
		return c.refuse(packet.ReasonBadPassword)
	}
	packet.Sanitize(m, c.self.ID)

	err := c.shared.Players.SetDetails(c.self, m, checkName)
	var rejected errNameRejected
	switch {
	case errors.Is(err, player.ErrNameTaken):
		return c.refuse(packet.ReasonNameTaken, tnet.Literal(m.Name))
	case errors.As(err, &rejected):
		return c.refuse(string(rejected))
	case err != nil:
		return err
	}

	c.self.State = player.StateDetailsReceived
	c.log = c.log.With("name", m.Name)
	c.log.Info("player joined")
	return c.publish(m)
}

func (c *Connection) handleUUID(m *packet.UUID) error {
	id, err := uuid.Parse(m.UUID)
	if err != nil {
		c.log.Debug("ignoring malformed player uuid", "uuid", m.UUID, "error", err)
		return nil
	}
	c.self.UUID = id
	c.self.HasUUID = true
	return nil
}

func (c *Connection) handleWorldRequest() error {
	return c.send(c.shared.World.WorldInfo())
}

// handleSpawnRequest is served once, between PlayerDetails and the first
// PlayerSpawnRequest. It streams the world around spawn and, when the request
// names a point well inside the world, around that point too. It then sends
// the world's NPCs and counters.
func (c *Connection) handleSpawnRequest(m *packet.SpawnRequest) error {
	if c.self.State != player.StateDetailsReceived {
		return c.refuse(packet.ReasonBadPassword)
	}

	w := c.shared.World
	h := &w.Header
	sections := c.self.Pending(w.Near(int(h.SpawnX), int(h.SpawnY)))
	if m.X >= spawnEdgeMargin && m.X <= h.Width-spawnEdgeMargin &&
		m.Y >= spawnEdgeMargin && m.Y <= h.Height-spawnEdgeMargin {
		sections = append(sections, c.self.Pending(w.Near(int(m.X), int(m.Y)))...)
	}

	if err := c.send(w.WorldInfo()); err != nil {
		return err
	}
	if err := c.send(&packet.SpawnResponse{
		Status: int32(len(sections)),
		Text:   tnet.Key(spawnStatusKey),
	}); err != nil {
		return err
	}
	if err := c.sendSections(sections); err != nil {
		return err
	}
	c.log.Debug("streamed spawn sections", "count", len(sections))

	for i, npc := range w.NPCs {
		if err := c.send(&packet.NPCInfo{
			ID:       int16(i),
			Position: npc.Position,
			Flags1:   packet.NPCFlags1LifeMax,
			Type:     int16(npc.ID),
		}); err != nil {
			return err
		}
	}
	for i, n := range h.NPCKillCounts {
		if i >= KillCounts {
			break
		}
		if err := c.send(&packet.KillCount{ID: uint16(i), Amount: uint32(n)}); err != nil {
			return err
		}
	}

	for _, msg := range []packet.Message{
		&packet.WorldTotals{},
		&packet.PillarsStatus{},
		&packet.MonsterTypes{Types: packet.DefaultMonsterTypes},
		&packet.PlayerSyncDone{},
	} {
		if err := c.send(msg); err != nil {
			return err
		}
	}
	return nil
}

// handlePlayerSpawnRequest relays a spawn to the other players. The first
// one completes the join.
func (c *Connection) handlePlayerSpawnRequest(m *packet.PlayerSpawnRequest) error {
	packet.Sanitize(m, c.self.ID)
	if c.self.State < player.StateDetailsReceived {
		return c.refuse(packet.ReasonBadPassword)
	}
	if err := c.publish(m); err != nil {
		return err
	}
	if c.self.State == player.StateComplete {
		return nil
	}

	c.self.State = player.StateComplete
	c.log.Info("player spawned")
	if err := c.send(&packet.AnglerQuest{Quest: uint8(c.shared.World.Header.AnglerQuest)}); err != nil {
		return err
	}
	return c.send(&packet.PlayerSpawnResponse{})
}
