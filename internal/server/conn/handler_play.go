package conn

import (
	"errors"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
	"github.com/OCharnyshevich/terraria-server/internal/server/player"
	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

// TileSize is the size of a tile in world pixels.
const TileSize = 16

func (c *Connection) handlePlayerHealth(m *packet.PlayerHealth) error {
	packet.Sanitize(m, c.self.ID)
	c.self.Health = m
	return c.publish(m)
}

// handlePlayerMana stores mana; other clients do not need it.
func (c *Connection) handlePlayerMana(m *packet.PlayerMana) error {
	packet.Sanitize(m, c.self.ID)
	c.self.Mana = m
	return nil
}

func (c *Connection) handlePlayerBuffs(m *packet.PlayerBuffs) error {
	packet.Sanitize(m, c.self.ID)
	c.self.Buffs = m
	return c.publish(m)
}

func (c *Connection) handlePlayerLoadout(m *packet.PlayerLoadout) error {
	packet.Sanitize(m, c.self.ID)
	c.self.Loadout = m
	c.self.Inventory.SetLoadout(m.Index)
	return c.publish(m)
}

func (c *Connection) handleInventorySlot(m *packet.PlayerInventorySlot) error {
	packet.Sanitize(m, c.self.ID)
	if !c.self.Inventory.Set(m) {
		c.log.Debug("inventory slot out of range", "slot", m.SlotID)
		return nil
	}
	return c.publish(m)
}

// handlePlayerAction relays movement and streams the sections around the
// player that it has not been sent yet.
func (c *Connection) handlePlayerAction(m *packet.PlayerAction) error {
	packet.Sanitize(m, c.self.ID)
	c.self.Inventory.SetSelected(m.SelectedItem)
	if err := c.publish(m); err != nil {
		return err
	}

	x := int(m.Position.X / TileSize)
	y := int(m.Position.Y / TileSize)
	return c.sendSections(c.self.Pending(c.shared.World.Around(x, y)))
}

// handleUpdateTile relays a tile change. Breaking a tile also spawns what it
// drops; the world itself is never modified.
func (c *Connection) handleUpdateTile(m *packet.UpdateTile) error {
	if m.Action == packet.TileActionKillTile && m.Target == 0 {
		if err := c.dropTileItems(int(m.X), int(m.Y)); err != nil {
			return err
		}
	}
	return c.publish(m)
}

func (c *Connection) dropTileItems(x, y int) error {
	w := c.shared.World
	t := w.Tile(x, y)
	if t == nil || !t.Active {
		return nil
	}

	d, err := w.Drops(t, c.self.Inventory, c.rng)
	if errors.Is(err, world.ErrCallerHandled) {
		c.log.Debug("tile drop not handled", "tile", t.ID, "x", x, "y", y)
		return nil
	}
	if err != nil {
		return err
	}

	pos := tnet.Vector2{X: float32(x * TileSize), Y: float32(y * TileSize)}
	for _, item := range []struct{ id, stack int16 }{
		{d.Item, d.Stack},
		{d.Secondary, d.SecondaryStack},
	} {
		if item.id <= 0 || item.stack <= 0 {
			continue
		}
		drop := &packet.DropItem{
			ID:       c.shared.itemID(),
			Position: pos,
			Velocity: tnet.Vector2{
				X: float32(c.rng.Float64()*6 - 3),
				Y: float32(c.rng.Float64()*-2.5 - 1.5),
			},
			Stack:  item.stack,
			ItemID: item.id,
		}
		if err := c.shared.Bus.Publish(drop, player.NoOrigin); err != nil {
			return err
		}
	}
	return nil
}

// handleRelay sanitizes m and passes it on. PlayerReserveItem also goes back
// to its sender.
func (c *Connection) handleRelay(m packet.Message) error {
	packet.Sanitize(m, c.self.ID)
	if _, ok := m.(*packet.PlayerReserveItem); ok {
		return c.shared.Bus.Publish(m, player.NoOrigin)
	}
	return c.publish(m)
}
