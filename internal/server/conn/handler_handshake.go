package conn

import (
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
	"github.com/OCharnyshevich/terraria-server/internal/server/player"
)

func (c *Connection) handleVersion(m *packet.VersionIdentifier) error {
	if c.self.State != player.StateNew {
		c.log.Debug("ignoring repeated version identifier", "state", c.self.State)
		return nil
	}

	if m.Version != Version {
		c.log.Info("unsupported client version", "version", m.Version)
		return c.refuse(packet.ReasonVersionMismatch)
	}

	if c.shared.Password.Required() {
		c.self.State = player.StatePendingAuth
		c.log.Debug("requesting password")
		return c.send(&packet.PasswordRequest{})
	}
	return c.approve()
}

func (c *Connection) handlePassword(m *packet.PasswordResponse) error {
	if c.self.State != player.StatePendingAuth {
		c.log.Debug("ignoring unexpected password", "state", c.self.State)
		return nil
	}
	if !c.shared.Password.Check(m.Password) {
		return c.refuse(packet.ReasonBadPassword)
	}
	return c.approve()
}

// approve authenticates the client and tells it its slot.
func (c *Connection) approve() error {
	c.self.State = player.StateAuthenticated
	if err := c.send(&packet.ConnectionApprove{ClientID: c.self.ID, Flag: false}); err != nil {
		return err
	}
	c.approved = true
	c.log.Info("client authenticated")
	return nil
}
