package conn

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"sync/atomic"

	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
	"github.com/OCharnyshevich/terraria-server/internal/server/player"
	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

// Version is the only client version the server accepts.
const Version = "Terraria279"

// MaxItems is the number of world item slots DropItem ids cycle through.
const MaxItems = 400

// errRefused ends a session once the ConnectionRefuse frame is flushed.
var errRefused = errors.New("connection refused")

// errLagged ends a session that fell too far behind the broadcast bus.
var errLagged = errors.New("dropped from broadcast bus")

// Shared is the state every session of one server uses.
type Shared struct {
	World *world.World
	// Sections is optional; without it sections are encoded on every send.
	Sections *world.SectionCache
	Password *Password
	Players  *player.Manager
	Bus      *player.Bus

	nextItem atomic.Uint32
}

// itemID returns the next world item slot for a DropItem.
func (s *Shared) itemID() int16 {
	return int16((s.nextItem.Add(1) - 1) % MaxItems)
}

func (s *Shared) sectionFrame(sx, sy int) ([]byte, error) {
	if s.Sections != nil {
		return s.Sections.Frame(sx, sy)
	}
	return s.World.SectionFrame(sx, sy)
}

// Connection is one client session. All of its fields are only touched by
// the goroutine running Handle.
type Connection struct {
	conn   net.Conn
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	shared *Shared

	self *player.Player
	sub  *player.Subscription
	// approved is set once ConnectionApprove is queued; bus frames are
	// dropped before that.
	approved bool

	out *tnet.Writer
	rng *rand.Rand
}

// NewConnection creates a session for self, whose slot is already allocated.
func NewConnection(ctx context.Context, conn net.Conn, shared *Shared, self *player.Player, log *slog.Logger) *Connection {
	ctx, cancel := context.WithCancel(ctx)
	return &Connection{
		conn:   conn,
		log:    log.With("addr", conn.RemoteAddr().String(), "slot", self.ID),
		ctx:    ctx,
		cancel: cancel,
		shared: shared,
		self:   self,
		sub:    shared.Bus.Subscribe(),
		out:    tnet.NewWriter(4096),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Handle runs the session until the client disconnects, a frame fails to
// parse, a write fails, or the client is refused. It releases the slot on
// return.
func (c *Connection) Handle() {
	defer func() {
		c.shared.Bus.Unsubscribe(c.sub)
		c.shared.Players.Release(c.self)
		c.cancel()
		c.conn.Close()
		c.log.Info("connection closed", "name", c.self.Name())
	}()

	c.log.Info("connection accepted")

	frames := make(chan tnet.Frame)
	readErr := make(chan error, 1)
	go c.readLoop(frames, readErr)

	for {
		select {
		case <-c.ctx.Done():
			return

		case err := <-readErr:
			if errors.Is(err, io.EOF) || c.ctx.Err() != nil {
				c.log.Debug("client disconnected")
			} else {
				c.log.Warn("reading frame", "error", err)
			}
			return

		case f := <-frames:
			err := c.handleFrame(f)
			if ferr := c.flush(); ferr != nil {
				c.log.Warn("writing reply", "error", ferr)
				return
			}
			if errors.Is(err, errRefused) {
				return
			}
			if err != nil {
				c.log.Error("handling frame", "opcode", packet.Opcode(f.Opcode), "state", c.self.State, "error", err)
				return
			}

		case env, ok := <-c.sub.C:
			if !ok {
				c.log.Warn("closing session", "error", errLagged)
				return
			}
			if !c.approved || env.Origin == int(c.self.ID) {
				continue
			}
			if _, err := c.conn.Write(env.Frame); err != nil {
				c.log.Warn("writing broadcast", "opcode", env.Op, "error", err)
				return
			}
		}
	}
}

func (c *Connection) readLoop(frames chan<- tnet.Frame, readErr chan<- error) {
	r := bufio.NewReader(c.conn)
	for {
		f, err := tnet.ReadFrame(r)
		if err != nil {
			readErr <- err
			return
		}
		select {
		case frames <- f:
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleFrame(f tnet.Frame) error {
	m, err := packet.Decode(f)
	if err != nil {
		return err
	}
	return c.dispatch(m)
}

// dispatch routes m to its handler. Only the handshake is processed before
// the client authenticates.
func (c *Connection) dispatch(m packet.Message) error {
	switch m := m.(type) {
	case *packet.VersionIdentifier:
		return c.handleVersion(m)
	case *packet.PasswordResponse:
		return c.handlePassword(m)
	case *packet.Custom:
		c.log.Debug("unhandled opcode", "opcode", m.Code, "len", len(m.Body))
		return nil
	}

	if !c.self.Authenticated() {
		c.log.Debug("ignoring message before authentication", "opcode", m.Opcode(), "state", c.self.State)
		return nil
	}

	switch m := m.(type) {
	case *packet.PlayerDetails:
		return c.handlePlayerDetails(m)
	case *packet.UUID:
		return c.handleUUID(m)
	case *packet.WorldRequest:
		return c.handleWorldRequest()
	case *packet.SpawnRequest:
		return c.handleSpawnRequest(m)
	case *packet.PlayerSpawnRequest:
		return c.handlePlayerSpawnRequest(m)
	case *packet.PlayerHealth:
		return c.handlePlayerHealth(m)
	case *packet.PlayerMana:
		return c.handlePlayerMana(m)
	case *packet.PlayerBuffs:
		return c.handlePlayerBuffs(m)
	case *packet.PlayerLoadout:
		return c.handlePlayerLoadout(m)
	case *packet.PlayerInventorySlot:
		return c.handleInventorySlot(m)
	case *packet.PlayerAction:
		return c.handlePlayerAction(m)
	case *packet.UpdateTile:
		return c.handleUpdateTile(m)
	case *packet.PlayerReserveItem, *packet.PlayInstrument, *packet.PlayerPickTile:
		return c.handleRelay(m)
	case *packet.InventorySynced:
		return nil
	default:
		c.log.Debug("message not handled", "opcode", m.Opcode())
		return nil
	}
}

// send queues m for the next flush.
func (c *Connection) send(m packet.Message) error {
	if err := packet.AppendFrame(c.out, m); err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}
	return nil
}

// sendSections queues the frames of sections.
func (c *Connection) sendSections(sections [][2]int) error {
	for _, s := range sections {
		frame, err := c.shared.sectionFrame(s[0], s[1])
		if err != nil {
			return fmt.Errorf("encode section %d,%d: %w", s[0], s[1], err)
		}
		c.out.WriteBytes(frame)
	}
	return nil
}

// flush writes the queued replies in one write.
func (c *Connection) flush() error {
	if c.out.Len() == 0 {
		return nil
	}
	defer c.out.Reset()
	_, err := c.conn.Write(c.out.Bytes())
	return err
}

// publish broadcasts m to every session but this one.
func (c *Connection) publish(m packet.Message) error {
	return c.shared.Bus.Publish(m, int(c.self.ID))
}

// refuse queues a ConnectionRefuse and ends the session.
func (c *Connection) refuse(key string, subs ...tnet.Text) error {
	c.log.Info("refusing connection", "reason", key, "state", c.self.State)
	if err := c.send(packet.Refuse(key, subs...)); err != nil {
		return err
	}
	return errRefused
}
