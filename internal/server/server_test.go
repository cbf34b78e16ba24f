package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/OCharnyshevich/terraria-server/internal/server/config"
	"github.com/OCharnyshevich/terraria-server/internal/server/conn"
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
	"github.com/OCharnyshevich/terraria-server/internal/server/player"
	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

const ioTimeout = 5 * time.Second

func testWorld() *world.World {
	w := world.New(world.Metadata{Version: world.MaxVersion, FileType: world.FileTypeWorld},
		world.Format{Importance: make([]bool, 700)},
		world.Header{Name: "loopback", ID: 1, Width: 300, Height: 200, SpawnX: 150, SpawnY: 90})
	for x := 0; x < w.Width(); x++ {
		for y := 100; y < w.Height(); y++ {
			w.Tiles[x][y] = world.Tile{ID: world.TileStone, Active: true, FrameX: -1, FrameY: -1}
		}
	}
	return w
}

// startServer runs a server on a loopback port until the test ends.
func startServer(t *testing.T, password string) (*Server, string) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.Password = password
	cfg.SectionCacheMB = 1

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if testing.Verbose() {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	s, err := New(cfg, log, testWorld())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Start: %v", err)
			}
		case <-time.After(ioTimeout):
			t.Error("server did not stop")
		}
	})

	select {
	case addr := <-s.Ready():
		return s, addr.String()
	case err := <-done:
		t.Fatalf("Start: %v", err)
	case <-time.After(ioTimeout):
		t.Fatal("server did not start")
	}
	return nil, ""
}

type testClient struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func dial(t *testing.T, addr string) *testClient {
	t.Helper()
	c, err := net.DialTimeout("tcp", addr, ioTimeout)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return &testClient{t: t, conn: c, r: bufio.NewReader(c)}
}

func (c *testClient) write(b []byte) {
	c.t.Helper()
	c.conn.SetWriteDeadline(time.Now().Add(ioTimeout))
	if _, err := c.conn.Write(b); err != nil {
		c.t.Fatalf("write: %v", err)
	}
}

func (c *testClient) send(m packet.Message) {
	c.t.Helper()
	frame, err := packet.EncodeServerbound(m)
	if err != nil {
		c.t.Fatalf("encode %T: %v", m, err)
	}
	c.write(frame)
}

func (c *testClient) recv() packet.Message {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(ioTimeout))
	f, err := tnet.ReadFrame(c.r)
	if err != nil {
		c.t.Fatalf("ReadFrame: %v", err)
	}
	m, err := packet.DecodeClientbound(f)
	if err != nil {
		c.t.Fatalf("DecodeClientbound: %v", err)
	}
	return m
}

// expectClosed checks that the server closed the connection.
func (c *testClient) expectClosed() {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(ioTimeout))
	if f, err := tnet.ReadFrame(c.r); err == nil {
		c.t.Errorf("got opcode %v, want the connection closed", packet.Opcode(f.Opcode))
	}
}

// expectSilent checks that nothing arrives for a short while.
func (c *testClient) expectSilent() {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	f, err := tnet.ReadFrame(c.r)
	if err == nil {
		c.t.Errorf("got opcode %v, want nothing", packet.Opcode(f.Opcode))
		return
	}
	var ne net.Error
	if !errors.As(err, &ne) || !ne.Timeout() {
		c.t.Errorf("read error = %v, want a timeout", err)
	}
}

func (c *testClient) expectRefused(key string) *packet.ConnectionRefuse {
	c.t.Helper()
	m := c.recv()
	r, ok := m.(*packet.ConnectionRefuse)
	if !ok {
		c.t.Fatalf("got %T, want *packet.ConnectionRefuse", m)
	}
	if r.Reason.Mode != tnet.TextLocalizationKey || r.Reason.Text != key {
		c.t.Errorf("reason = %+v, want key %q", r.Reason, key)
	}
	c.expectClosed()
	return r
}

// handshake authenticates c and returns its slot.
func (c *testClient) handshake(password string) uint8 {
	c.t.Helper()
	c.send(&packet.VersionIdentifier{Version: conn.Version})
	if password != "" {
		if _, ok := c.recv().(*packet.PasswordRequest); !ok {
			c.t.Fatal("no PasswordRequest")
		}
		c.send(&packet.PasswordResponse{Password: password})
	}
	m := c.recv()
	a, ok := m.(*packet.ConnectionApprove)
	if !ok {
		c.t.Fatalf("got %T, want *packet.ConnectionApprove", m)
	}
	return a.ClientID
}

func TestHandshakeNoPassword(t *testing.T) {
	_, addr := startServer(t, "")
	c := dial(t, addr)

	hello := append([]byte{0x0F, 0x00, 0x01, 0x0B}, "Terraria279"...)
	c.write(hello)

	c.conn.SetReadDeadline(time.Now().Add(ioTimeout))
	got := make([]byte, 5)
	if _, err := io.ReadFull(c.r, got); err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []byte{0x05, 0x00, 0x03, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("reply = % x, want % x", got, want)
	}
}

func TestHandshakeWrongVersion(t *testing.T) {
	_, addr := startServer(t, "")
	c := dial(t, addr)

	c.write(append([]byte{0x0F, 0x00, 0x01, 0x0B}, "Terraria000"...))
	c.expectRefused(packet.ReasonVersionMismatch)
}

func TestPasswordFlow(t *testing.T) {
	_, addr := startServer(t, "hunter2")

	t.Run("wrong", func(t *testing.T) {
		c := dial(t, addr)
		c.send(&packet.VersionIdentifier{Version: conn.Version})
		c.conn.SetReadDeadline(time.Now().Add(ioTimeout))
		req := make([]byte, 3)
		if _, err := io.ReadFull(c.r, req); err != nil {
			t.Fatalf("read: %v", err)
		}
		if want := []byte{0x03, 0x00, 0x25}; !bytes.Equal(req, want) {
			t.Errorf("PasswordRequest = % x, want % x", req, want)
		}
		c.send(&packet.PasswordResponse{Password: "wrong"})
		c.expectRefused(packet.ReasonBadPassword)
	})

	t.Run("right", func(t *testing.T) {
		c := dial(t, addr)
		if id := c.handshake("hunter2"); id != 0 {
			t.Errorf("ClientID = %d, want 0", id)
		}
	})
}

func TestDuplicateName(t *testing.T) {
	_, addr := startServer(t, "")
	a := dial(t, addr)
	if id := a.handshake(""); id != 0 {
		t.Fatalf("first client slot = %d, want 0", id)
	}
	b := dial(t, addr)
	if id := b.handshake(""); id != 1 {
		t.Fatalf("second client slot = %d, want 1", id)
	}

	a.send(&packet.PlayerDetails{ClientID: 9, Name: "Alice", SkinVariant: 40})
	m := b.recv()
	d, ok := m.(*packet.PlayerDetails)
	if !ok {
		t.Fatalf("second client got %T, want *packet.PlayerDetails", m)
	}
	if d.ClientID != 0 || d.Name != "Alice" {
		t.Errorf("broadcast details = slot %d %q, want slot 0 %q", d.ClientID, d.Name, "Alice")
	}
	if d.SkinVariant != packet.MaxSkinVariant-1 {
		t.Errorf("SkinVariant = %d, want %d", d.SkinVariant, packet.MaxSkinVariant-1)
	}

	b.send(&packet.PlayerDetails{Name: "Alice"})
	r := b.expectRefused(packet.ReasonNameTaken)
	if len(r.Reason.Substitutions) != 1 || r.Reason.Substitutions[0].Text != "Alice" {
		t.Errorf("substitutions = %+v, want the name", r.Reason.Substitutions)
	}
	a.expectSilent()
}

func TestInventoryBroadcast(t *testing.T) {
	s, addr := startServer(t, "")
	var clients []*testClient
	for i := 0; i < 3; i++ {
		c := dial(t, addr)
		if id := c.handshake(""); int(id) != i {
			t.Fatalf("client %d slot = %d", i, id)
		}
		clients = append(clients, c)
	}

	clients[2].send(&packet.PlayerInventorySlot{ClientID: 0, SlotID: 5, Amount: 3, ItemID: 42})
	want := packet.PlayerInventorySlot{ClientID: 2, SlotID: 5, Amount: 3, ItemID: 42}
	for i, c := range clients[:2] {
		m := c.recv()
		got, ok := m.(*packet.PlayerInventorySlot)
		if !ok {
			t.Fatalf("client %d got %T, want *packet.PlayerInventorySlot", i, m)
		}
		if *got != want {
			t.Errorf("client %d got %+v, want %+v", i, *got, want)
		}
	}
	clients[2].expectSilent()

	p := s.shared.Players.Get(2)
	if p == nil {
		t.Fatal("slot 2 is empty")
	}
	if item := p.Inventory.Slot(5); item != (player.Item{ID: 42, Stack: 3}) {
		t.Errorf("slot 5 = %+v, want item 42 x3", item)
	}
}

func TestServerFull(t *testing.T) {
	s, addr := startServer(t, "")
	local := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}
	for i := 0; i < player.MaxPlayers; i++ {
		if _, err := s.shared.Players.Allocate(local); err != nil {
			t.Fatalf("Allocate %d: %v", i, err)
		}
	}

	c := dial(t, addr)
	c.expectRefused(packet.ReasonServerFull)
}

func TestSlotReleasedOnDisconnect(t *testing.T) {
	s, addr := startServer(t, "")
	a := dial(t, addr)
	a.handshake("")
	a.conn.Close()

	deadline := time.Now().Add(ioTimeout)
	for s.shared.Players.PlayerCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slot 0 was not released")
		}
		time.Sleep(10 * time.Millisecond)
	}

	b := dial(t, addr)
	if id := b.handshake(""); id != 0 {
		t.Errorf("reused slot = %d, want 0", id)
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	s, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), testWorld())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	var addr net.Addr
	select {
	case addr = <-s.Ready():
	case <-time.After(ioTimeout):
		t.Fatal("server did not start")
	}
	c := dial(t, addr.String())
	c.handshake("")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start = %v, want nil", err)
		}
	case <-time.After(ioTimeout):
		t.Fatal("server did not stop")
	}
	c.expectClosed()
}
