package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/terraria-server/internal/server/config"
	"github.com/OCharnyshevich/terraria-server/internal/server/conn"
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
	"github.com/OCharnyshevich/terraria-server/internal/server/player"
	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

// Server is the Terraria server that accepts TCP connections.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	world  *world.World
	shared *conn.Shared
	ready  chan net.Addr
}

// New creates a new Server for w with the given config and logger.
func New(cfg *config.Config, log *slog.Logger, w *world.World) (*Server, error) {
	maxX, maxY := w.MaxSection()
	shared := &conn.Shared{
		World:    w,
		Password: conn.NewPassword(cfg.Password),
		Players:  player.NewManager(maxX+1, maxY+1),
		Bus:      player.NewBus(),
	}
	if cfg.SectionCacheMB > 0 {
		cache, err := world.NewSectionCache(w, cfg.SectionCacheMB<<20)
		if err != nil {
			return nil, fmt.Errorf("create section cache: %w", err)
		}
		shared.Sections = cache
	}

	return &Server{
		cfg:    cfg,
		log:    log,
		world:  w,
		shared: shared,
		ready:  make(chan net.Addr, 1),
	}, nil
}

// Ready yields the listening address once the server accepts connections.
func (s *Server) Ready() <-chan net.Addr { return s.ready }

// Start begins listening on the configured address and blocks until the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until the context is cancelled. It
// closes the listener and the section cache on return.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer func() {
		if s.shared.Sections != nil {
			s.shared.Sections.Close()
		}
	}()

	s.log.Info("server started",
		"addr", listener.Addr().String(),
		"world", s.world.Header.Name,
		"size", fmt.Sprintf("%dx%d", s.world.Width(), s.world.Height()),
		"password", s.shared.Password.Required(),
	)
	select {
	case s.ready <- listener.Addr():
	default:
	}

	g, ctx := errgroup.WithContext(ctx)

	// Close listener when context is cancelled.
	g.Go(func() error {
		<-ctx.Done()
		return listener.Close()
	})

	g.Go(func() error {
		for {
			c, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil {
					s.log.Info("server shutting down")
					return nil
				}
				if errors.Is(err, net.ErrClosed) {
					return fmt.Errorf("accept connection: %w", err)
				}
				s.log.Error("accept connection", "error", err)
				continue
			}
			s.accept(ctx, c)
		}
	})

	return g.Wait()
}

// accept gives c the lowest free slot and starts its session. A full server
// refuses the connection before the handshake.
func (s *Server) accept(ctx context.Context, c net.Conn) {
	self, err := s.shared.Players.Allocate(c.RemoteAddr())
	if err != nil {
		s.log.Warn("refusing connection", "addr", c.RemoteAddr().String(), "reason", packet.ReasonServerFull, "error", err)
		if frame, err := packet.Encode(packet.Refuse(packet.ReasonServerFull)); err == nil {
			c.Write(frame)
		}
		c.Close()
		return
	}

	connection := conn.NewConnection(ctx, c, s.shared, self, s.log)
	go connection.Handle()
}
