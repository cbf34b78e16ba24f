package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/OCharnyshevich/terraria-server/internal/server"
	"github.com/OCharnyshevich/terraria-server/internal/server/config"
	"github.com/OCharnyshevich/terraria-server/internal/server/storage"
	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [address [password]]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	cfg := config.DefaultConfig()
	configPath := flag.String("config", "", "config file (yaml, json or toml)")

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "server password (empty = none)")
	flag.StringVar(&cfg.World, "world", cfg.World, "world file path or go-getter source")
	flag.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "directory for fetched worlds")
	flag.Int64Var(&cfg.SectionCacheMB, "section-cache-mb", cfg.SectionCacheMB, "encoded section cache size in MB (0 = off)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write logs to this rotated file")
	flag.Usage = usage
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// The address and password may also be given positionally.
	args := flag.Args()
	if len(args) > 2 {
		usage()
		os.Exit(2)
	}
	if len(args) > 0 {
		cfg.Addr = args[0]
		explicit["addr"] = true
	}
	if len(args) > 1 {
		cfg.Password = args[1]
		explicit["password"] = true
	}

	fromFile, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := storage.New(cfg.CacheDir, log)
	if err != nil {
		return err
	}
	path, err := store.FetchWorld(ctx, cfg.World)
	if err != nil {
		return err
	}

	start := time.Now()
	w, err := world.Load(path)
	if err != nil {
		return fmt.Errorf("load world %s: %w", path, err)
	}
	attrs := []any{
		"name", w.Header.Name,
		"version", w.Metadata.Version,
		"size", fmt.Sprintf("%dx%d", w.Width(), w.Height()),
		"took", time.Since(start).Round(time.Millisecond),
	}
	if w.Header.HasUUID {
		attrs = append(attrs, "uuid", uuid.UUID(w.Header.UUID).String())
	}
	log.Info("world loaded", attrs...)

	srv, err := server.New(cfg, log, w)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown requested")
		return nil
	})
	return g.Wait()
}

// newLogger builds the root logger. With a log file configured, records go
// to stdout and to a rotated file.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	var out io.Writer = os.Stdout
	closeLog := func() {}
	if cfg.LogFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   cfg.LogCompress,
		}
		out = io.MultiWriter(os.Stdout, rotated)
		closeLog = func() { rotated.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}
	switch cfg.LogFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(out, opts)), closeLog, nil
	case "text", "":
		return slog.New(slog.NewTextHandler(out, opts)), closeLog, nil
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
}
