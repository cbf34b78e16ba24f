package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/OCharnyshevich/terraria-server/internal/server/storage"
	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

func main() {
	var (
		src      = flag.String("world", "", "world file path or go-getter source")
		cacheDir = flag.String("cache-dir", "worlds", "directory for fetched worlds")
		dump     = flag.Bool("dump", false, "dump the whole header")
	)
	flag.Parse()

	if *src == "" {
		fmt.Fprintln(os.Stderr, "world source required")
		flag.Usage()
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	store, err := storage.New(*cacheDir, log)
	if err != nil {
		log.Error("open cache", "error", err)
		os.Exit(1)
	}
	path, err := store.FetchWorld(context.Background(), *src)
	if err != nil {
		log.Error("fetch world", "error", err)
		os.Exit(1)
	}
	w, err := world.Load(path)
	if err != nil {
		log.Error("load world", "path", path, "error", err)
		os.Exit(1)
	}

	describe(os.Stdout, w)
	if *dump {
		spew.Fdump(os.Stdout, w.Header)
	}
}

func describe(out io.Writer, w *world.World) {
	h := &w.Header
	id := "none"
	if h.HasUUID {
		id = uuid.UUID(h.UUID).String()
	}

	fmt.Fprintf(out, "version:    %d (revision %d)\n", w.Metadata.Version, w.Metadata.Revision)
	fmt.Fprintf(out, "name:       %s\n", h.Name)
	fmt.Fprintf(out, "id:         %d\n", h.ID)
	fmt.Fprintf(out, "uuid:       %s\n", id)
	fmt.Fprintf(out, "size:       %dx%d\n", h.Width, h.Height)
	fmt.Fprintf(out, "spawn:      %d,%d\n", h.SpawnX, h.SpawnY)
	fmt.Fprintf(out, "game mode:  %s\n", h.GameMode)
	fmt.Fprintf(out, "chests:     %d\n", len(w.Chests))
	fmt.Fprintf(out, "signs:      %d\n", len(w.Signs))
	fmt.Fprintf(out, "npcs:       %d\n", len(w.NPCs))
	fmt.Fprintf(out, "entities:   %d\n", len(w.Entities))
	fmt.Fprintf(out, "importance: %d tile ids\n", len(w.Format.Importance))
}
