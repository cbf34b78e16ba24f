package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/terraria-server/internal/server/world"
)

func TestDescribe(t *testing.T) {
	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	w := world.New(world.Metadata{Version: world.MaxVersion, FileType: world.FileTypeWorld, Revision: 3},
		world.Format{Importance: make([]bool, 693)},
		world.Header{Name: "Dirtmouth", ID: 42, Width: 100, Height: 50, SpawnX: 10, SpawnY: 20,
			UUID: [16]byte(id), HasUUID: true, GameMode: world.GameModeExpert})
	w.Chests = []world.Chest{{X: 1, Y: 2}}

	var out bytes.Buffer
	describe(&out, w)
	got := out.String()
	for _, want := range []string{
		"name:       Dirtmouth\n",
		"uuid:       0f8fad5b-d9cb-469f-a165-70867728950e\n",
		"size:       100x50\n",
		"spawn:      10,20\n",
		"game mode:  " + world.GameModeExpert.String() + "\n",
		"chests:     1\n",
		"importance: 693 tile ids\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDescribeWithoutUUID(t *testing.T) {
	w := world.New(world.Metadata{Version: 140}, world.Format{}, world.Header{Name: "old", Width: 1, Height: 1})
	var out bytes.Buffer
	describe(&out, w)
	if !strings.Contains(out.String(), "uuid:       none\n") {
		t.Errorf("output = %q, want no uuid", out.String())
	}
}
