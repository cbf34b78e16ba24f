package world

import (
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// Supported save file versions.
const (
	MinVersion int32 = 88
	MaxVersion int32 = 279
)

// Magic follows the version in files from version 135.
const Magic = "relogic"

// WallCount bounds wall ids; larger ids read from a file become 0.
const WallCount = 347

// FileType is the container kind recorded in the file metadata.
type FileType uint8

const (
	FileTypeNone FileType = iota
	FileTypeMap
	FileTypeWorld
	FileTypePlayer
)

// GameMode is the world difficulty.
type GameMode uint8

const (
	GameModeNormal GameMode = iota
	GameModeExpert
	GameModeMaster
	GameModeCreative
)

func (m GameMode) String() string {
	switch m {
	case GameModeExpert:
		return "expert"
	case GameModeMaster:
		return "master"
	case GameModeCreative:
		return "creative"
	default:
		return "normal"
	}
}

type Metadata struct {
	Version  int32
	FileType FileType
	Revision uint32
	Favorite bool
}

// Format holds the section checkpoints and the per-tile-id importance table.
type Format struct {
	Positions  []int32
	Importance []bool
}

// Important reports whether tiles of the given id carry frame coordinates.
func (f *Format) Important(id int16) bool {
	return important(f.Importance, id)
}

func important(table []bool, id int16) bool {
	return id >= 0 && int(id) < len(table) && table[id]
}

// MaxChestItems is the number of item slots kept per chest.
const MaxChestItems = 40

type Chest struct {
	X, Y  int32
	Name  string
	Items []ChestItem
}

type ChestItem struct {
	ID     int32
	Stack  int16
	Prefix uint8
}

type Sign struct {
	X, Y int32
	Text string
}

// NPC is a town resident or, when Resident is false, one of the other
// persistent NPCs saved after the residents.
type NPC struct {
	ID int32
	// LegacyName is the type name stored by versions before 190, which
	// carry no numeric id.
	LegacyName string
	Name       string
	Position   tnet.Vector2
	Resident   bool
	Homeless   bool
	Shimmer    bool
	HomeX      int32
	HomeY      int32
	Variation  int32
}

type WeightedPressurePlate struct {
	X, Y int32
}

type RoomLocation struct {
	ID   int32
	X, Y int32
}

type BestiaryKill struct {
	NPC   string
	Count int32
}

type Bestiary struct {
	Kills  []BestiaryKill
	Sights []string
	Chats  []string
}

// CreativePowerKind is the saved power code.
type CreativePowerKind int16

const (
	PowerFreezeTime CreativePowerKind = iota
	PowerStartDay
	PowerStartNoon
	PowerStartNight
	PowerStartMidnight
	PowerGodmode
	PowerModifyWind
	PowerModifyRain
	PowerModifyTimeRate
	PowerFreezeRain
	PowerFreezeWind
	PowerFarPlacement
	PowerDifficultySlider
	PowerStopBiomeSpread
	PowerSpawnRateSlider
)

// CreativePower is one saved power. Enabled is set for the toggles
// (freeze time/rain/wind, stop biome spread); Value for the sliders
// (time rate, difficulty).
type CreativePower struct {
	Kind    CreativePowerKind
	Enabled bool
	Value   float32
}
