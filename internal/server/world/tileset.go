package world

// Tile ids the world code treats specially.
const (
	TileDirt             int16 = 0
	TileStone            int16 = 1
	TileTree             int16 = 5
	TileChest            int16 = 21
	TileSign             int16 = 55
	TileJunglePlants     int16 = 61
	TileTombstone        int16 = 85
	TileDresser          int16 = 88
	TileTimer            int16 = 144
	TileXMasTree         int16 = 171
	TileHive             int16 = 225
	TileTargetDummy      int16 = 378
	TileItemFrame        int16 = 395
	TileLogicSensor      int16 = 423
	TileAnnouncementBox  int16 = 425
	TileChest2           int16 = 467
	TileDisplayDoll      int16 = 470
	TileWeaponsRack      int16 = 471
	TileHatRack          int16 = 475
	TileFoodPlatter      int16 = 520
	TileTatteredSign     int16 = 573
	TileTreeAsh          int16 = 596
	TilePylon            int16 = 597
	TileVanityTreeSakura int16 = 616
	TileVanityTreeYellow int16 = 634
)

// noBatch lists tile ids that are never collapsed into runs because they
// carry per-tile state.
var noBatch = map[int16]bool{
	TileLogicSensor: true,
	TileFoodPlatter: true,
}

// IsSign reports whether id belongs to the sign family.
func IsSign(id int16) bool {
	switch id {
	case TileSign, TileTombstone, TileAnnouncementBox, TileTatteredSign:
		return true
	}
	return false
}

// IsContainer reports whether id is a 2x2 chest.
func IsContainer(id int16) bool {
	return id == TileChest || id == TileChest2
}

// chestAnchor reports whether the frame of a container or dresser tile
// marks the top-left corner of its object.
func chestAnchor(t *Tile) bool {
	switch {
	case IsContainer(t.ID):
		return t.FrameX%36 == 0 && t.FrameY%36 == 0
	case t.ID == TileDresser:
		return t.FrameX%54 == 0 && t.FrameY%36 == 0
	}
	return false
}

func signAnchor(t *Tile) bool {
	return IsSign(t.ID) && t.FrameX%36 == 0 && t.FrameY%36 == 0
}

// entityKindOf maps a tile id to the tile entity it hosts.
func entityKindOf(id int16) (EntityKind, bool) {
	switch id {
	case TileTargetDummy:
		return EntityDummy, true
	case TileItemFrame:
		return EntityItemFrame, true
	case TileLogicSensor:
		return EntityLogicSensor, true
	case TileDisplayDoll:
		return EntityDisplayDoll, true
	case TileWeaponsRack:
		return EntityWeaponsRack, true
	case TileHatRack:
		return EntityHatRack, true
	case TileFoodPlatter:
		return EntityFoodPlatter, true
	case TilePylon:
		return EntityPylon, true
	}
	return 0, false
}

func entityAnchor(t *Tile) bool {
	kind, ok := entityKindOf(t.ID)
	if !ok {
		return false
	}
	switch kind {
	case EntityLogicSensor:
		return true
	case EntityFoodPlatter:
		return t.FrameX%18 == 0 && t.FrameY == 0
	case EntityWeaponsRack, EntityHatRack:
		return t.FrameX%54 == 0 && t.FrameY == 0
	case EntityPylon:
		return t.FrameX%54 == 0 && t.FrameY%72 == 0
	default:
		return t.FrameX%36 == 0 && t.FrameY == 0
	}
}
