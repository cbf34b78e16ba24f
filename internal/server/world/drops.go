package world

// Holder is the view of a player's inventory the drop table consults.
type Holder interface {
	HasItem(id int16) bool
	HasEquipped(id int16) bool
	HasInHand(id int16) bool
}

// Rand is the randomness used by drops. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Drop is what breaking a tile yields. Item or Secondary is 0 when absent.
type Drop struct {
	Item           int16
	Stack          int16
	Secondary      int16
	SecondaryStack int16
}

// Drops returns the items produced by breaking t. It returns
// ErrCallerHandled for trees, Christmas trees and hives.
func (w *World) Drops(t *Tile, h Holder, rng Rand) (Drop, error) {
	d := Drop{Stack: 1, SecondaryStack: 1}
	if item, ok := fixedDrops[t.ID]; ok {
		d.Item = item
		return d, nil
	}

	switch id := t.ID; {
	case id >= 63 && id <= 68:
		d.Item = id - 63 + 177
	case id >= 255 && id <= 261:
		d.Item = 1970 + id - 255
	case id >= 262 && id <= 268:
		d.Item = 1970 + id - 262
	case id >= 583 && id <= 589:
		d.gemTree(t, rng)
	default:
		return d, w.irregularDrop(&d, t, h, rng)
	}
	return d, nil
}

func (w *World) irregularDrop(d *Drop, t *Tile, h Holder, rng Rand) error {
	hdr := &w.Header
	switch t.ID {
	case TileTree, TileTreeAsh, TileVanityTreeSakura, TileVanityTreeYellow, TileXMasTree, TileHive:
		return ErrCallerHandled
	case 3:
		switch {
		case t.FrameX == 144:
			d.Item = ItemMushroom
		case coin(rng) && hasSeedWeapon(h):
			d.Item = ItemSeed
		}
	case 4:
		d.Item = torchDrop(t.FrameY / 22)
	case 13:
		d.Item = pick(bottleDrops, t.FrameY/22)
		if d.Item == 0 {
			d.Item = 31
		}
	case 19:
		d.Item = pick(platformDrops, t.FrameY/18)
	case 24:
		if t.FrameX == 144 {
			d.Item = 60
		}
	case 50:
		if t.FrameX == 90 {
			d.Item = 165
		} else {
			d.Item = 149
		}
	case 52, 62, 382:
		if coin(rng) && h.HasEquipped(ItemCordageGuide) {
			d.Item = ItemVineRope
		}
	case TileJunglePlants, 74:
		if t.ID == TileJunglePlants {
			switch {
			case t.FrameX == 144:
				d.Stack = randRange(rng, 2, 3)
				d.Item = ItemJungleSpores
			case t.FrameX == 162:
				d.Item = ItemNaturesGift
			case t.FrameX >= 108 && t.FrameX <= 125 && chance(rng, 20):
				d.Item = ItemJungleRose
			}
			if d.Item != 0 {
				return nil
			}
		}
		if chance(rng, 100) {
			d.Item = ItemJungleGrassSeeds
		}
	case 71, 72:
		switch {
		case chance(rng, 40):
			d.Item = ItemMushroomGrassSeeds
		case coin(rng):
			d.Item = ItemGlowingMushroom
		}
	case 73:
		if coin(rng) && hasSeedWeapon(h) {
			d.Item = ItemSeed
		}
	case 83, 84:
		d.herb(t, hdr, h, rng)
	case 110:
		if t.FrameX == 144 {
			d.Item = ItemMushroom
		}
	case 129:
		if t.FrameX >= 324 {
			d.Item = 4988
		} else {
			d.Item = 502
		}
	case 135:
		d.Item = pick(pressurePlateDrops, t.FrameY/18)
	case 137:
		d.Item = pick(trapDrops, t.FrameY/18)
	case TileTimer:
		// Only the five exact timer frames drop.
		if t.FrameX%18 == 0 {
			d.Item = pick(timerDrops, t.FrameX/18)
		}
	case 149:
		switch t.FrameX {
		case 0, 54:
			d.Item = ItemBlueLight
		case 18, 72:
			d.Item = ItemRedLight
		case 36, 90:
			d.Item = ItemGreenLight
		}
	case 178:
		d.Item = pick(gemDrops, t.FrameX/18)
	case 201:
		if t.FrameX == 270 {
			d.Item = 2887
		}
	case 227:
		style := t.FrameX / 34
		if style >= 8 && style <= 11 {
			d.Item = ItemStrangePlant1 + style - 8
		} else {
			d.Item = ItemTealMushroom + style
		}
	case 239:
		d.Item = pick(barDrops, t.FrameX/18)
	case 314:
		if t.FrameX >= 0 && int(t.FrameX) < len(trackTypes) {
			d.Item = [...]int16{ItemMinecartTrack, ItemPressureTrack, ItemBoosterTrack}[trackTypes[t.FrameX]]
		}
	case 323:
		if hdr.Anniversary {
			d.Stack += randRange(rng, 2, 4)
		}
		if t.FrameX >= 88 && t.FrameX <= 132 {
			d.Secondary = ItemAcorn
		}
		d.Item = ItemPalmWood
	case 324:
		d.Item = pick(seashellDrops, t.FrameX/18)
	case 380:
		d.Item = 3215 + t.FrameY/18
	case 419:
		d.Item = pick(logicGateLampDrops, t.FrameY/18)
	case 420:
		d.Item = pick(logicGateDrops, t.FrameY/18)
	case TileLogicSensor:
		d.Item = pick(logicSensorDrops, t.FrameY/18)
	case 428:
		d.Item = pick(weightedPlateDrops, t.FrameY/18)
	case 519:
		if t.FrameY == 90 && coin(rng) {
			d.Item = ItemGlowingMushroom
		}
	case 528:
		if coin(rng) {
			d.Item = ItemGlowingMushroom
		}
	case 571:
		d.Stack = randRange(rng, 1, 2)
		d.Item = ItemBambooBlock
	case 637:
		if chance(rng, 100) {
			d.Item = ItemAshGrassSeeds
		}
	case 650:
		d.Item = rubbleDrop(t.FrameX / 18)
	}
	return nil
}

// herb handles the growing and blooming herbs. Blooming herbs drop seeds
// when harvested; growing ones only under their bloom conditions. The
// staff of regrowth and the acorn axe always harvest seeds.
func (d *Drop) herb(t *Tile, hdr *Header, h Holder, rng Rand) {
	style := t.FrameX / 18
	seed, plant := ItemDaybloomSeeds+style, ItemDaybloom+style
	if style == 6 {
		seed, plant = ItemShiverthornSeeds, ItemShiverthorn
	}

	if h.HasInHand(ItemStaffOfRegrowth) || h.HasInHand(ItemAcornAxe) {
		d.Stack = randRange(rng, 1, 2)
		d.Secondary = seed
		d.SecondaryStack = randRange(rng, 1, 5)
		d.Item = plant
		return
	}

	harvestable := t.ID == 84
	switch style {
	case 0:
		harvestable = harvestable || hdr.DayTime
	case 1:
		harvestable = harvestable || !hdr.DayTime
	case 3:
		harvestable = harvestable || !hdr.DayTime && (hdr.BloodMoon || hdr.MoonPhase == 0)
	case 4:
		harvestable = harvestable || hdr.Raining || hdr.CloudBGAlpha > 0
	case 5:
		harvestable = harvestable || !hdr.Raining && hdr.DayTime && hdr.Time > 40500
	}
	if harvestable {
		d.Secondary = seed
		d.SecondaryStack = randRange(rng, 1, 3)
	}
	d.Item = plant
}

func (d *Drop) gemTree(t *Tile, rng Rand) {
	gems := [...]int16{180, 181, 177, 179, 178, 182, 999}
	if t.FrameX >= 22 && t.FrameY >= 198 && coin(rng) {
		d.Secondary = t.ID - 583 + ItemGemTreeTopazSeed
	}
	if chance(rng, 10) {
		d.Stack = randRange(rng, 1, 2)
		d.Item = gems[t.ID-583]
	} else {
		d.Item = ItemStoneBlock
	}
}

func torchDrop(style int16) int16 {
	switch {
	case style == 0:
		return 8
	case style >= 8 && style <= 23:
		return torchStyles[style-8]
	default:
		return 426 + style
	}
}

func rubbleDrop(style int16) int16 {
	switch {
	case style < 6:
		return ItemStoneBlock
	case style < 12:
		return ItemDirtBlock
	case style < 28:
		return ItemBone
	case style < 36:
		return ItemWood
	case style < 42:
		return ItemSnowBlock
	case style < 48:
		return ItemIceBlock
	case style < 54:
		return ItemCobweb
	case style < 60:
		return ItemSandstone
	case style < 66:
		return ItemGranite
	case style < 72:
		return ItemMarble
	case style < 73:
		return ItemGrassSeeds
	case style < 77:
		return ItemSandBlock
	}
	return 0
}

func hasSeedWeapon(h Holder) bool {
	return h.HasItem(ItemBlowpipe) || h.HasItem(ItemBlowgun)
}

func coin(rng Rand) bool { return rng.IntN(2) == 0 }

// chance is true with probability 1/n.
func chance(rng Rand, n int) bool { return rng.Float64() < 1/float64(n) }

// randRange returns a value in [lo, hi].
func randRange(rng Rand, lo, hi int16) int16 {
	return lo + int16(rng.IntN(int(hi-lo)+1))
}

func pick(table []int16, i int16) int16 {
	if i < 0 || int(i) >= len(table) {
		return 0
	}
	return table[i]
}
