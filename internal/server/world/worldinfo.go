package world

import (
	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
)

// flags packs up to eight booleans, the first in the least significant bit.
func flags(bits ...bool) uint8 {
	var b uint8
	for i, set := range bits {
		if set {
			b |= 1 << i
		}
	}
	return b
}

// WorldInfo projects the header onto the world header message.
func (w *World) WorldInfo() *packet.WorldHeader {
	h := &w.Header
	m := &packet.WorldHeader{
		Time:              int32(h.Time),
		DayInfo:           flags(h.DayTime, h.BloodMoon, h.Eclipse),
		MoonPhase:         uint8(h.MoonPhase),
		MaxTilesX:         int16(h.Width),
		MaxTilesY:         int16(h.Height),
		SpawnX:            int16(h.SpawnX),
		SpawnY:            int16(h.SpawnY),
		WorldSurface:      int16(h.WorldSurface),
		RockLayer:         int16(h.RockLayer),
		WorldID:           h.ID,
		WorldName:         h.Name,
		GameMode:          uint8(h.GameMode),
		UUID:              h.UUID,
		WorldGenVersion:   h.WorldGenVersion,
		MoonType:          h.MoonType,
		IceBackStyle:      uint8(h.IceBackStyle),
		JungleBackStyle:   uint8(h.JungleBackStyle),
		HellBackStyle:     uint8(h.HellBackStyle),
		WindSpeedTarget:   h.WindSpeed,
		NumClouds:         uint8(h.NumClouds),
		TreeX:             h.TreeX,
		CaveBackX:         h.CaveBackX,
		MaxRaining:        h.MaxRain,
		SundialCooldown:   h.SundialCooldown,
		MoondialCooldown:  h.MoondialCooldown,
		InvasionType:      int8(h.InvasionType),
		SandstormSeverity: h.SandstormSeverity,
	}

	// Tree backgrounds first, then the biome backgrounds.
	bg := h.Backgrounds
	m.Backgrounds = [13]uint8{
		bg[0], bg[10], bg[11], bg[12],
		bg[1], bg[2], bg[3], bg[4], bg[5], bg[6], bg[7], bg[8], bg[9],
	}
	for i, s := range h.TreeStyle {
		m.TreeStyle[i] = uint8(s)
	}
	for i, s := range h.CaveBackStyle {
		m.CaveBackStyle[i] = uint8(s)
	}
	for i := range m.TreeTops {
		if i < len(h.TreeTopVariations) {
			m.TreeTops[i] = uint8(h.TreeTopVariations[i])
		}
	}
	m.OreTiers = [7]int16{
		int16(h.OreTierCopper), int16(h.OreTierIron), int16(h.OreTierSilver), int16(h.OreTierGold),
		int16(h.OreTierCobalt), int16(h.OreTierMythril), int16(h.OreTierAdamantite),
	}

	m.EventFlags = [10]uint8{
		flags(h.SmashedShadowOrb, h.DownedBoss1, h.DownedBoss2, h.DownedBoss3,
			h.HardMode, h.DownedClown, false, h.DownedPlantBoss),
		flags(h.DownedMechBoss1, h.DownedMechBoss2, h.DownedMechBoss3, h.DownedMechBossAny,
			h.CloudBGActive >= 1, h.Crimson, false, false),
		flags(false, h.FastForwardToDawn, h.SlimeRainTime > 0, h.DownedSlimeKing,
			h.DownedQueenBee, h.DownedFishron, h.DownedMartians, h.DownedAncientCultist),
		flags(h.DownedMoonlord, h.DownedHalloweenKing, h.DownedHalloweenTree, h.DownedChristmasQueen,
			h.DownedChristmasSantank, h.DownedChristmasTree, h.DownedGolemBoss, h.PartyManual || h.PartyGenuine),
		flags(h.DownedPirates, h.DownedFrost, h.DownedGoblins, h.SandstormHappening,
			false, h.DownedDD2Tier1, h.DownedDD2Tier2, h.DownedDD2Tier3),
		flags(h.CombatBookUsed, h.LanternNightManual || h.LanternNightGenuine,
			h.TowerActiveSolar, h.TowerActiveVortex, h.TowerActiveNebula, h.TowerActiveStardust,
			h.ForceHalloween, h.ForceXMas),
		flags(h.BoughtCat, h.BoughtDog, h.BoughtBunny, false,
			h.Drunk, h.DownedEmpressOfLight, h.DownedQueenSlime, h.ForTheWorthy),
		flags(h.Anniversary, h.DontStarve, h.DownedDeerclops, h.NotTheBees,
			h.Remix, h.UnlockedSlimeBlue, h.CombatBookTwoUsed, h.PeddlersSatchelUsed),
		flags(h.UnlockedSlimeGreen, h.UnlockedSlimeOld, h.UnlockedSlimePurple, h.UnlockedSlimeRainbow,
			h.UnlockedSlimeRed, h.UnlockedSlimeYellow, h.UnlockedSlimeCopper, h.FastForwardToDusk),
		flags(h.NoTraps, h.Zenith, h.UnlockedTruffle),
	}
	return m
}
