package world

import (
	"strconv"
	"time"
)

// BackgroundCount is the number of background style bytes in the header.
const BackgroundCount = 13

// dotnetEpochMillis is the distance from 0001-01-01 to the Unix epoch.
const dotnetEpochMillis = 719162 * 24 * 60 * 60 * 1000

// Header is the world header. Fields missing from older files keep the
// defaults set by readHeader.
type Header struct {
	Name            string
	SeedText        string
	WorldGenVersion uint64
	UUID            [16]byte
	HasUUID         bool
	ID              int32

	Left, Right, Top, Bottom int32
	Width, Height            int32

	GameMode      GameMode
	Drunk         bool
	ForTheWorthy  bool
	Anniversary   bool
	DontStarve    bool
	NotTheBees    bool
	Remix         bool
	NoTraps       bool
	Zenith        bool
	CreationTime  time.Time
	Crimson       bool
	HardMode      bool
	MoonType      uint8
	TreeX         [3]int32
	TreeStyle     [4]int32
	CaveBackX     [3]int32
	CaveBackStyle [4]int32

	IceBackStyle    int32
	JungleBackStyle int32
	HellBackStyle   int32

	SpawnX, SpawnY int32
	WorldSurface   float64
	RockLayer      float64

	Time      float64
	DayTime   bool
	MoonPhase int32
	BloodMoon bool
	Eclipse   bool

	DungeonX, DungeonY int32

	DownedBoss1       bool
	DownedBoss2       bool
	DownedBoss3       bool
	DownedQueenBee    bool
	DownedMechBoss1   bool
	DownedMechBoss2   bool
	DownedMechBoss3   bool
	DownedMechBossAny bool
	DownedPlantBoss   bool
	DownedGolemBoss   bool
	DownedSlimeKing   bool
	SavedGoblin       bool
	SavedWizard       bool
	SavedMechanic     bool
	DownedGoblins     bool
	DownedClown       bool
	DownedFrost       bool
	DownedPirates     bool
	SmashedShadowOrb  bool
	SpawnMeteor       bool
	ShadowOrbCount    uint8
	AltarCount        int32
	AfterPartyOfDoom  bool

	InvasionDelay int32
	InvasionSize  int32
	InvasionType  int32
	InvasionX     float64
	SlimeRainTime float64

	SundialCooldown uint8
	Raining         bool
	RainTime        int32
	MaxRain         float32

	OreTierCobalt     int32
	OreTierMythril    int32
	OreTierAdamantite int32

	Backgrounds   [BackgroundCount]uint8
	CloudBGActive float32
	CloudBGAlpha  float64
	NumClouds     int16
	WindSpeed     float32

	AnglersFinishedToday []string
	SavedAngler          bool
	AnglerQuest          int32
	SavedStylist         bool
	SavedTaxCollector    bool
	SavedGolfer          bool
	InvasionSizeStart    int32
	CultistDelay         int32
	NPCKillCounts        []int32

	FastForwardToDawn bool

	DownedFishron          bool
	DownedMartians         bool
	DownedAncientCultist   bool
	DownedMoonlord         bool
	DownedHalloweenKing    bool
	DownedHalloweenTree    bool
	DownedChristmasQueen   bool
	DownedChristmasSantank bool
	DownedChristmasTree    bool
	DownedTowerSolar       bool
	DownedTowerVortex      bool
	DownedTowerNebula      bool
	DownedTowerStardust    bool
	TowerActiveSolar       bool
	TowerActiveVortex      bool
	TowerActiveNebula      bool
	TowerActiveStardust    bool
	LunarApocalypseUp      bool

	PartyManual      bool
	PartyGenuine     bool
	PartyCooldown    int32
	PartyCelebrating []int32

	SandstormHappening        bool
	SandstormTimeLeft         int32
	SandstormSeverity         float32
	SandstormIntendedSeverity float32

	SavedBartender bool
	DownedDD2Tier1 bool
	DownedDD2Tier2 bool
	DownedDD2Tier3 bool
	CombatBookUsed bool

	LanternNightCooldown      int32
	LanternNightGenuine       bool
	LanternNightManual        bool
	LanternNightNextIsGenuine bool

	TreeTopVariations []int32
	ForceHalloween    bool
	ForceXMas         bool

	OreTierCopper int32
	OreTierIron   int32
	OreTierSilver int32
	OreTierGold   int32

	BoughtCat   bool
	BoughtDog   bool
	BoughtBunny bool

	DownedEmpressOfLight bool
	DownedQueenSlime     bool
	DownedDeerclops      bool

	UnlockedSlimeBlue   bool
	UnlockedMerchant    bool
	UnlockedDemolition  bool
	UnlockedPartyGirl   bool
	UnlockedDyeTrader   bool
	UnlockedTruffle     bool
	UnlockedArmsDealer  bool
	UnlockedNurse       bool
	UnlockedPrincess    bool
	CombatBookTwoUsed   bool
	PeddlersSatchelUsed bool

	UnlockedSlimeGreen   bool
	UnlockedSlimeOld     bool
	UnlockedSlimePurple  bool
	UnlockedSlimeRainbow bool
	UnlockedSlimeRed     bool
	UnlockedSlimeYellow  bool
	UnlockedSlimeCopper  bool

	FastForwardToDusk bool
	MoondialCooldown  uint8
}

func readHeader(d *decoder) Header {
	v := d.version
	var h Header

	h.Name = d.str()
	if v >= 179 {
		if v == 179 {
			h.SeedText = strconv.Itoa(int(d.i32()))
		} else {
			h.SeedText = d.str()
		}
		h.WorldGenVersion = d.u64()
	}
	if v >= 181 {
		if b := d.raw(16); b != nil {
			h.UUID = [16]byte(b)
			h.HasUUID = true
		}
	}

	h.ID = d.i32()
	h.Left = d.i32()
	h.Right = d.i32()
	h.Top = d.i32()
	h.Bottom = d.i32()
	h.Height = d.i32()
	h.Width = d.i32()

	switch {
	case v >= 209:
		h.GameMode = GameMode(d.i32())
	default:
		if v >= 112 && d.flag() {
			h.GameMode = GameModeExpert
		}
		if v == 208 && d.flag() {
			h.GameMode = GameModeMaster
		}
	}
	if h.GameMode > GameModeCreative {
		h.GameMode = GameModeNormal
	}

	h.Drunk = d.flagSince(222)
	h.ForTheWorthy = d.flagSince(227)
	h.Anniversary = d.flagSince(238)
	h.DontStarve = d.flagSince(239)
	h.NotTheBees = d.flagSince(241)
	h.Remix = d.flagSince(249)
	h.NoTraps = d.flagSince(266)
	if v >= 267 {
		h.Zenith = d.flag()
	} else {
		h.Zenith = h.Drunk && h.Remix
	}

	if v >= 141 {
		// .NET DateTime.ToBinary: the top two bits carry the kind.
		ticks := d.u64() << 2 >> 2
		h.CreationTime = time.UnixMilli(int64(ticks/10_000) - dotnetEpochMillis).UTC()
	}

	h.MoonType = d.u8()
	for i := range h.TreeX {
		h.TreeX[i] = d.i32()
	}
	for i := range h.TreeStyle {
		h.TreeStyle[i] = d.i32()
	}
	for i := range h.CaveBackX {
		h.CaveBackX[i] = d.i32()
	}
	for i := range h.CaveBackStyle {
		h.CaveBackStyle[i] = d.i32()
	}
	h.IceBackStyle = d.i32()
	h.JungleBackStyle = d.i32()
	h.HellBackStyle = d.i32()
	h.SpawnX = d.i32()
	h.SpawnY = d.i32()
	h.WorldSurface = d.f64()
	h.RockLayer = d.f64()
	h.Time = d.f64()
	h.DayTime = d.flag()
	h.MoonPhase = d.i32()
	h.BloodMoon = d.flag()
	h.Eclipse = d.flag()
	h.DungeonX = d.i32()
	h.DungeonY = d.i32()
	h.Crimson = d.flag()

	h.DownedBoss1 = d.flag()
	h.DownedBoss2 = d.flag()
	h.DownedBoss3 = d.flag()
	h.DownedQueenBee = d.flag()
	h.DownedMechBoss1 = d.flag()
	h.DownedMechBoss2 = d.flag()
	h.DownedMechBoss3 = d.flag()
	h.DownedMechBossAny = d.flag()
	h.DownedPlantBoss = d.flag()
	h.DownedGolemBoss = d.flag()
	h.DownedSlimeKing = d.flagSince(118)
	h.SavedGoblin = d.flag()
	h.SavedWizard = d.flag()
	h.SavedMechanic = d.flag()
	h.DownedGoblins = d.flag()
	h.DownedClown = d.flag()
	h.DownedFrost = d.flag()
	h.DownedPirates = d.flag()
	h.SmashedShadowOrb = d.flag()
	h.SpawnMeteor = d.flag()
	h.ShadowOrbCount = d.u8()
	h.AltarCount = d.i32()
	h.HardMode = d.flag()
	h.AfterPartyOfDoom = d.flagSince(257)

	h.InvasionDelay = d.i32()
	h.InvasionSize = d.i32()
	h.InvasionType = d.i32()
	h.InvasionX = d.f64()
	if v >= 118 {
		h.SlimeRainTime = d.f64()
	}
	if v >= 113 {
		h.SundialCooldown = d.u8()
	}
	h.Raining = d.flag()
	h.RainTime = d.i32()
	h.MaxRain = d.f32()
	h.OreTierCobalt = d.i32()
	h.OreTierMythril = d.i32()
	h.OreTierAdamantite = d.i32()
	copy(h.Backgrounds[:8], d.raw(8))

	h.CloudBGActive = float32(d.i32())
	if h.CloudBGActive >= 1 {
		h.CloudBGAlpha = 1
	}
	h.NumClouds = d.i16()
	h.WindSpeed = d.f32()

	if v >= 95 {
		n := d.i32()
		h.AnglersFinishedToday = make([]string, 0, d.count(n))
		for i := int32(0); i < n && d.err == nil; i++ {
			h.AnglersFinishedToday = append(h.AnglersFinishedToday, d.str())
		}
	}
	h.SavedAngler = d.flagSince(99)
	h.AnglerQuest = d.i32Since(101, 0)
	h.SavedStylist = d.flagSince(104)
	h.SavedTaxCollector = d.flagSince(129)
	h.SavedGolfer = d.flagSince(201)
	h.InvasionSizeStart = d.i32Since(107, 0)
	h.CultistDelay = d.i32Since(108, 86400)
	if v >= 109 {
		h.NPCKillCounts = d.i32s(int32(d.i16()))
	}
	h.FastForwardToDawn = d.flagSince(128)

	h.DownedFishron = d.flagSince(131)
	h.DownedMartians = d.flagSince(131)
	h.DownedAncientCultist = d.flagSince(131)
	h.DownedMoonlord = d.flagSince(131)
	h.DownedHalloweenKing = d.flagSince(131)
	h.DownedHalloweenTree = d.flagSince(131)
	h.DownedChristmasQueen = d.flagSince(131)
	h.DownedChristmasSantank = d.flagSince(131)
	h.DownedChristmasTree = d.flagSince(131)
	h.DownedTowerSolar = d.flagSince(140)
	h.DownedTowerVortex = d.flagSince(140)
	h.DownedTowerNebula = d.flagSince(140)
	h.DownedTowerStardust = d.flagSince(140)
	h.TowerActiveSolar = d.flagSince(140)
	h.TowerActiveVortex = d.flagSince(140)
	h.TowerActiveNebula = d.flagSince(140)
	h.TowerActiveStardust = d.flagSince(140)
	h.LunarApocalypseUp = d.flagSince(140)

	h.PartyManual = d.flagSince(170)
	h.PartyGenuine = d.flagSince(170)
	h.PartyCooldown = d.i32Since(170, 0)
	if v >= 170 {
		h.PartyCelebrating = d.i32s(d.i32())
	}

	h.SandstormHappening = d.flagSince(174)
	h.SandstormTimeLeft = d.i32Since(174, 0)
	h.SandstormSeverity = d.f32Since(174)
	h.SandstormIntendedSeverity = d.f32Since(174)

	h.SavedBartender = d.flagSince(178)
	h.DownedDD2Tier1 = d.flagSince(178)
	h.DownedDD2Tier2 = d.flagSince(178)
	h.DownedDD2Tier3 = d.flagSince(178)

	if v >= 193 {
		h.Backgrounds[8] = d.u8()
	}
	if v >= 215 {
		h.Backgrounds[9] = d.u8()
	}
	if v >= 194 {
		copy(h.Backgrounds[10:], d.raw(3))
	}

	h.CombatBookUsed = d.flagSince(204)
	h.LanternNightCooldown = d.i32Since(207, 0)
	h.LanternNightGenuine = d.flagSince(207)
	h.LanternNightManual = d.flagSince(207)
	h.LanternNightNextIsGenuine = d.flagSince(207)

	if v >= 211 {
		h.TreeTopVariations = d.i32s(d.i32())
	} else {
		h.TreeTopVariations = append([]int32(nil), h.TreeStyle[:]...)
		for _, bg := range h.Backgrounds[1:10] {
			h.TreeTopVariations = append(h.TreeTopVariations, int32(bg))
		}
	}

	h.ForceHalloween = d.flagSince(212)
	h.ForceXMas = d.flagSince(212)

	h.OreTierCopper = d.i32Since(216, -1)
	h.OreTierIron = d.i32Since(216, -1)
	h.OreTierSilver = d.i32Since(216, -1)
	h.OreTierGold = d.i32Since(216, -1)

	h.BoughtCat = d.flagSince(217)
	h.BoughtDog = d.flagSince(217)
	h.BoughtBunny = d.flagSince(217)

	h.DownedEmpressOfLight = d.flagSince(223)
	h.DownedQueenSlime = d.flagSince(223)
	h.DownedDeerclops = d.flagSince(240)

	h.UnlockedSlimeBlue = d.flagSince(251)
	h.UnlockedMerchant = d.flagSince(251)
	h.UnlockedDemolition = d.flagSince(251)
	h.UnlockedPartyGirl = d.flagSince(251)
	h.UnlockedDyeTrader = d.flagSince(251)
	h.UnlockedTruffle = d.flagSince(251)
	h.UnlockedArmsDealer = d.flagSince(251)
	h.UnlockedNurse = d.flagSince(251)
	h.UnlockedPrincess = d.flagSince(251)
	h.CombatBookTwoUsed = d.flagSince(259)
	h.PeddlersSatchelUsed = d.flagSince(260)

	h.UnlockedSlimeGreen = d.flagSince(261)
	h.UnlockedSlimeOld = d.flagSince(261)
	h.UnlockedSlimePurple = d.flagSince(261)
	h.UnlockedSlimeRainbow = d.flagSince(261)
	h.UnlockedSlimeRed = d.flagSince(261)
	h.UnlockedSlimeYellow = d.flagSince(261)
	h.UnlockedSlimeCopper = d.flagSince(261)

	h.FastForwardToDusk = d.flagSince(264)
	if v >= 264 {
		h.MoondialCooldown = d.u8()
	}
	return h
}
