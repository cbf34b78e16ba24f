package world

// Item ids used by the drop table.
const (
	ItemDirtBlock           int16 = 2
	ItemStoneBlock          int16 = 3
	ItemMushroom            int16 = 5
	ItemWood                int16 = 9
	ItemAcorn               int16 = 27
	ItemGrassSeeds          int16 = 62
	ItemCobweb              int16 = 150
	ItemBone                int16 = 154
	ItemSandBlock           int16 = 169
	ItemGlowingMushroom     int16 = 183
	ItemMushroomGrassSeeds  int16 = 194
	ItemJungleGrassSeeds    int16 = 195
	ItemStaffOfRegrowth     int16 = 213
	ItemNaturesGift         int16 = 223
	ItemBlowpipe            int16 = 281
	ItemSeed                int16 = 283
	ItemDaybloomSeeds       int16 = 307
	ItemDaybloom            int16 = 313
	ItemJungleSpores        int16 = 331
	ItemSnowBlock           int16 = 593
	ItemIceBlock            int16 = 664
	ItemBlowgun             int16 = 986
	ItemTealMushroom        int16 = 1107
	ItemBlueLight           int16 = 1912
	ItemRedLight            int16 = 1913
	ItemGreenLight          int16 = 1914
	ItemShiverthornSeeds    int16 = 2357
	ItemShiverthorn         int16 = 2358
	ItemMinecartTrack       int16 = 2340
	ItemPressureTrack       int16 = 2492
	ItemPalmWood            int16 = 2504
	ItemBoosterTrack        int16 = 2739
	ItemVineRope            int16 = 2996
	ItemJungleRose          int16 = 3052
	ItemGranite             int16 = 3081
	ItemMarble              int16 = 3086
	ItemStrangePlant1       int16 = 3385
	ItemLogicSensorSun      int16 = 3613
	ItemLogicSensorMoon     int16 = 3614
	ItemLogicSensorAbove    int16 = 3615
	ItemPressurePlatePink   int16 = 3626
	ItemPressurePlateOrange int16 = 3630
	ItemPressurePlateCyan   int16 = 3631
	ItemPressurePlatePurple int16 = 3632
	ItemLogicSensorWater    int16 = 3726
	ItemLogicSensorLava     int16 = 3727
	ItemLogicSensorHoney    int16 = 3728
	ItemLogicSensorLiquid   int16 = 3729
	ItemSandstone           int16 = 4051
	ItemBambooBlock         int16 = 4564
	ItemGemTreeTopazSeed    int16 = 4851
	ItemAshGrassSeeds       int16 = 5214
	ItemAcornAxe            int16 = 5295
	ItemCordageGuide        int16 = 5343
)
