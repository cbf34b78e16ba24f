package world

// fixedDrops maps tile ids whose drop depends on nothing but the id.
var fixedDrops = func() map[int16]int16 {
	pairs := [...][2]int16{
		{0, 2}, {1, 3}, {2, 2}, {6, 11}, {7, 12}, {8, 13}, {9, 14}, {22, 56}, {23, 2},
		{25, 61}, {30, 9}, {33, 105}, {36, 1869}, {37, 116}, {38, 129}, {39, 131}, {40, 133},
		{41, 134}, {43, 137}, {44, 139}, {45, 141}, {46, 143}, {47, 145}, {48, 147},
		{49, 148}, {51, 150}, {53, 169}, {54, 170}, {56, 173}, {57, 172}, {58, 174},
		{59, 176}, {60, 176}, {70, 176}, {75, 192}, {76, 214}, {78, 222}, {80, 276},
		{81, 275}, {107, 364}, {108, 365}, {109, 2}, {111, 366}, {112, 370}, {116, 408},
		{117, 409}, {118, 412}, {119, 413}, {120, 414}, {121, 415}, {122, 416}, {123, 424},
		{124, 480}, {130, 511}, {131, 512}, {136, 538}, {140, 577}, {141, 580}, {145, 586},
		{146, 591}, {147, 593}, {148, 594}, {150, 604}, {151, 607}, {152, 609}, {153, 611},
		{154, 612}, {155, 613}, {156, 614}, {157, 619}, {158, 620}, {159, 621}, {160, 662},
		{161, 664}, {163, 833}, {164, 834}, {166, 699}, {167, 700}, {168, 701}, {169, 702},
		{170, 1872}, {174, 713}, {175, 717}, {176, 718}, {177, 719}, {179, 3}, {180, 3},
		{181, 3}, {182, 3}, {183, 3}, {188, 276}, {189, 751}, {190, 183}, {191, 9},
		{193, 762}, {194, 154}, {195, 763}, {196, 765}, {197, 767}, {198, 775}, {199, 2},
		{200, 835}, {202, 824}, {203, 836}, {204, 880}, {206, 883}, {208, 911}, {210, 937},
		{211, 947}, {213, 965}, {214, 85}, {221, 1104}, {222, 1105}, {223, 1106}, {224, 1103},
		{226, 1101}, {229, 1125}, {230, 1127}, {232, 1150}, {234, 1246}, {248, 1589},
		{249, 1591}, {250, 1593}, {251, 1725}, {252, 1727}, {253, 1729}, {272, 1344},
		{273, 2119}, {274, 2120}, {284, 2173}, {311, 2260}, {312, 2261}, {313, 2262},
		{315, 2435}, {321, 2503}, {322, 2504}, {325, 2692}, {326, 2693}, {327, 2694},
		{328, 2695}, {329, 2697}, {330, 71}, {331, 72}, {332, 73}, {333, 74}, {336, 2701},
		{340, 2751}, {341, 2752}, {342, 2753}, {343, 2754}, {344, 2755}, {345, 2787},
		{346, 2792}, {347, 2793}, {348, 2794}, {350, 2860}, {351, 2868}, {353, 2996},
		{357, 3066}, {365, 3077}, {366, 3078}, {367, 3081}, {368, 3086}, {369, 3087},
		{370, 3100}, {371, 3113}, {372, 3117}, {379, 3214}, {381, 3}, {383, 620}, {385, 3234},
		{396, 3271}, {397, 3272}, {398, 3274}, {399, 3275}, {400, 3276}, {401, 3277},
		{402, 3338}, {403, 3339}, {404, 3347}, {407, 3380}, {408, 3460}, {409, 3461},
		{415, 3573}, {416, 3574}, {417, 3575}, {418, 3576}, {421, 3609}, {422, 3610},
		{424, 3616}, {426, 3621}, {427, 3622}, {429, 3629}, {430, 3633}, {431, 3634},
		{432, 3635}, {433, 3636}, {434, 3637}, {435, 3638}, {436, 3639}, {437, 3640},
		{438, 3641}, {439, 3642}, {442, 3707}, {445, 3725}, {446, 3736}, {447, 3737},
		{448, 3738}, {449, 3739}, {450, 3740}, {451, 3741}, {458, 3754}, {459, 3755},
		{460, 3756}, {472, 3951}, {473, 3953}, {474, 3955}, {476, 4040}, {477, 2},
		{478, 4050}, {479, 4051}, {492, 2}, {494, 4089}, {495, 4090}, {496, 4091},
		{498, 4139}, {500, 4229}, {501, 4230}, {502, 4231}, {503, 4232}, {507, 4277},
		{508, 4278}, {512, 129}, {513, 129}, {514, 129}, {515, 129}, {516, 129}, {517, 129},
		{520, 4326}, {534, 3}, {535, 129}, {536, 3}, {537, 129}, {539, 3}, {540, 129},
		{541, 4392}, {546, 4422}, {557, 4422}, {561, 4554}, {562, 4564}, {563, 4547},
		{566, 999}, {574, 4717}, {575, 4718}, {576, 4719}, {577, 4720}, {578, 4721},
		{579, 4761}, {593, 4868}, {618, 4962}, {624, 5114}, {625, 3}, {626, 129}, {627, 3},
		{628, 129}, {630, 5137}, {631, 5138}, {633, 172}, {635, 5215}, {641, 5306},
		{646, 5322}, {656, 5333}, {659, 5349}, {661, 176}, {662, 176}, {666, 5395},
		{667, 5398}, {668, 5400}, {669, 5401}, {670, 5402}, {671, 5403}, {672, 5404},
		{673, 5405}, {674, 5406}, {675, 5407}, {676, 5408}, {677, 5417}, {678, 5419},
		{679, 5421}, {680, 5423}, {681, 5425}, {682, 5427}, {683, 5433}, {684, 5435},
		{685, 5429}, {686, 5431}, {687, 5439}, {688, 5440}, {689, 5441}, {690, 5442},
		{691, 5443}, {692, 5444},
	}
	m := make(map[int16]int16, len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
	}
	return m
}()

// Frame-indexed drop tables.
var (
	torchStyles        = []int16{523, 974, 1245, 1333, 2274, 3004, 3045, 3114, 4383, 4384, 4385, 4386, 4387, 4388, 5293, 5353}
	bottleDrops        = []int16{31, 28, 110, 350, 351, 2234, 2244, 2257, 2258}
	pressurePlateDrops = []int16{529, 541, 542, 543, 852, 853, 1151}
	trapDrops          = []int16{539, 1146, 1147, 1148, 1149, 5135}
	timerDrops         = []int16{583, 584, 585, 4484, 4485}
	gemDrops           = []int16{181, 180, 177, 179, 178, 182, 999}
	seashellDrops      = []int16{2625, 2626, 4072, 4073, 4071}
	logicGateLampDrops = []int16{3602, 3618, 3663}
	logicGateDrops     = []int16{3603, 3604, 3605, 3606, 3607, 3608}
	logicSensorDrops   = []int16{
		ItemLogicSensorSun, ItemLogicSensorMoon, ItemLogicSensorAbove, ItemLogicSensorWater,
		ItemLogicSensorLava, ItemLogicSensorHoney, ItemLogicSensorLiquid,
	}
	weightedPlateDrops = []int16{
		ItemPressurePlateOrange, ItemPressurePlateCyan, ItemPressurePlatePurple, ItemPressurePlatePink,
	}

	platformDrops = []int16{
		94, 631, 632, 633, 634, 913, 1384, 1385, 1386, 1387, 1388, 1389, 1418, 1457, 1702,
		1796, 1818, 2518, 2549, 2566, 2581, 2627, 2628, 2629, 2630, 2744, 2822, 3144, 3146,
		3145, 3903, 3904, 3905, 3906, 3907, 3908, 3945, 3957, 4159, 4180, 4201, 4222, 4311,
		4416, 4580, 5162, 5183, 5204, 5292,
	}
	barDrops = []int16{
		20, 703, 22, 704, 21, 705, 19, 706, 57, 117, 175, 381, 1184, 382, 1191, 391, 1198,
		1006, 1225, 1257, 1552, 3261, 3467,
	}

	// trackTypes is the kind of minecart track for each frame: plain,
	// pressure plate or booster.
	trackTypes = []uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 2, 2, 2, 2, 2, 2,
	}
)
