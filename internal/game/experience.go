package game

// MaxLevel is the highest level a player can reach.
const MaxLevel = 10

// levelTable holds the cumulative XP required to reach each level.
// Index 0 = level 1 (0 XP), index 1 = level 2 (100 XP), etc.
var levelTable = [MaxLevel]int{
	0,     // Level 1
	100,   // Level 2
	300,   // Level 3
	700,   // Level 4
	1300,  // Level 5
	2200,  // Level 6
	3500,  // Level 7
	5200,  // Level 8
	7500,  // Level 9
	10500, // Level 10
}

// ExpForLevel returns the cumulative XP required to reach the given level.
func ExpForLevel(level int) int {
	if level < 1 {
		return 0
	}
	if level > MaxLevel {
		return levelTable[MaxLevel-1]
	}
	return levelTable[level-1]
}

// KillReward returns the XP earned for defeating an opponent of victimLevel.
// Defeating weaker opponents is worth less:
//
//	victim 3+ above:  1.5
//	victim 1-2 above: 1.1-1.2
//	victim same:      1.0
//	victim 1-2 below: 0.6-0.7
//	victim 3-5 below: ~0.25-0.5
//	victim 6+ below:  0.0
func KillReward(killerLevel, victimLevel int) int {
	if victimLevel < 1 {
		victimLevel = 1
	}
	base := 50 * victimLevel

	var mult float64
	diff := victimLevel - killerLevel
	switch {
	case diff >= 3:
		mult = 1.5
	case diff >= 1:
		mult = 1.0 + float64(diff)*0.1
	case diff == 0:
		mult = 1.0
	case diff >= -2:
		mult = 0.8 + float64(diff)*0.1
	case diff >= -5:
		mult = 0.5 + float64(diff+2)*0.08
	default:
		mult = 0.0
	}

	return int(float64(base) * mult)
}
