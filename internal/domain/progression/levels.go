package progression

// Level is one tier of the level table. PointsNeeded is the minimum point
// total for the tier; Avatars become unlocked when the tier is reached and
// stay unlocked afterwards.
type Level struct {
	Level        int      `json:"level"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PointsNeeded int      `json:"pointsNeeded"`
	Avatars      []string `json:"avatars"`
}

// Levels is the level table of record, ordered by strictly increasing
// PointsNeeded. Level 1 requires 0 points so derivation always succeeds.
var Levels = []Level{
	{
		Level:        1,
		Name:         "🎬 Novice Explorer",
		Description:  "Just starting your movie journey",
		PointsNeeded: 0,
		Avatars: []string{
			"novice-01", "novice-02", "novice-03",
			"novice-04", "novice-05", "novice-06",
		},
	},
	{
		Level:        2,
		Name:         "🎥 Movie Enthusiast",
		Description:  "Building your movie collection",
		PointsNeeded: 200,
		Avatars: []string{
			"enthusiast-01", "enthusiast-02", "enthusiast-03", "enthusiast-04",
			"enthusiast-05", "enthusiast-06", "enthusiast-07",
		},
	},
	{
		Level:        3,
		Name:         "🏆 Cinema Expert",
		Description:  "You know your movies well",
		PointsNeeded: 450,
		Avatars: []string{
			"expert-01", "expert-02", "expert-03",
			"expert-04", "expert-05", "expert-06",
		},
	},
	{
		Level:        4,
		Name:         "👑 Film Master",
		Description:  "Master of all cinema genres",
		PointsNeeded: 700,
		Avatars: []string{
			"master-01", "master-02", "master-03", "master-04",
			"master-05", "master-06", "master-07", "master-08",
		},
	},
}

// SignupBadge is granted to every account at creation.
const SignupBadge = "🎬 Movie Explorer"

// LevelBadges maps a level to the badge awarded on reaching it. Level 1 has
// no entry; its badge is the signup badge.
var LevelBadges = map[int]string{
	2: "🎥 Movie Enthusiast",
	3: "🏆 Cinema Expert",
	4: "👑 Film Master",
}

// LevelFor returns the highest level whose threshold the points meet.
func LevelFor(points int) Level {
	for i := len(Levels) - 1; i >= 0; i-- {
		if points >= Levels[i].PointsNeeded {
			return Levels[i]
		}
	}
	return Levels[0]
}

// NextLevel returns the level after the given one, or nil at the top tier.
func NextLevel(current Level) *Level {
	for i := range Levels {
		if Levels[i].PointsNeeded > current.PointsNeeded {
			return &Levels[i]
		}
	}
	return nil
}

// Progress returns the current level, the next level (nil at the top) and
// the percent progress toward it, clamped to [0,100].
func Progress(points int) (Level, *Level, float64) {
	current := LevelFor(points)
	next := NextLevel(current)
	if next == nil {
		return current, nil, 100
	}
	pct := float64(points-current.PointsNeeded) / float64(next.PointsNeeded-current.PointsNeeded) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return current, next, pct
}

// UnlockedAvatars returns the avatars of every level whose threshold the
// points meet, accumulated in table order.
func UnlockedAvatars(points int) []string {
	var unlocked []string
	for _, l := range Levels {
		if points >= l.PointsNeeded {
			unlocked = append(unlocked, l.Avatars...)
		}
	}
	return unlocked
}

// AvatarKnown reports whether the avatar id exists anywhere in the table.
func AvatarKnown(avatar string) bool {
	for _, l := range Levels {
		for _, a := range l.Avatars {
			if a == avatar {
				return true
			}
		}
	}
	return false
}
