package progression

import "testing"

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{name: "zero points", points: 0, want: 1},
		{name: "just below level 2", points: 199, want: 1},
		{name: "exact level 2 threshold", points: 200, want: 2},
		{name: "mid level 3", points: 500, want: 3},
		{name: "exact top threshold", points: 700, want: 4},
		{name: "beyond top", points: 9000, want: 4},
		{name: "negative points clamp to level 1", points: -10, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFor(tt.points); got.Level != tt.want {
				t.Fatalf("LevelFor(%d) = level %d, want %d", tt.points, got.Level, tt.want)
			}
		})
	}
}

func TestLevelsTableOrdering(t *testing.T) {
	if Levels[0].PointsNeeded != 0 {
		t.Fatalf("first level requires %d points, want 0", Levels[0].PointsNeeded)
	}
	for i := 1; i < len(Levels); i++ {
		if Levels[i].PointsNeeded <= Levels[i-1].PointsNeeded {
			t.Fatalf("thresholds not strictly increasing at index %d", i)
		}
		if Levels[i].Level != Levels[i-1].Level+1 {
			t.Fatalf("level numbers not consecutive at index %d", i)
		}
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		points   int
		wantLvl  int
		wantNext int // 0 means nil
		wantPct  float64
	}{
		{name: "fresh account", points: 0, wantLvl: 1, wantNext: 2, wantPct: 0},
		{name: "halfway to level 2", points: 100, wantLvl: 1, wantNext: 2, wantPct: 50},
		{name: "top tier pegs at 100", points: 800, wantLvl: 4, wantNext: 0, wantPct: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, next, pct := Progress(tt.points)
			if cur.Level != tt.wantLvl {
				t.Fatalf("current level = %d, want %d", cur.Level, tt.wantLvl)
			}
			if tt.wantNext == 0 {
				if next != nil {
					t.Fatalf("next level = %d, want nil", next.Level)
				}
			} else if next == nil || next.Level != tt.wantNext {
				t.Fatalf("next level = %v, want %d", next, tt.wantNext)
			}
			if pct != tt.wantPct {
				t.Fatalf("progress = %v, want %v", pct, tt.wantPct)
			}
		})
	}
}

func TestUnlockedAvatarsAccumulate(t *testing.T) {
	l1 := UnlockedAvatars(0)
	if len(l1) != len(Levels[0].Avatars) {
		t.Fatalf("level 1 unlocks %d avatars, want %d", len(l1), len(Levels[0].Avatars))
	}
	l2 := UnlockedAvatars(200)
	if len(l2) != len(Levels[0].Avatars)+len(Levels[1].Avatars) {
		t.Fatalf("level 2 unlocks %d avatars, want %d", len(l2), len(Levels[0].Avatars)+len(Levels[1].Avatars))
	}
	// earlier unlocks stay in place
	for i, a := range l1 {
		if l2[i] != a {
			t.Fatalf("unlock order changed at %d: %q vs %q", i, l2[i], a)
		}
	}
}

func TestAvatarKnown(t *testing.T) {
	if !AvatarKnown("novice-01") {
		t.Fatal("novice-01 should be known")
	}
	if !AvatarKnown("master-08") {
		t.Fatal("master-08 should be known")
	}
	if AvatarKnown("hacker-99") {
		t.Fatal("hacker-99 should not be known")
	}
}
