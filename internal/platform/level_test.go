package platform

import "testing"

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel([]string{
		"# header comment",
		"",
		"  @",
		" ====  o",
		"      ===",
		"   X",
		"==========",
	})
	if err != nil {
		t.Fatalf("ParseLevel() error: %v", err)
	}

	if level.Start != (Point{2, 0}) {
		t.Errorf("Start = %v, want (2,0)", level.Start)
	}
	if len(level.Coins) != 1 || level.Coins[0] != (Point{7, 1}) {
		t.Errorf("Coins = %v, want one coin at (7,1)", level.Coins)
	}
	if len(level.Obstacles) != 1 || level.Obstacles[0] != (Point{3, 3}) {
		t.Errorf("Obstacles = %v, want one obstacle at (3,3)", level.Obstacles)
	}

	want := []Platform{{1, 1, 4}, {6, 2, 3}, {0, 4, 10}}
	if len(level.Platforms) != len(want) {
		t.Fatalf("Platforms = %v, want %v", level.Platforms, want)
	}
	for i, p := range want {
		if level.Platforms[i] != p {
			t.Errorf("Platforms[%d] = %v, want %v", i, level.Platforms[i], p)
		}
	}
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"empty", []string{"# only a header"}},
		{"no start", []string{"====", " o"}},
		{"unknown symbol", []string{"@", "=?="}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLevel(tt.lines); err == nil {
				t.Error("ParseLevel() should fail")
			}
		})
	}
}

func TestEmbeddedLevelsLoad(t *testing.T) {
	count := LevelCount()
	if count < 2 {
		t.Fatalf("LevelCount() = %d, want at least 2", count)
	}
	for n := 1; n <= count; n++ {
		level, err := LoadLevel(n)
		if err != nil {
			t.Fatalf("LoadLevel(%d) error: %v", n, err)
		}
		if len(level.Coins) == 0 {
			t.Errorf("level %d has no coins, it can never be completed", n)
		}
		if len(level.Platforms) == 0 {
			t.Errorf("level %d has no platforms", n)
		}
	}
}

func TestLoadLevelOutOfRange(t *testing.T) {
	if _, err := LoadLevel(0); err == nil {
		t.Error("LoadLevel(0) should fail")
	}
	if _, err := LoadLevel(LevelCount() + 1); err == nil {
		t.Error("LoadLevel beyond the last level should fail")
	}
}
