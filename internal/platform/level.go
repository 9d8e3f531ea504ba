// Package platform implements the side-scrolling platformer: static levels
// loaded from flat text files, per-frame gravity physics, and coin collection.
package platform

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

// Level file alphabet: '=' platform, 'X' obstacle, 'o' coin, '@' player start.
// Lines starting with '#' are header comments.

//go:embed levels/*.txt
var levelFS embed.FS

// Point is a level coordinate.
type Point struct {
	X, Y int
}

// Platform is a horizontal run of solid ground.
type Platform struct {
	X, Y  int
	Width int
}

// Level holds the parsed geometry of one level.
type Level struct {
	Width     int
	Height    int
	Platforms []Platform
	Obstacles []Point
	Coins     []Point
	Start     Point
}

// LevelCount returns the number of embedded levels.
func LevelCount() int {
	entries, err := levelFS.ReadDir("levels")
	if err != nil {
		return 0
	}
	return len(entries)
}

// LoadLevel loads the nth embedded level, counting from 1.
func LoadLevel(n int) (*Level, error) {
	entries, err := levelFS.ReadDir("levels")
	if err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	if n < 1 || n > len(entries) {
		return nil, fmt.Errorf("load level: no level %d, have %d", n, len(entries))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	content, err := levelFS.ReadFile("levels/" + names[n-1])
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", names[n-1], err)
	}
	return ParseLevel(strings.Split(strings.TrimRight(string(content), "\n"), "\n"))
}

// ParseLevel parses level text. Header comment lines are skipped; the rest
// is the level layout.
func ParseLevel(lines []string) (*Level, error) {
	var rows []string
	header := true
	for _, line := range lines {
		line = strings.TrimRight(line, " \r")
		if header && strings.HasPrefix(line, "#") {
			continue
		}
		header = false
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse level: no layout rows")
	}

	level := &Level{Height: len(rows)}
	foundStart := false

	for y, row := range rows {
		if len(row) > level.Width {
			level.Width = len(row)
		}
		platformStart := -1
		for x, ch := range row {
			if ch == '=' {
				if platformStart < 0 {
					platformStart = x
				}
			} else if platformStart >= 0 {
				level.Platforms = append(level.Platforms, Platform{X: platformStart, Y: y, Width: x - platformStart})
				platformStart = -1
			}

			switch ch {
			case 'X':
				level.Obstacles = append(level.Obstacles, Point{x, y})
			case 'o':
				level.Coins = append(level.Coins, Point{x, y})
			case '@':
				level.Start = Point{x, y}
				foundStart = true
			case '=', ' ':
			default:
				return nil, fmt.Errorf("parse level: unknown symbol %q at (%d,%d)", ch, x, y)
			}
		}
		if platformStart >= 0 {
			level.Platforms = append(level.Platforms, Platform{X: platformStart, Y: y, Width: len(row) - platformStart})
		}
	}

	if !foundStart {
		return nil, fmt.Errorf("parse level: no player start (@)")
	}
	return level, nil
}

// RemoveCoin deletes the coin at the given index.
func (l *Level) RemoveCoin(i int) {
	l.Coins = append(l.Coins[:i], l.Coins[i+1:]...)
}
