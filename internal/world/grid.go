// Package world provides dungeon generation, the grid model, and visibility.
package world

import (
	"fmt"
	"strings"
)

// CellKind represents the semantic type of a single grid cell.
type CellKind rune

const (
	// CellWall is an impassable wall cell.
	CellWall CellKind = '#'
	// CellEmpty is a passable floor cell.
	CellEmpty CellKind = '.'
	// CellExit is the dungeon exit. Never mutates.
	CellExit CellKind = 'E'
	// CellTreasure is the treasure the player must collect. Single-use.
	CellTreasure CellKind = '$'
	// CellTrap damages the player once, then becomes empty.
	CellTrap CellKind = 'T'
	// CellMonster attacks the player once, then becomes empty.
	CellMonster CellKind = 'M'
)

// Walkable returns true if the player can move onto this cell.
func (k CellKind) Walkable() bool {
	return k != CellWall
}

// Rune returns the cell's display character.
func (k CellKind) Rune() rune {
	return rune(k)
}

// Position is a grid coordinate.
type Position struct {
	X, Y int
}

// ManhattanDist returns |Δx| + |Δy| between two positions.
func ManhattanDist(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Grid is the dungeon map: a fixed-size 2D array of cell kinds.
// Cells are indexed [row][col], so Cells[y][x].
type Grid struct {
	Width  int
	Height int
	Cells  [][]CellKind
}

// NewGrid creates a grid of the given size filled entirely with walls.
func NewGrid(width, height int) *Grid {
	cells := make([][]CellKind, height)
	for y := range cells {
		cells[y] = make([]CellKind, width)
		for x := range cells[y] {
			cells[y][x] = CellWall
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// InBounds returns true if the position lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell kind at the given position.
// Out-of-bounds reads return CellWall.
func (g *Grid) At(x, y int) CellKind {
	if !g.InBounds(x, y) {
		return CellWall
	}
	return g.Cells[y][x]
}

// Set writes the cell kind at the given position. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, kind CellKind) {
	if g.InBounds(x, y) {
		g.Cells[y][x] = kind
	}
}

// Interior returns true if the position is inside the grid and not on the border.
func (g *Grid) Interior(x, y int) bool {
	return x > 0 && x < g.Width-1 && y > 0 && y < g.Height-1
}

// BorderSealed returns true if every border cell is a wall.
func (g *Grid) BorderSealed() bool {
	for x := 0; x < g.Width; x++ {
		if g.Cells[0][x] != CellWall || g.Cells[g.Height-1][x] != CellWall {
			return false
		}
	}
	for y := 0; y < g.Height; y++ {
		if g.Cells[y][0] != CellWall || g.Cells[y][g.Width-1] != CellWall {
			return false
		}
	}
	return true
}

// String serializes the grid using the symbol alphabet, one row per line.
// The player marker is never stored in the grid.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			b.WriteRune(g.Cells[y][x].Rune())
		}
		if y < g.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Parse builds a grid from serialized rows. All rows must have equal length
// and every symbol must belong to the cell alphabet.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}
	width := len(lines[0])
	grid := NewGrid(width, len(lines))
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("parse grid: row %d has length %d, want %d", y, len(line), width)
		}
		for x, r := range line {
			switch kind := CellKind(r); kind {
			case CellWall, CellEmpty, CellExit, CellTreasure, CellTrap, CellMonster:
				grid.Cells[y][x] = kind
			default:
				return nil, fmt.Errorf("parse grid: unknown symbol %q at (%d,%d)", r, x, y)
			}
		}
	}
	return grid, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
