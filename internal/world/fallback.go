package world

import "math/rand"

// FallbackDungeon builds the deterministic layout used after generation
// retries are exhausted: open interior, sealed border, a sprinkling of
// interior walls, and fixed exit and treasure positions. It never fails
// and always yields a playable grid.
func FallbackDungeon(width, height int, rng *rand.Rand) (*Grid, Position) {
	if width < 6 {
		width = 6
	}
	if height < 6 {
		height = 6
	}

	grid := NewGrid(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			grid.Cells[y][x] = CellEmpty
		}
	}

	// Roughly 10% of cells become interior walls.
	for i := 0; i < width*height/10; i++ {
		x := 1 + rng.Intn(width-2)
		y := 1 + rng.Intn(height-2)
		grid.Cells[y][x] = CellWall
	}

	start := Position{2, 2}
	grid.Set(start.X, start.Y, CellEmpty)
	grid.Set(width-2, height-2, CellExit)
	grid.Set(width/2, height/2, CellTreasure)

	// Traps and monsters are placed opportunistically: a roll that lands
	// on a non-empty cell is simply skipped.
	for i := 0; i < 3; i++ {
		x := 3 + rng.Intn(width-5)
		y := 3 + rng.Intn(height-5)
		if grid.At(x, y) == CellEmpty {
			grid.Set(x, y, CellTrap)
		}
	}
	for i := 0; i < 2; i++ {
		x := 3 + rng.Intn(width-5)
		y := 3 + rng.Intn(height-5)
		if grid.At(x, y) == CellEmpty {
			grid.Set(x, y, CellMonster)
		}
	}

	return grid, start
}
