package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"treasurehunter/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 25
	DefaultHeight = 12

	// Room and corridor carving parameters
	minRoomSize     = 3
	maxRoomSize     = 5
	minCorridorLen  = 3
	maxCorridorLen  = 8
	treasureSamples = 10

	// Minimum Manhattan distance from the start before a trap or
	// monster may be placed.
	minTrapDist    = 3
	minMonsterDist = 4
)

// Generator carves a random dungeon and places the start, exit, treasure,
// traps and monsters. Deterministic for a given seeded random source.
type Generator struct {
	Width  int
	Height int

	// Placements recorded by the most recent Generate call.
	ExitPos     Position
	TreasurePos Position

	rng  *rand.Rand
	grid *Grid
	pool []Position
}

// NewGenerator creates a generator for the given dimensions.
// The random source is injected so generation can be reproduced in tests.
func NewGenerator(width, height int, rng *rand.Rand) *Generator {
	return &Generator{Width: width, Height: height, rng: rng}
}

// Generate carves the dungeon and returns the grid and the player start.
// Connectivity between start and exit is not guaranteed; callers retry or
// fall back on error.
func (g *Generator) Generate(ctx context.Context) (*Grid, Position, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	if g.Width < 5 || g.Height < 5 {
		return nil, Position{}, fmt.Errorf("generate: dungeon %dx%d too small", g.Width, g.Height)
	}

	g.grid = NewGrid(g.Width, g.Height)
	g.carveRooms()
	g.carveCorridors()
	g.sealBorder()
	g.collectPool()

	start := g.placeStart()
	if err := g.placeExit(start); err != nil {
		return nil, Position{}, err
	}
	g.placeTreasure(start)
	traps := g.placeHazards(CellTrap, max(3, roundFrac(len(g.pool), 0.05)), start, minTrapDist)
	monsters := g.placeHazards(CellMonster, max(2, roundFrac(len(g.pool), 0.03)), start, minMonsterDist)

	span.SetAttributes(
		attribute.Int("dungeon.width", g.Width),
		attribute.Int("dungeon.height", g.Height),
		attribute.Int("dungeon.traps", traps),
		attribute.Int("dungeon.monsters", monsters),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return g.grid, start, nil
}

// carveRooms opens small rectangular rooms at random interior points.
func (g *Generator) carveRooms() {
	roomCount := (g.Width*g.Height + 99) / 100
	for i := 0; i < roomCount; i++ {
		cx := 2 + g.rng.Intn(g.Width-4)
		cy := 2 + g.rng.Intn(g.Height-4)
		size := minRoomSize + g.rng.Intn(maxRoomSize-minRoomSize+1)

		for y := max(1, cy-size/2); y < min(g.Height-1, cy+size/2); y++ {
			for x := max(1, cx-size/2); x < min(g.Width-1, cx+size/2); x++ {
				g.grid.Cells[y][x] = CellEmpty
			}
		}
	}
}

// carveCorridors opens straight lines in random cardinal directions,
// clipped to the interior.
func (g *Generator) carveCorridors() {
	dirs := [4]Position{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	for i := 0; i < g.Width+g.Height; i++ {
		x := 1 + g.rng.Intn(g.Width-2)
		y := 1 + g.rng.Intn(g.Height-2)
		dir := dirs[g.rng.Intn(len(dirs))]
		length := minCorridorLen + g.rng.Intn(maxCorridorLen-minCorridorLen+1)

		for step := 0; step < length; step++ {
			nx := x + dir.X*step
			ny := y + dir.Y*step
			if g.grid.Interior(nx, ny) {
				g.grid.Cells[ny][nx] = CellEmpty
			}
		}
	}
}

// sealBorder forces every border cell back to wall.
func (g *Generator) sealBorder() {
	for x := 0; x < g.Width; x++ {
		g.grid.Cells[0][x] = CellWall
		g.grid.Cells[g.Height-1][x] = CellWall
	}
	for y := 0; y < g.Height; y++ {
		g.grid.Cells[y][0] = CellWall
		g.grid.Cells[y][g.Width-1] = CellWall
	}
}

// collectPool gathers all empty interior cells and shuffles them once,
// so placement can sample without replacement in O(1).
func (g *Generator) collectPool() {
	g.pool = g.pool[:0]
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if g.grid.Cells[y][x] == CellEmpty {
				g.pool = append(g.pool, Position{x, y})
			}
		}
	}
	g.rng.Shuffle(len(g.pool), func(i, j int) {
		g.pool[i], g.pool[j] = g.pool[j], g.pool[i]
	})
}

// placeStart picks the player start and clears a radius-1 neighborhood
// around it so the player is never boxed in.
func (g *Generator) placeStart() Position {
	if len(g.pool) == 0 {
		// No empty cells at all: scan for one, or force-carve one.
		for y := 1; y < g.Height-1; y++ {
			for x := 1; x < g.Width-1; x++ {
				if g.grid.Cells[y][x] == CellEmpty {
					start := Position{x, y}
					g.clearAround(start, 1)
					return start
				}
			}
		}
		start := Position{g.Width / 4, g.Height / 2}
		g.grid.Set(start.X, start.Y, CellEmpty)
		g.clearAround(start, 1)
		return start
	}

	start := g.pool[0]
	g.pool = g.pool[1:]
	g.clearAround(start, 1)
	return start
}

// clearAround converts walls near a point into open floor. Newly opened
// cells join the candidate pool.
func (g *Generator) clearAround(center Position, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			nx, ny := center.X+dx, center.Y+dy
			if g.grid.Interior(nx, ny) && g.grid.Cells[ny][nx] == CellWall {
				g.grid.Cells[ny][nx] = CellEmpty
				g.pool = append(g.pool, Position{nx, ny})
			}
		}
	}
}

// placeExit marks the exit at the first pool cell far enough from the start.
// If no cell qualifies, it force-places the exit opposite the start; a forced
// position that falls outside the interior is a generation failure.
func (g *Generator) placeExit(start Position) error {
	minDistance := max(5, (g.Width+g.Height)/5)

	for i, pos := range g.pool {
		if ManhattanDist(pos, start) >= minDistance {
			g.grid.Set(pos.X, pos.Y, CellExit)
			g.ExitPos = pos
			g.pool = append(g.pool[:i], g.pool[i+1:]...)
			return nil
		}
	}

	forced := Position{g.Width - start.X - 2, g.Height - start.Y - 2}
	if !g.grid.Interior(forced.X, forced.Y) {
		return fmt.Errorf("place exit: forced position (%d,%d) outside interior", forced.X, forced.Y)
	}
	g.grid.Set(forced.X, forced.Y, CellExit)
	g.ExitPos = forced
	g.clearAround(forced, 1)
	return nil
}

// placeTreasure scores up to ten sampled pool cells and places the treasure
// at the best one: roughly three steps from the start and roughly on the
// start-to-exit path.
func (g *Generator) placeTreasure(start Position) {
	if len(g.pool) > 0 {
		bestIdx := -1
		bestScore := 0
		for i := 0; i < min(treasureSamples, len(g.pool)); i++ {
			idx := g.rng.Intn(len(g.pool))
			pos := g.pool[idx]
			dStart := ManhattanDist(pos, start)
			dExit := ManhattanDist(pos, g.ExitPos)
			score := abs(dStart-3) + abs(dExit-dStart)
			if bestIdx < 0 || score < bestScore {
				bestIdx = idx
				bestScore = score
			}
		}
		if bestIdx >= 0 {
			pos := g.pool[bestIdx]
			g.grid.Set(pos.X, pos.Y, CellTreasure)
			g.TreasurePos = pos
			g.pool = append(g.pool[:bestIdx], g.pool[bestIdx+1:]...)
			return
		}
	}

	// Pool is empty: fall back to the midpoint between start and exit,
	// or the nearest empty cell by expanding diamond search.
	mid := Position{(start.X + g.ExitPos.X) / 2, (start.Y + g.ExitPos.Y) / 2}
	if g.grid.At(mid.X, mid.Y) == CellEmpty {
		g.grid.Set(mid.X, mid.Y, CellTreasure)
		g.TreasurePos = mid
		return
	}
	for d := 1; d < max(g.Width, g.Height); d++ {
		for dy := -d; dy <= d; dy++ {
			for dx := -d; dx <= d; dx++ {
				if abs(dx)+abs(dy) != d {
					continue
				}
				nx, ny := mid.X+dx, mid.Y+dy
				if g.grid.Interior(nx, ny) && g.grid.Cells[ny][nx] == CellEmpty {
					g.grid.Cells[ny][nx] = CellTreasure
					g.TreasurePos = Position{nx, ny}
					return
				}
			}
		}
	}
}

// placeHazards samples pool cells for traps or monsters. A sample too close
// to the start is skipped without retry, so count is an upper bound.
func (g *Generator) placeHazards(kind CellKind, count int, start Position, minDist int) int {
	count = min(count, len(g.pool))
	placed := 0
	for i := 0; i < count; i++ {
		if len(g.pool) == 0 {
			break
		}
		idx := g.rng.Intn(len(g.pool))
		pos := g.pool[idx]
		if ManhattanDist(pos, start) > minDist {
			g.grid.Set(pos.X, pos.Y, kind)
			g.pool = append(g.pool[:idx], g.pool[idx+1:]...)
			placed++
		}
	}
	return placed
}

// roundFrac returns frac·n rounded to the nearest integer.
func roundFrac(n int, frac float64) int {
	return int(float64(n)*frac + 0.5)
}
