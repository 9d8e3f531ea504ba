package game

import (
	"context"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"treasurehunter/internal/entity"
	"treasurehunter/internal/gamedata"
	"treasurehunter/internal/telemetry"
	"treasurehunter/internal/world"
)

const (
	maxGenerationAttempts = 3
	startingScore         = 100

	trapDamage    = 1
	monsterDamage = 1

	valuablesChance = 0.05
	valuablesBonus  = 5
	dodgeChance     = 0.10
	treasureBonus   = 50

	// Win bonus: 25 points per remaining heart plus an efficiency bonus
	// that decays with the turn count.
	healthBonus  = 25
	turnBonusCap = 200
)

// Fixed event messages. Trap and monster flavor text comes from the
// embedded gamedata pools instead.
const (
	msgOutOfBounds = "You can't move outside the dungeon!"
	msgWallBump    = "You bump into a solid wall."
	msgEmpty       = "You move into an empty space."
	msgValuables   = "You found a small cache of valuables! (+5 points)"
	msgDodge       = "You narrowly avoid the monster's attack!"
	msgTreasure    = "You found the treasure! Now find the exit! (+50 points)"
	msgExitLocked  = "This is the exit, but you need to find the treasure first!"
	msgWin         = "You reached the exit with the treasure! Victory!"
	msgUnstable    = "The dungeon seems unstable. Try again."
)

// CommandSource supplies one command per turn. Next returns false when the
// wait window elapses without input; the engine treats that as a no-op turn.
type CommandSource interface {
	Next(ctx context.Context) (Command, bool)
}

// View renders engine state between turns.
type View interface {
	Render(snap Snapshot, message string)
	ShowHelp()
}

// Snapshot is the structured state the engine exposes to the renderer each
// turn. Presentation formatting is entirely the renderer's concern.
type Snapshot struct {
	Grid        *world.Grid
	PlayerX     int
	PlayerY     int
	Health      int
	MaxHealth   int
	Score       int
	HasTreasure bool
	Revealed    mapset.Set[world.Position]
	Turns       int
	Outcome     Outcome
}

// TurnReport describes what one call to Step did.
type TurnReport struct {
	Cmd     Command
	Moved   bool
	Message string
	Quit    bool
	Help    bool
}

// Result is the final state reported when the turn loop ends.
type Result struct {
	Outcome Outcome
	Score   int
	Turns   int
}

// Engine owns the game state and resolves one command per turn.
// It is single-threaded: all mutation happens inside Step.
type Engine struct {
	cfg      Config
	src      CommandSource
	rng      *rand.Rand
	messages *gamedata.Messages

	grid      *world.Grid
	player    *entity.Player
	revealed  mapset.Set[world.Position]
	turnCount int
	outcome   Outcome

	// generate is swappable so tests can force generation failures.
	generate func(ctx context.Context) (*world.Grid, world.Position, error)

	fallbackUsed bool
}

// New creates an engine. The random source drives generation and every
// in-game roll, so a seeded source reproduces a full playthrough.
func New(cfg Config, src CommandSource, rng *rand.Rand, messages *gamedata.Messages) *Engine {
	e := &Engine{
		cfg:      cfg,
		src:      src,
		rng:      rng,
		messages: messages,
		revealed: mapset.New[world.Position](),
		outcome:  Playing,
	}
	e.generate = func(ctx context.Context) (*world.Grid, world.Position, error) {
		return world.NewGenerator(cfg.Width, cfg.Height, rng).Generate(ctx)
	}
	return e
}

// Start generates the dungeon and resets all per-game state. Generation is
// retried up to three times; exhausting retries switches to the deterministic
// fallback layout, so Start never fails.
func (e *Engine) Start(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	var grid *world.Grid
	var start world.Position
	attempts := 0
	for attempts < maxGenerationAttempts {
		attempts++
		g, s, err := e.generate(ctx)
		if err == nil {
			grid, start = g, s
			break
		}
	}
	e.fallbackUsed = grid == nil
	if e.fallbackUsed {
		grid, start = world.FallbackDungeon(e.cfg.Width, e.cfg.Height, e.rng)
	}

	e.grid = grid
	e.player = entity.NewPlayer(start.X, start.Y)
	e.player.Score = startingScore
	e.revealed = mapset.New[world.Position]()
	e.turnCount = 0
	e.outcome = Playing

	span.SetAttributes(
		attribute.Int("dungeon.attempts", attempts),
		attribute.Bool("dungeon.fallback", e.fallbackUsed),
		attribute.Int("player.start_x", start.X),
		attribute.Int("player.start_y", start.Y),
	)
}

// Step runs one iteration of the turn loop: reveal visible cells, wait for a
// command, resolve it. A missed wait window or an unrecognized command is a
// no-op: no mutation, no turn cost.
func (e *Engine) Step(ctx context.Context) TurnReport {
	if e.outcome.Terminal() {
		return TurnReport{}
	}

	e.revealVisible()

	cmd, ok := e.src.Next(ctx)
	if !ok {
		return TurnReport{}
	}

	switch cmd {
	case CmdQuit:
		return TurnReport{Cmd: cmd, Quit: true}
	case CmdHelp:
		return TurnReport{Cmd: cmd, Help: true}
	}

	dx, dy, ok := cmd.Delta()
	if !ok {
		return TurnReport{Cmd: cmd}
	}
	return e.resolveMove(cmd, dx, dy)
}

// revealVisible unions the currently visible cells into the revealed set.
// The set only ever grows.
func (e *Engine) revealVisible() {
	width, height := 0, 0
	if e.grid != nil {
		width, height = e.grid.Width, e.grid.Height
	}
	visible := world.Visible(e.player.Position(), e.player.ViewDistance, width, height)
	visible.Each(e.revealed.Put)
}

// resolveMove applies a movement command: reject walls and out-of-bounds
// targets without a turn cost, otherwise commit the move and resolve the
// target cell's pre-move kind.
func (e *Engine) resolveMove(cmd Command, dx, dy int) TurnReport {
	if e.grid == nil || e.grid.Width == 0 || e.grid.Height == 0 {
		return TurnReport{Cmd: cmd, Message: msgUnstable}
	}

	nx, ny := e.player.X+dx, e.player.Y+dy
	if !e.grid.InBounds(nx, ny) {
		return TurnReport{Cmd: cmd, Message: msgOutOfBounds}
	}
	kind := e.grid.At(nx, ny)
	if kind == world.CellWall {
		return TurnReport{Cmd: cmd, Message: msgWallBump}
	}

	e.player.MoveTo(nx, ny)
	rep := TurnReport{Cmd: cmd, Moved: true}

	switch kind {
	case world.CellEmpty:
		if e.rng.Float64() < valuablesChance {
			e.player.AddScore(valuablesBonus)
			rep.Message = msgValuables
		} else {
			rep.Message = msgEmpty
		}
	case world.CellTrap:
		e.player.TakeDamage(trapDamage)
		e.grid.Set(nx, ny, world.CellEmpty)
		rep.Message = e.messages.Trap(e.rng)
	case world.CellMonster:
		if e.rng.Float64() < dodgeChance {
			rep.Message = msgDodge
		} else {
			e.player.TakeDamage(monsterDamage)
			rep.Message = e.messages.Monster(e.rng)
		}
		// The monster moves away whether or not it hit.
		e.grid.Set(nx, ny, world.CellEmpty)
	case world.CellTreasure:
		e.player.HasTreasure = true
		e.player.AddScore(treasureBonus)
		e.grid.Set(nx, ny, world.CellEmpty)
		rep.Message = msgTreasure
	case world.CellExit:
		if e.player.HasTreasure {
			rep.Message = msgWin
		} else {
			rep.Message = msgExitLocked
		}
	}

	// Terminal checks, in order: death, win, then the per-turn cost.
	// The dying and winning turns skip the usual score/turn bookkeeping.
	if !e.player.Alive() {
		e.outcome = Lost
	} else if kind == world.CellExit && e.player.HasTreasure {
		e.outcome = Won
		e.player.AddScore(e.player.Health*healthBonus + max(0, turnBonusCap-e.turnCount))
	} else {
		e.turnCount++
		e.player.AddScore(-1)
	}

	return rep
}

// Run drives the render/step loop until the player quits or the game reaches
// a terminal outcome. Quit unwinds immediately without finishing the
// in-flight turn's scoring.
func (e *Engine) Run(ctx context.Context, view View) Result {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()

	message := ""
	for {
		if ctx.Err() != nil {
			break
		}
		view.Render(e.Snapshot(), message)

		rep := e.Step(ctx)
		if rep.Quit {
			break
		}
		if rep.Help {
			view.ShowHelp()
			continue
		}
		if rep.Message != "" {
			message = rep.Message
		}
		if e.outcome.Terminal() {
			view.Render(e.Snapshot(), message)
			break
		}
	}

	result := Result{Outcome: e.outcome, Score: e.player.Score, Turns: e.turnCount}
	span.SetAttributes(
		attribute.String("game.outcome", result.Outcome.String()),
		attribute.Int("game.score", result.Score),
		attribute.Int("game.turns", result.Turns),
	)
	return result
}

// Snapshot returns the structured state consumed by the renderer.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:        e.grid,
		PlayerX:     e.player.X,
		PlayerY:     e.player.Y,
		Health:      e.player.Health,
		MaxHealth:   e.player.MaxHealth,
		Score:       e.player.Score,
		HasTreasure: e.player.HasTreasure,
		Revealed:    e.revealed,
		Turns:       e.turnCount,
		Outcome:     e.outcome,
	}
}
