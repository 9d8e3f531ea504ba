package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"treasurehunter/internal/entity"
	"treasurehunter/internal/gamedata"
	"treasurehunter/internal/world"
)

// scriptSource feeds a fixed command sequence, then reports missed windows.
type scriptSource struct {
	cmds []Command
	i    int
}

func (s *scriptSource) Next(ctx context.Context) (Command, bool) {
	if s.i >= len(s.cmds) {
		return "", false
	}
	cmd := s.cmds[s.i]
	s.i++
	return cmd, true
}

// fixedSource is a rand.Source that always yields the same value, so
// probability rolls can be forced high or low.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

// midRoll makes Float64() return 0.5: no valuables find, no monster dodge.
const midRoll = int64(1) << 62

func testConfig() Config {
	return Config{Width: 25, Height: 12, InputWindow: 0}
}

// newTestEngine builds an engine over a hand-written grid, bypassing
// generation.
func newTestEngine(t *testing.T, lines []string, startX, startY int, cmds []Command, roll int64) *Engine {
	t.Helper()
	grid, err := world.Parse(lines)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	e := New(testConfig(), &scriptSource{cmds: cmds}, rand.New(fixedSource{roll}), gamedata.MustLoadMessages())
	e.grid = grid
	e.player = entity.NewPlayer(startX, startY)
	e.revealed = mapset.New[world.Position]()
	return e
}

func TestWallBumpRejected(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#.#.#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdRight}, midRoll)

	rep := e.Step(context.Background())

	if rep.Moved {
		t.Error("moving into a wall should not commit")
	}
	if rep.Message != msgWallBump {
		t.Errorf("message = %q, want %q", rep.Message, msgWallBump)
	}
	if e.player.X != 1 || e.player.Y != 1 {
		t.Errorf("position = (%d,%d), want (1,1)", e.player.X, e.player.Y)
	}
	if e.turnCount != 0 {
		t.Errorf("turnCount = %d, want 0 (wall bump costs no turn)", e.turnCount)
	}
}

func TestOutOfBoundsRejected(t *testing.T) {
	// A grid with an unsealed border, so the boundary check itself is hit.
	e := newTestEngine(t, []string{
		"...",
		"...",
		"...",
	}, 0, 1, []Command{CmdLeft}, midRoll)

	rep := e.Step(context.Background())

	if rep.Moved {
		t.Error("moving out of bounds should not commit")
	}
	if rep.Message != msgOutOfBounds {
		t.Errorf("message = %q, want %q", rep.Message, msgOutOfBounds)
	}
	if e.turnCount != 0 {
		t.Errorf("turnCount = %d, want 0", e.turnCount)
	}
}

func TestTreasurePickup(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#.$.#",
		"#####",
	}, 1, 3, []Command{CmdRight}, midRoll)

	rep := e.Step(context.Background())

	if !rep.Moved {
		t.Fatal("move onto treasure should commit")
	}
	if !e.player.HasTreasure {
		t.Error("HasTreasure should be set")
	}
	// +50 treasure, -1 per-turn cost.
	if e.player.Score != 49 {
		t.Errorf("score = %d, want 49", e.player.Score)
	}
	if got := e.grid.At(2, 3); got != world.CellEmpty {
		t.Errorf("treasure cell = %c, want empty (single-use)", got)
	}
	if e.turnCount != 1 {
		t.Errorf("turnCount = %d, want 1", e.turnCount)
	}
}

func TestTreasureCellSingleUse(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#.$.#",
		"#####",
	}, 1, 3, []Command{CmdRight, CmdLeft, CmdRight}, midRoll)

	ctx := context.Background()
	e.Step(ctx) // collect treasure
	e.Step(ctx) // step off
	scoreBefore := e.player.Score
	rep := e.Step(ctx) // revisit the same coordinate

	if rep.Message != msgEmpty {
		t.Errorf("revisit message = %q, want %q", rep.Message, msgEmpty)
	}
	if !e.player.HasTreasure {
		t.Error("HasTreasure must stay set")
	}
	if e.player.Score != scoreBefore-1 {
		t.Errorf("score = %d, want %d (plain empty move)", e.player.Score, scoreBefore-1)
	}
}

func TestTrapSingleUse(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#.T.#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdRight}, midRoll)

	rep := e.Step(context.Background())

	if e.player.Health != entity.DefaultMaxHealth-1 {
		t.Errorf("health = %d, want %d", e.player.Health, entity.DefaultMaxHealth-1)
	}
	if got := e.grid.At(2, 1); got != world.CellEmpty {
		t.Errorf("trap cell = %c, want empty (disarmed)", got)
	}
	if rep.Message == "" {
		t.Error("trap should produce a flavor message")
	}
}

func TestMonsterHitKillsPlayer(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#.M.#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdRight, CmdLeft}, midRoll) // 0.5 roll: dodge fails

	e.player.Health = 1
	e.turnCount = 7
	e.player.Score = 30

	ctx := context.Background()
	e.Step(ctx)

	if e.player.Health != 0 {
		t.Fatalf("health = %d, want 0", e.player.Health)
	}
	if e.outcome != Lost {
		t.Fatalf("outcome = %v, want Lost", e.outcome)
	}
	// The dying turn pays no per-turn cost.
	if e.turnCount != 7 {
		t.Errorf("turnCount = %d, want 7 (frozen)", e.turnCount)
	}
	if e.player.Score != 30 {
		t.Errorf("score = %d, want 30 (frozen)", e.player.Score)
	}

	// No further turns are processed after a terminal outcome.
	rep := e.Step(ctx)
	if rep.Moved || rep.Message != "" {
		t.Error("Step after Lost should be inert")
	}
	if e.player.X != 2 || e.player.Y != 1 {
		t.Error("position must not change after Lost")
	}
}

func TestMonsterDodge(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#.M.#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdRight}, 0) // 0.0 roll: dodge succeeds

	rep := e.Step(context.Background())

	if e.player.Health != entity.DefaultMaxHealth {
		t.Errorf("health = %d, want %d (dodged)", e.player.Health, entity.DefaultMaxHealth)
	}
	if rep.Message != msgDodge {
		t.Errorf("message = %q, want %q", rep.Message, msgDodge)
	}
	// The monster moves away even when dodged.
	if got := e.grid.At(2, 1); got != world.CellEmpty {
		t.Errorf("monster cell = %c, want empty", got)
	}
}

func TestExitRequiresTreasure(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#.E.#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdRight}, midRoll)

	rep := e.Step(context.Background())

	if e.outcome != Playing {
		t.Errorf("outcome = %v, want Playing", e.outcome)
	}
	if rep.Message != msgExitLocked {
		t.Errorf("message = %q, want %q", rep.Message, msgExitLocked)
	}
	if got := e.grid.At(2, 1); got != world.CellExit {
		t.Errorf("exit cell = %c, exit must never mutate", got)
	}
	if e.turnCount != 1 {
		t.Errorf("turnCount = %d, want 1 (locked exit still costs the turn)", e.turnCount)
	}
}

func TestWinBonus(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#.E.#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdRight}, midRoll)

	e.player.HasTreasure = true
	e.turnCount = 10

	e.Step(context.Background())

	if e.outcome != Won {
		t.Fatalf("outcome = %v, want Won", e.outcome)
	}
	// health*25 + max(0, 200-turns) = 3*25 + 190 = 265; the winning turn
	// pays no per-turn cost.
	if e.player.Score != 265 {
		t.Errorf("score = %d, want 265", e.player.Score)
	}
	if e.turnCount != 10 {
		t.Errorf("turnCount = %d, want 10 (frozen)", e.turnCount)
	}
}

func TestValuablesFind(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdRight}, 0) // 0.0 roll: valuables found

	rep := e.Step(context.Background())

	if rep.Message != msgValuables {
		t.Errorf("message = %q, want %q", rep.Message, msgValuables)
	}
	// +5 valuables, -1 per-turn cost.
	if e.player.Score != 4 {
		t.Errorf("score = %d, want 4", e.player.Score)
	}
}

func TestMissedWindowIsNoOp(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, nil, midRoll) // source immediately reports a missed window

	before := e.Snapshot()
	rep := e.Step(context.Background())

	if rep.Moved || rep.Quit || rep.Help || rep.Message != "" {
		t.Error("missed window should produce an inert report")
	}
	after := e.Snapshot()
	if after.Turns != before.Turns || after.Score != before.Score ||
		after.PlayerX != before.PlayerX || after.PlayerY != before.PlayerY {
		t.Error("missed window must not mutate state")
	}
}

func TestHelpAndQuitCostNothing(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdHelp, CmdQuit}, midRoll)

	ctx := context.Background()

	rep := e.Step(ctx)
	if !rep.Help {
		t.Error("help command should be reported")
	}
	if e.turnCount != 0 {
		t.Errorf("turnCount = %d, want 0 (help costs no turn)", e.turnCount)
	}

	rep = e.Step(ctx)
	if !rep.Quit {
		t.Error("quit command should be reported")
	}
	if e.turnCount != 0 || e.player.Score != 0 {
		t.Error("quit must not finish the turn's scoring")
	}
}

func TestRevealedNeverShrinks(t *testing.T) {
	e := newTestEngine(t, []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	}, 1, 1, []Command{CmdRight, CmdRight, CmdDown, CmdLeft, CmdLeft, CmdUp}, midRoll)

	ctx := context.Background()
	prev := 0
	for i := 0; i < 8; i++ {
		e.Step(ctx)
		size := e.revealed.Size()
		if size < prev {
			t.Fatalf("revealed shrank from %d to %d on step %d", prev, size, i)
		}
		prev = size
	}
	if prev == 0 {
		t.Error("revealed set should grow as the player looks around")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		token string
		want  Command
		ok    bool
	}{
		{"up", CmdUp, true},
		{" DOWN ", CmdDown, true},
		{"left", CmdLeft, true},
		{"right", CmdRight, true},
		{"help", CmdHelp, true},
		{"quit", CmdQuit, true},
		{"jump", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCommand(tt.token)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCommand(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStartRetriesThenFallsBack(t *testing.T) {
	e := New(testConfig(), &scriptSource{}, rand.New(rand.NewSource(1)), gamedata.MustLoadMessages())

	calls := 0
	e.generate = func(ctx context.Context) (*world.Grid, world.Position, error) {
		calls++
		return nil, world.Position{}, errors.New("carving collapsed")
	}

	e.Start(context.Background())

	if calls != maxGenerationAttempts {
		t.Errorf("generation attempts = %d, want %d", calls, maxGenerationAttempts)
	}
	if !e.fallbackUsed {
		t.Error("fallback layout should be used after exhausting retries")
	}
	if e.grid == nil || !e.grid.BorderSealed() {
		t.Fatal("fallback grid should be walled and ready")
	}
	if e.outcome != Playing {
		t.Errorf("outcome = %v, want Playing", e.outcome)
	}
	if e.grid.At(e.player.X, e.player.Y) == world.CellWall {
		t.Error("player start must be walkable")
	}
	if e.player.Score != startingScore {
		t.Errorf("score = %d, want %d", e.player.Score, startingScore)
	}
}

func TestStartGeneratesPlayableState(t *testing.T) {
	e := New(testConfig(), &scriptSource{}, rand.New(rand.NewSource(99)), gamedata.MustLoadMessages())
	e.Start(context.Background())

	if e.fallbackUsed {
		t.Error("normal generation should not hit the fallback")
	}
	if e.outcome != Playing {
		t.Errorf("outcome = %v, want Playing", e.outcome)
	}
	if e.revealed.Size() != 0 {
		t.Error("revealed set should reset on Start")
	}
	if e.turnCount != 0 {
		t.Error("turn count should reset on Start")
	}
}

type countingView struct {
	renders int
	helps   int
}

func (v *countingView) Render(Snapshot, string) { v.renders++ }
func (v *countingView) ShowHelp()               { v.helps++ }

func TestRunUntilWon(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#.E.#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdHelp, CmdRight}, midRoll)
	e.player.HasTreasure = true

	view := &countingView{}
	result := e.Run(context.Background(), view)

	if result.Outcome != Won {
		t.Fatalf("Run() outcome = %v, want Won", result.Outcome)
	}
	if view.helps != 1 {
		t.Errorf("help screens = %d, want 1", view.helps)
	}
	if view.renders < 2 {
		t.Errorf("renders = %d, want at least 2", view.renders)
	}
	if result.Score != e.player.Score || result.Turns != e.turnCount {
		t.Error("Run() result should report the final score and turns")
	}
}

func TestRunQuitsImmediately(t *testing.T) {
	e := newTestEngine(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	}, 1, 1, []Command{CmdQuit}, midRoll)

	result := e.Run(context.Background(), &countingView{})

	if result.Outcome != Playing {
		t.Errorf("Run() outcome = %v, want Playing (quit is not a loss)", result.Outcome)
	}
	if result.Turns != 0 {
		t.Errorf("Run() turns = %d, want 0", result.Turns)
	}
}
