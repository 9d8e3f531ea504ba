package platform

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"treasurehunter/internal/telemetry"
	"treasurehunter/internal/ui"
)

const (
	frameRate    = 15
	coinPoints   = 10
	pickupRadius = 2.0
)

// State is the platformer's run state.
type State int

const (
	StatePlaying State = iota
	StateGameOver
	StateWon
)

// Game runs the platformer's fixed-rate frame loop.
type Game struct {
	screen   *ui.Screen
	level    *Level
	levelNum int
	player   *Player
	score    int
	state    State

	events chan tcell.Event
	done   chan struct{}
}

// New creates a platformer game on a fresh terminal screen.
func New() (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := &Game{
		screen: screen,
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
	}
	go screen.ChannelEvents(g.events, g.done)

	if err := g.loadLevel(1); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) loadLevel(n int) error {
	level, err := LoadLevel(n)
	if err != nil {
		return err
	}
	g.level = level
	g.levelNum = n
	g.player = NewPlayer(level.Start.X, level.Start.Y)
	return nil
}

// Run executes the frame loop until the player quits or the context ends.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("platform")
	ctx, span := tracer.Start(ctx, "platform.run")
	defer span.End()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	running := true
	for running {
		select {
		case <-ctx.Done():
			running = false
		case <-ticker.C:
			running = g.handleInput()
			if g.state == StatePlaying {
				g.update()
			}
			g.render()
		}
	}

	span.SetAttributes(
		attribute.Int("platform.score", g.score),
		attribute.Int("platform.level", g.levelNum),
	)
	return nil
}

// handleInput drains pending key events. Returns false when the player quits.
func (g *Game) handleInput() bool {
	for {
		select {
		case ev := <-g.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.handleKey(ev) {
					return false
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
		default:
			return true
		}
	}
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		g.player.MoveLeft()
	case tcell.KeyRight:
		g.player.MoveRight()
	case tcell.KeyUp:
		g.player.Jump()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'a', 'A':
			g.player.MoveLeft()
		case 'd', 'D':
			g.player.MoveRight()
		case 'w', 'W', ' ':
			g.player.Jump()
		case 'r', 'R':
			if g.state != StatePlaying {
				g.restart()
			}
		}
	}
	return true
}

func (g *Game) restart() {
	g.score = 0
	g.state = StatePlaying
	if err := g.loadLevel(1); err != nil {
		g.state = StateGameOver
	}
}

// update advances one frame: physics, pickups, hazards, level completion.
func (g *Game) update() {
	g.player.Update(g.level)

	for i := len(g.level.Coins) - 1; i >= 0; i-- {
		if g.near(g.level.Coins[i]) {
			g.level.RemoveCoin(i)
			g.score += coinPoints
		}
	}

	for _, obstacle := range g.level.Obstacles {
		if g.near(obstacle) {
			g.state = StateGameOver
			return
		}
	}

	if g.player.Y >= float64(g.level.Height-1) {
		g.state = StateGameOver
		return
	}

	if len(g.level.Coins) == 0 {
		if g.levelNum < LevelCount() {
			if err := g.loadLevel(g.levelNum + 1); err != nil {
				g.state = StateWon
			}
		} else {
			g.state = StateWon
		}
	}
}

// near reports whether the player is within pickup range of the point.
func (g *Game) near(pt Point) bool {
	return math.Abs(g.player.X-float64(pt.X)) < pickupRadius &&
		math.Abs(g.player.Y-float64(pt.Y)) < pickupRadius
}

func (g *Game) render() {
	g.screen.Clear()

	header := fmt.Sprintf("Level %d  Score: %d", g.levelNum, g.score)
	g.drawText(0, 0, header, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	groundStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, plat := range g.level.Platforms {
		for i := 0; i < plat.Width; i++ {
			g.screen.SetContent(plat.X+i, plat.Y+1, '=', groundStyle)
		}
	}
	for _, coin := range g.level.Coins {
		g.screen.SetContent(coin.X, coin.Y+1, 'o', tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	for _, obstacle := range g.level.Obstacles {
		g.screen.SetContent(obstacle.X, obstacle.Y+1, 'X', tcell.StyleDefault.Foreground(tcell.ColorRed))
	}

	cell := g.player.Cell()
	g.screen.SetContent(cell.X, cell.Y+1, '@', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	switch g.state {
	case StateGameOver:
		g.drawText(0, g.level.Height+2, "GAME OVER - R to restart, Q to quit",
			tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	case StateWon:
		g.drawText(0, g.level.Height+2, "YOU WIN! - R to restart, Q to quit",
			tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true))
	}

	g.screen.Show()
}

func (g *Game) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		g.screen.SetContent(x+i, y, ch, style)
	}
}

// Close releases the terminal.
func (g *Game) Close() {
	close(g.done)
	g.screen.Close()
}
