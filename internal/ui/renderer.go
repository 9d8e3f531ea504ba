package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"treasurehunter/internal/game"
	"treasurehunter/internal/world"
)

const (
	// Rows above the dungeon viewport: title and status bar.
	gridTop = 2

	helpDisplayTime = 3 * time.Second
)

// Renderer draws the fog-of-war dungeon view and implements game.View.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the dungeon, player overlay, status bar and event message.
// Cells outside the revealed set stay dark.
func (r *Renderer) Render(snap game.Snapshot, message string) {
	r.screen.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.drawText(0, 0, "TREASURE HUNTER", title)

	status := fmt.Sprintf("Score: %d  |  Health: %s  |  Turns: %d",
		snap.Score, strings.Repeat("*", snap.Health)+strings.Repeat("-", snap.MaxHealth-snap.Health), snap.Turns)
	r.drawText(0, 1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	if snap.Grid != nil {
		for y := 0; y < snap.Grid.Height; y++ {
			for x := 0; x < snap.Grid.Width; x++ {
				switch {
				case x == snap.PlayerX && y == snap.PlayerY:
					r.screen.SetContent(x, y+gridTop, '@',
						tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
				case snap.Revealed.Has(world.Position{X: x, Y: y}):
					kind := snap.Grid.At(x, y)
					r.screen.SetContent(x, y+gridTop, kind.Rune(), cellStyle(kind))
				}
			}
		}
	}

	bottom := gridTop
	if snap.Grid != nil {
		bottom += snap.Grid.Height
	}
	r.drawText(0, bottom+1, message, tcell.StyleDefault.Foreground(tcell.ColorAqua))
	r.drawText(0, bottom+3, "W/A/S/D or arrows = move, H = help, Q = quit",
		tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// ShowHelp overlays the help screen for a few seconds, then returns to the
// game. It costs no turn.
func (r *Renderer) ShowHelp() {
	r.screen.Clear()

	lines := []string{
		"TREASURE HUNTER - HELP",
		"",
		"Goal: find the treasure ($) and reach the exit (E) without dying.",
		"",
		"Controls:",
		"  W or Up     move up",
		"  A or Left   move left",
		"  S or Down   move down",
		"  D or Right  move right",
		"  H           this help screen",
		"  Q           quit",
		"",
		"Symbols:",
		"  @  you",
		"  $  treasure",
		"  T  trap (costs 1 health)",
		"  M  monster (costs 1 health unless dodged)",
		"  E  exit (escape with the treasure to win)",
		"  #  wall",
		"  .  open floor",
		"",
		"The fewer turns you take, the higher your score.",
	}
	for i, line := range lines {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if i == 0 {
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
		}
		r.drawText(0, i, line, style)
	}
	r.screen.Show()

	time.Sleep(helpDisplayTime)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// cellStyle returns the color for a revealed cell kind.
func cellStyle(kind world.CellKind) tcell.Style {
	switch kind {
	case world.CellWall, world.CellEmpty:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.CellTrap, world.CellMonster:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case world.CellTreasure:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.CellExit:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault
	}
}
