package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"treasurehunter/internal/game"
)

// Input maps raw terminal key events to engine commands. It implements
// game.CommandSource: each call waits up to the configured window for a
// recognized key and reports a miss otherwise.
type Input struct {
	screen *Screen
	events chan tcell.Event
	done   chan struct{}
	window time.Duration
}

// NewInput starts forwarding events from the screen.
func NewInput(screen *Screen, window time.Duration) *Input {
	in := &Input{
		screen: screen,
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
		window: window,
	}
	go screen.ChannelEvents(in.events, in.done)
	return in
}

// Close stops event forwarding.
func (in *Input) Close() {
	close(in.done)
}

// Next returns the next command, or false if the wait window elapsed.
// Unrecognized keys are ignored and do not consume the window.
func (in *Input) Next(ctx context.Context) (game.Command, bool) {
	timer := time.NewTimer(in.window)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return game.CmdQuit, true
		case <-timer.C:
			return "", false
		case ev, open := <-in.events:
			if !open {
				return game.CmdQuit, true
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if cmd, ok := keyCommand(ev); ok {
					return cmd, true
				}
			case *tcell.EventResize:
				in.screen.Sync()
			}
		}
	}
}

// keyCommand maps w/a/s/d/h/q and the arrow keys onto command tokens.
func keyCommand(ev *tcell.EventKey) (game.Command, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.CmdUp, true
	case tcell.KeyDown:
		return game.CmdDown, true
	case tcell.KeyLeft:
		return game.CmdLeft, true
	case tcell.KeyRight:
		return game.CmdRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CmdQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.CmdUp, true
		case 's', 'S':
			return game.CmdDown, true
		case 'a', 'A':
			return game.CmdLeft, true
		case 'd', 'D':
			return game.CmdRight, true
		case 'h', 'H':
			return game.CmdHelp, true
		case 'q', 'Q':
			return game.CmdQuit, true
		}
	}
	return "", false
}
