package game

import "strings"

// Command is a normalized lowercase token consumed by the engine, one per
// turn. Mapping raw key presses to tokens is the input collaborator's job.
type Command string

const (
	CmdUp    Command = "up"
	CmdDown  Command = "down"
	CmdLeft  Command = "left"
	CmdRight Command = "right"
	CmdHelp  Command = "help"
	CmdQuit  Command = "quit"
)

// ParseCommand normalizes a raw token. Unrecognized tokens return false and
// must be treated as no-ops.
func ParseCommand(token string) (Command, bool) {
	switch Command(strings.ToLower(strings.TrimSpace(token))) {
	case CmdUp:
		return CmdUp, true
	case CmdDown:
		return CmdDown, true
	case CmdLeft:
		return CmdLeft, true
	case CmdRight:
		return CmdRight, true
	case CmdHelp:
		return CmdHelp, true
	case CmdQuit:
		return CmdQuit, true
	default:
		return "", false
	}
}

// Delta returns the unit movement vector for a movement command.
// Non-movement commands return ok=false.
func (c Command) Delta() (dx, dy int, ok bool) {
	switch c {
	case CmdUp:
		return 0, -1, true
	case CmdDown:
		return 0, 1, true
	case CmdLeft:
		return -1, 0, true
	case CmdRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}
