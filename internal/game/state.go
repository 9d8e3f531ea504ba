// Package game provides the turn engine and game state management.
package game

// Outcome represents the current game outcome.
type Outcome int

const (
	// Playing is the initial, non-terminal outcome.
	Playing Outcome = iota
	// Won is terminal: the player reached the exit carrying the treasure.
	Won
	// Lost is terminal: the player's health reached zero.
	Lost
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal returns true once the game can accept no further turns.
func (o Outcome) Terminal() bool {
	return o == Won || o == Lost
}
