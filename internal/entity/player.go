// Package entity provides the player character state.
package entity

import "treasurehunter/internal/world"

const (
	// DefaultMaxHealth is the player's starting and maximum health.
	DefaultMaxHealth = 3
	// DefaultViewDistance is the radius of the player's vision.
	DefaultViewDistance = 3
)

// Player tracks the adventurer's position, health, score and treasure flag.
// HasTreasure is monotonic: once set it is never cleared mid-game.
type Player struct {
	X, Y         int
	MaxHealth    int
	Health       int
	HasTreasure  bool
	Score        int
	ViewDistance int
}

// NewPlayer creates a player at the given position with full health.
func NewPlayer(x, y int) *Player {
	return &Player{
		X:            x,
		Y:            y,
		MaxHealth:    DefaultMaxHealth,
		Health:       DefaultMaxHealth,
		ViewDistance: DefaultViewDistance,
	}
}

// Position returns the player's current grid coordinate.
func (p *Player) Position() world.Position {
	return world.Position{X: p.X, Y: p.Y}
}

// MoveTo commits the player to a new position.
func (p *Player) MoveTo(x, y int) {
	p.X = x
	p.Y = y
}

// TakeDamage reduces health, clamping at zero.
func (p *Player) TakeDamage(amount int) {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

// Heal restores health, clamping at MaxHealth.
func (p *Player) Heal(amount int) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// Alive returns true if the player has health remaining.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// AddScore adjusts the score. Decrements floor at zero; increments are
// unbounded.
func (p *Player) AddScore(delta int) {
	p.Score += delta
	if p.Score < 0 {
		p.Score = 0
	}
}
