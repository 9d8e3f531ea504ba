package entity

import "testing"

func TestTakeDamageClampsAtZero(t *testing.T) {
	p := NewPlayer(2, 2)

	p.TakeDamage(1)
	if p.Health != DefaultMaxHealth-1 {
		t.Errorf("Health = %d, want %d", p.Health, DefaultMaxHealth-1)
	}

	p.TakeDamage(100)
	if p.Health != 0 {
		t.Errorf("Health = %d, want 0", p.Health)
	}
	if p.Alive() {
		t.Error("player with 0 health should not be alive")
	}
}

func TestHealClampsAtMax(t *testing.T) {
	p := NewPlayer(2, 2)
	p.TakeDamage(2)

	p.Heal(1)
	if p.Health != 2 {
		t.Errorf("Health = %d, want 2", p.Health)
	}

	p.Heal(100)
	if p.Health != p.MaxHealth {
		t.Errorf("Health = %d, want %d", p.Health, p.MaxHealth)
	}
}

func TestAddScoreFloorsAtZero(t *testing.T) {
	p := NewPlayer(2, 2)

	p.AddScore(50)
	if p.Score != 50 {
		t.Errorf("Score = %d, want 50", p.Score)
	}

	p.AddScore(-200)
	if p.Score != 0 {
		t.Errorf("Score = %d, want 0 (floored)", p.Score)
	}

	p.AddScore(5)
	if p.Score != 5 {
		t.Errorf("Score = %d, want 5", p.Score)
	}
}

func TestMoveTo(t *testing.T) {
	p := NewPlayer(2, 2)
	p.MoveTo(3, 7)
	if pos := p.Position(); pos.X != 3 || pos.Y != 7 {
		t.Errorf("Position() = %v, want (3,7)", pos)
	}
}
