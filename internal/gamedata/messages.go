package gamedata

import (
	"errors"
	"math/rand"
)

// MessagesFile represents the structure of messages.json.
type MessagesFile struct {
	Trap    []string `json:"trap"`    // Flavor text for triggering a trap
	Monster []string `json:"monster"` // Flavor text for a monster attack
}

// Messages hands out random flavor text for gameplay events.
type Messages struct {
	trap    []string
	monster []string
}

// LoadMessages loads the flavor-message pools from the embedded messages.json.
func LoadMessages() (*Messages, error) {
	file, err := Load[MessagesFile]("messages.json")
	if err != nil {
		return nil, err
	}
	if len(file.Trap) == 0 || len(file.Monster) == 0 {
		return nil, errors.New("messages.json is missing trap or monster messages")
	}
	return &Messages{trap: file.Trap, monster: file.Monster}, nil
}

// MustLoadMessages loads the message pools, panicking on error.
func MustLoadMessages() *Messages {
	messages, err := LoadMessages()
	if err != nil {
		panic(err)
	}
	return messages
}

// Trap returns a random trap message.
func (m *Messages) Trap(rng *rand.Rand) string {
	return m.trap[rng.Intn(len(m.trap))]
}

// Monster returns a random monster-attack message.
func (m *Messages) Monster(rng *rand.Rand) string {
	return m.monster[rng.Intn(len(m.monster))]
}
