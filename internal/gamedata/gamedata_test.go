package gamedata

import (
	"math/rand"
	"testing"
)

func TestLoadMessages(t *testing.T) {
	messages, err := LoadMessages()
	if err != nil {
		t.Fatalf("LoadMessages() error: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	if msg := messages.Trap(rng); msg == "" {
		t.Error("Trap() returned an empty message")
	}
	if msg := messages.Monster(rng); msg == "" {
		t.Error("Monster() returned an empty message")
	}
}

func TestMessagesDrawFromPool(t *testing.T) {
	messages := MustLoadMessages()
	rng := rand.New(rand.NewSource(42))

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[messages.Trap(rng)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected multiple distinct trap messages, got %d", len(seen))
	}

	for msg := range seen {
		if msg == "" {
			t.Error("trap pool contains an empty message")
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[MessagesFile]("nope.json"); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}
