// Package main is the entry point for Treasure Hunter.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"treasurehunter/internal/game"
	"treasurehunter/internal/gamedata"
	"treasurehunter/internal/telemetry"
	"treasurehunter/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_TREASUREHUNTER_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	messages, err := gamedata.LoadMessages()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	ui.Intro()

	for {
		result, err := playRound(ctx, cfg, rng, messages)
		if err != nil {
			log.Fatalf("Failed to initialize game: %v", err)
		}
		ui.Summary(result)
		if !ui.AskReplay() {
			break
		}
	}
}

// playRound runs one full game on a fresh terminal screen and returns the
// final result after the terminal has been restored.
func playRound(ctx context.Context, cfg game.Config, rng *rand.Rand, messages *gamedata.Messages) (game.Result, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return game.Result{}, err
	}
	defer screen.Close()

	input := ui.NewInput(screen, cfg.InputWindow)
	defer input.Close()

	engine := game.New(cfg, input, rng, messages)
	engine.Start(ctx)
	return engine.Run(ctx, ui.NewRenderer(screen)), nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_TREASUREHUNTER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_TREASUREHUNTER_DATASET")
	if dataset == "" {
		dataset = "treasurehunter" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
