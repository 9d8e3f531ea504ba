package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"

	"treasurehunter/internal/game"
)

const logo = `
 _____                                  _   _             _
|_   _| __ ___  __ _ ___ _   _ _ __ ___| | | |_   _ _ __ | |_ ___ _ __
  | || '__/ _ \/ _' / __| | | | '__/ _ \ |_| | | | | '_ \| __/ _ \ '__|
  | || | |  __/ (_| \__ \ |_| | | |  __/  _  | |_| | | | | ||  __/ |
  |_||_|  \___|\__,_|___/\__,_|_|  \___|_| |_|\__,_|_| |_|\__\___|_|
`

// Intro prints the title card before the terminal screen takes over.
func Intro() {
	color.Yellow.Println(logo)
	color.Cyan.Println("You are an adventurous explorer searching for the legendary lost treasure.")
	color.Cyan.Println("Explore the dungeon, grab the treasure, and make it to the exit alive!")
	fmt.Println()
	color.Yellow.Println("Controls: W/A/S/D or arrows to move, H for help, Q to quit.")
	fmt.Println()
}

// Summary prints the end-of-game report after the terminal screen is
// restored.
func Summary(result game.Result) {
	fmt.Println()
	switch result.Outcome {
	case game.Won:
		color.Green.Println("Congratulations! You escaped with the treasure!")
	case game.Lost:
		color.Red.Println("You failed in your quest!")
	default:
		color.Yellow.Println("Thanks for playing Treasure Hunter!")
	}
	color.Yellow.Printf("Final Score: %d\n", result.Score)
	color.Yellow.Printf("Turns Taken: %d\n", result.Turns)
}

// AskReplay prompts on stdin for another round.
func AskReplay() bool {
	fmt.Println()
	color.Cyan.Print("Would you like to play again? (y/n): ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
