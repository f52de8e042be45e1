package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/zaptastic"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Zaptastic",
	Long: `Start a game in this terminal.

Controls:
  W/Up/K     - Steer up
  S/Down/J   - Steer down
  Space/F    - Fire
  P/Esc      - Pause
  B          - Leave (when paused or after game over)
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 15 shields
  normal - 10 shields
  hard   - 5 shields, enemy waves start at level 2

Examples:
  shooter play
  shooter play --difficulty hard
  shooter play --waves ./waves.json --enemy-types ./enemy-types.json
  shooter play --config ./my-zaptastic.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameDataFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyGameData()

	// Report broken game data before taking over the terminal.
	if _, _, err := zaptastic.Prepare(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game data: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	model := tui.NewModel(zaptastic.New(), store, cfg).WithRunInfo(tui.RunInfo{
		Source:     storage.SourceTerminal,
		Difficulty: flagDifficulty,
	})
	runErr := tui.Run(model)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
