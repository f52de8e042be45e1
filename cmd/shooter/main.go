// shooter plays Zaptastic, a side-scrolling space shooter, in the terminal.
//
// Usage:
//
//	shooter list              - List available games
//	shooter play              - Play in this terminal
//	shooter serve             - Start SSH server for remote play
//	shooter scores            - Show high scores and recent runs
//	shooter sim               - Run a headless autopilot session
//	shooter validate          - Check config and catalog files
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.shooter/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/games/zaptastic"
)

const gameID = "zaptastic"

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string

	// Game data flags shared by play, serve, sim and validate
	flagConfig     string
	flagEnemyTypes string
	flagWaves      string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "Zaptastic - a side-scrolling shooter in your terminal",
	Long: `Zaptastic sends waves of enemy ships across the screen. Steer your ship
up and down, shoot them down, and dodge their fire.

Available commands:
  list      - Show available games
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  sim       - Run a headless autopilot session
  validate  - Check config and catalog files

Examples:
  shooter play
  shooter play --difficulty hard
  shooter serve --ssh :2222
  shooter sim --frames 3600 --seed 7 --trace run.msgpack`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.shooter/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(validateCmd)
}

// addGameDataFlags registers the flags that pick config, catalogs and difficulty.
func addGameDataFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagEnemyTypes, "enemy-types", "", "Path to enemy type table (.yaml or .json)")
	cmd.Flags().StringVar(&flagWaves, "waves", "", "Path to wave table (.yaml or .json)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// applyGameData hands the game data flags to the game package.
func applyGameData() {
	zaptastic.SetConfigPath(flagConfig)
	zaptastic.SetCatalogPaths(flagEnemyTypes, flagWaves)
	zaptastic.SetDifficultyPreset(flagDifficulty)
}
