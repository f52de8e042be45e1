package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/games/zaptastic"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check config and catalog files",
	Long: `Load the config, enemy type table and wave table the same way 'play'
does and report the first problem found.

Examples:
  shooter validate
  shooter validate --waves ./waves.json --enemy-types ./enemy-types.json`,
	Args: cobra.NoArgs,
	Run:  runValidate,
}

func init() {
	addGameDataFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyGameData()

	cfg, cats, err := zaptastic.Prepare()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}
	if _, err := zaptastic.NewSimulation(cfg, cats, zaptastic.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("OK")
	fmt.Printf("  enemy types: %d\n", cats.EnemyTypes.Len())
	fmt.Printf("  waves:       %d\n", cats.Waves.Len())
	fmt.Printf("  lanes:       %d\n", len(cfg.Lanes))
	fmt.Printf("  shields:     %d\n", cfg.Player.Shields)
}
