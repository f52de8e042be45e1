package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value to a preset. Empty means "none".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (expected easy, normal or hard)", s)
	}
}

// ApplyShooterPreset adjusts the player's starting shields and the initial
// progression level. Level scaling itself comes from wave cycling.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Shields = 15
		cfg.Player.StartLevel = 0
	case DifficultyNormal:
		cfg.Player.Shields = 10
		cfg.Player.StartLevel = 0
	case DifficultyHard:
		cfg.Player.Shields = 5
		cfg.Player.StartLevel = 2
	}
}
