package config

import (
	_ "embed"
)

//go:embed defaults/zaptastic.yaml
var defaultShooterYAML []byte

// DefaultLanes returns the nine lane y positions from -320 to 320.
func DefaultLanes() []float64 {
	lanes := make([]float64, 0, 9)
	for y := -320.0; y <= 320; y += 80 {
		lanes = append(lanes, y)
	}
	return lanes
}

// DefaultShooterConfig returns the hard-coded configuration used when no
// YAML source can be read.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Playfield: ShooterPlayfield{
			MinX: -512,
			MaxX: 512,
			MinY: -384,
			MaxY: 384,
		},
		Player: ShooterPlayer{
			Inset:        75,
			Shields:      10,
			Width:        64,
			Height:       40,
			TiltStep:     50,
			WeaponSpeed:  480,
			WeaponWidth:  32,
			WeaponHeight: 8,
			StartLevel:   0,
			FireCooldown: 0.25,
		},
		Enemies: ShooterEnemies{
			StartX:         600,
			BaseOffset:     100,
			Width:          64,
			Height:         48,
			StraightEndX:   -10000,
			CurveEndX:      -3500,
			CurveControlX:  -1000,
			FireCooldown:   1.0,
			FireOdds:       7,
			WeaponSpeed:    420,
			WeaponWidth:    24,
			WeaponHeight:   8,
			PathResolution: 64,
		},
		Lanes: DefaultLanes(),
		Scoring: ShooterScoring{
			PointsPerShield: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for the shooter.
func GetDefaultYAML() []byte {
	return defaultShooterYAML
}
