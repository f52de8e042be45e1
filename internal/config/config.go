// Package config provides YAML-based configuration loading and difficulty
// presets for the shooter.
package config

import (
	"errors"
	"fmt"
)

// ShooterConfig contains all tunables for a Zaptastic session.
// Distances are world units, times are seconds.
type ShooterConfig struct {
	Playfield ShooterPlayfield `yaml:"playfield"`
	Player    ShooterPlayer    `yaml:"player"`
	Enemies   ShooterEnemies   `yaml:"enemies"`
	Lanes     []float64        `yaml:"lanes"` // lane y positions, bottom to top
	Catalogs  ShooterCatalogs  `yaml:"catalogs"`
	Scoring   ShooterScoring   `yaml:"scoring"`
}

// ShooterPlayfield is the visible world rectangle. Origin is its center.
type ShooterPlayfield struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// ShooterPlayer defines the player ship and its weapon.
type ShooterPlayer struct {
	Inset        float64 `yaml:"inset"`   // distance from the left edge
	Shields      int     `yaml:"shields"` // starting shields
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TiltStep     float64 `yaml:"tilt_step"`    // vertical displacement per steer input
	WeaponSpeed  float64 `yaml:"weapon_speed"` // units per second, rightwards
	WeaponWidth  float64 `yaml:"weapon_width"`
	WeaponHeight float64 `yaml:"weapon_height"`
	StartLevel   int     `yaml:"start_level"`   // initial progression level
	FireCooldown float64 `yaml:"fire_cooldown"` // minimum seconds between player shots
}

// ShooterEnemies defines spawn geometry, paths and enemy weapons.
type ShooterEnemies struct {
	StartX         float64 `yaml:"start_x"`     // spawn x before offsets
	BaseOffset     float64 `yaml:"base_offset"` // x offset unit for wave layouts
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	StraightEndX   float64 `yaml:"straight_end_x"` // path end, relative to spawn
	CurveEndX      float64 `yaml:"curve_end_x"`    // curved path end, relative to spawn
	CurveControlX  float64 `yaml:"curve_control_x"`
	FireCooldown   float64 `yaml:"fire_cooldown"` // seconds between fire attempts
	FireOdds       int     `yaml:"fire_odds"`     // an attempt fires with chance 1/fire_odds
	WeaponSpeed    float64 `yaml:"weapon_speed"`
	WeaponWidth    float64 `yaml:"weapon_width"`
	WeaponHeight   float64 `yaml:"weapon_height"`
	PathResolution int     `yaml:"path_resolution"` // samples used to flatten curved paths
}

// ShooterCatalogs points at external archetype and wave tables.
// Empty paths use the embedded tables.
type ShooterCatalogs struct {
	EnemyTypes string `yaml:"enemy_types"`
	Waves      string `yaml:"waves"`
}

// ShooterScoring defines how kills turn into points.
type ShooterScoring struct {
	PointsPerShield int `yaml:"points_per_shield"`
}

// Validate rejects configurations the simulation cannot run with.
func (c ShooterConfig) Validate() error {
	var errs []error
	if c.Playfield.MinX >= c.Playfield.MaxX || c.Playfield.MinY >= c.Playfield.MaxY {
		errs = append(errs, fmt.Errorf("playfield bounds are inverted: x [%v, %v], y [%v, %v]",
			c.Playfield.MinX, c.Playfield.MaxX, c.Playfield.MinY, c.Playfield.MaxY))
	}
	if len(c.Lanes) == 0 {
		errs = append(errs, errors.New("lanes: at least one lane is required"))
	}
	if c.Player.Shields <= 0 {
		errs = append(errs, fmt.Errorf("player.shields must be positive, got %d", c.Player.Shields))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Enemies.Width <= 0 || c.Enemies.Height <= 0 {
		errs = append(errs, errors.New("actor sizes must be positive"))
	}
	if c.Player.WeaponWidth <= 0 || c.Player.WeaponHeight <= 0 || c.Enemies.WeaponWidth <= 0 || c.Enemies.WeaponHeight <= 0 {
		errs = append(errs, errors.New("weapon sizes must be positive"))
	}
	if c.Enemies.FireOdds <= 0 {
		errs = append(errs, fmt.Errorf("enemies.fire_odds must be positive, got %d", c.Enemies.FireOdds))
	}
	if c.Enemies.PathResolution < 2 {
		errs = append(errs, fmt.Errorf("enemies.path_resolution must be at least 2, got %d", c.Enemies.PathResolution))
	}
	if c.Player.StartLevel < 0 {
		errs = append(errs, fmt.Errorf("player.start_level cannot be negative, got %d", c.Player.StartLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
