// Package catalog holds the immutable enemy archetype and wave tables a
// session is built from. Tables are validated once at load time; after that
// the simulation only reads them.
package catalog

import "fmt"

// EnemyType is an enemy archetype.
// Name doubles as the sprite key; WeaponName derives the weapon key from it.
type EnemyType struct {
	Name          string  `yaml:"name" json:"name"`
	Shields       int     `yaml:"shields" json:"shields"`
	Speed         float64 `yaml:"speed" json:"speed"`
	PowerUpChance int     `yaml:"power_up_chance" json:"powerUpChance"`
}

// WeaponName returns the key of the weapon sprite this archetype fires.
func (t EnemyType) WeaponName() string {
	return t.Name + "Weapon"
}

// WaveEnemySpec is one scripted placement inside a wave.
type WaveEnemySpec struct {
	Position     int     `yaml:"position" json:"position"`           // index into the lane table
	XOffset      float64 `yaml:"x_offset" json:"xOffset"`            // multiplier of the base offset
	MoveStraight bool    `yaml:"move_straight" json:"moveStraight"` // false selects the curved path
}

// Wave is an ordered list of placements.
// An empty list means "procedural": one straight-flying enemy per lane.
type Wave struct {
	Name    string          `yaml:"name" json:"name"`
	Enemies []WaveEnemySpec `yaml:"enemies" json:"enemies"`
}

// Procedural reports whether the wave fills every lane instead of
// following a script.
func (w Wave) Procedural() bool {
	return len(w.Enemies) == 0
}

// EnemyTypeCatalog is an ordered, non-empty list of archetypes.
// Order matters: the difficulty pool is always a prefix of it.
type EnemyTypeCatalog struct {
	types []EnemyType
}

// NewEnemyTypeCatalog validates and wraps the archetype list.
func NewEnemyTypeCatalog(types []EnemyType) (*EnemyTypeCatalog, error) {
	if len(types) == 0 {
		return nil, ValidationError{Code: CodeEmptyCatalog, Message: "enemy type catalog has no entries"}
	}
	for i, t := range types {
		if err := validateEnemyType(i, t); err != nil {
			return nil, err
		}
	}
	out := make([]EnemyType, len(types))
	copy(out, types)
	return &EnemyTypeCatalog{types: out}, nil
}

func validateEnemyType(i int, t EnemyType) error {
	switch {
	case t.Name == "":
		return ValidationError{Code: CodeInvalidName, Message: fmt.Sprintf("enemy type %d: name is required", i)}
	case t.Shields <= 0:
		return ValidationError{Code: CodeInvalidShields, Message: fmt.Sprintf("enemy type %q: shields must be positive, got %d", t.Name, t.Shields)}
	case t.Speed <= 0:
		return ValidationError{Code: CodeInvalidSpeed, Message: fmt.Sprintf("enemy type %q: speed must be positive, got %v", t.Name, t.Speed)}
	case t.PowerUpChance < 0 || t.PowerUpChance > 100:
		return ValidationError{Code: CodeInvalidPowerUpChance, Message: fmt.Sprintf("enemy type %q: power up chance must be between 0 and 100, got %d", t.Name, t.PowerUpChance)}
	}
	return nil
}

// Len returns the number of archetypes.
func (c *EnemyTypeCatalog) Len() int {
	return len(c.types)
}

// At returns the archetype at index i. Callers keep i in range.
func (c *EnemyTypeCatalog) At(i int) EnemyType {
	return c.types[i]
}

// All returns a copy of the archetype list.
func (c *EnemyTypeCatalog) All() []EnemyType {
	out := make([]EnemyType, len(c.types))
	copy(out, c.types)
	return out
}

// WaveCatalog is an ordered, non-empty list of waves whose scripted lane
// indices have been checked against the lane table.
type WaveCatalog struct {
	waves []Wave
}

// NewWaveCatalog validates every scripted position against laneCount.
func NewWaveCatalog(waves []Wave, laneCount int) (*WaveCatalog, error) {
	if laneCount <= 0 {
		return nil, ValidationError{Code: CodeEmptyLanes, Message: "lane table is empty"}
	}
	if len(waves) == 0 {
		return nil, ValidationError{Code: CodeEmptyCatalog, Message: "wave catalog has no entries"}
	}
	for i, w := range waves {
		for j, spec := range w.Enemies {
			if spec.Position < 0 || spec.Position >= laneCount {
				return nil, ValidationError{
					Code:    CodeLaneOutOfRange,
					Message: fmt.Sprintf("wave %d, enemy %d: position must be between 0 and %d, got %d", i, j, laneCount-1, spec.Position),
				}
			}
		}
	}
	out := make([]Wave, len(waves))
	for i, w := range waves {
		out[i] = Wave{Name: w.Name, Enemies: append([]WaveEnemySpec(nil), w.Enemies...)}
	}
	return &WaveCatalog{waves: out}, nil
}

// CheckLanes re-validates scripted positions against a lane table that may
// differ from the one the catalog was loaded with.
func (c *WaveCatalog) CheckLanes(laneCount int) error {
	_, err := NewWaveCatalog(c.waves, laneCount)
	return err
}

// Len returns the number of waves.
func (c *WaveCatalog) Len() int {
	return len(c.waves)
}

// At returns the wave at index i. Callers keep i in range.
func (c *WaveCatalog) At(i int) Wave {
	return c.waves[i]
}

// Catalogs bundles both tables for a session.
type Catalogs struct {
	EnemyTypes *EnemyTypeCatalog
	Waves      *WaveCatalog
}
