package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/enemy-types.yaml
var defaultEnemyTypesYAML []byte

//go:embed defaults/waves.yaml
var defaultWavesYAML []byte

// Load reads both tables and validates them against the lane table size.
// An empty path selects the embedded default table.
func Load(enemyTypesPath, wavesPath string, laneCount int) (Catalogs, error) {
	types, err := LoadEnemyTypes(enemyTypesPath)
	if err != nil {
		return Catalogs{}, err
	}
	waves, err := LoadWaves(wavesPath)
	if err != nil {
		return Catalogs{}, err
	}

	typeCat, err := NewEnemyTypeCatalog(types)
	if err != nil {
		return Catalogs{}, fmt.Errorf("catalog: enemy types %s: %w", describe(enemyTypesPath), err)
	}
	waveCat, err := NewWaveCatalog(waves, laneCount)
	if err != nil {
		return Catalogs{}, fmt.Errorf("catalog: waves %s: %w", describe(wavesPath), err)
	}

	return Catalogs{EnemyTypes: typeCat, Waves: waveCat}, nil
}

// Default returns the embedded tables validated against laneCount.
func Default(laneCount int) (Catalogs, error) {
	return Load("", "", laneCount)
}

// LoadEnemyTypes reads an archetype table from path, or the embedded
// default when path is empty.
func LoadEnemyTypes(path string) ([]EnemyType, error) {
	if path == "" {
		return ParseEnemyTypes(defaultEnemyTypesYAML, ".yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	types, err := ParseEnemyTypes(data, extension(path))
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return types, nil
}

// LoadWaves reads a wave table from path, or the embedded default when
// path is empty.
func LoadWaves(path string) ([]Wave, error) {
	if path == "" {
		return ParseWaves(defaultWavesYAML, ".yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	waves, err := ParseWaves(data, extension(path))
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return waves, nil
}

// ParseEnemyTypes decodes a top-level list of archetypes.
func ParseEnemyTypes(data []byte, ext string) ([]EnemyType, error) {
	var types []EnemyType
	if err := decodeByExtension(data, ext, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// ParseWaves decodes a top-level list of waves.
func ParseWaves(data []byte, ext string) ([]Wave, error) {
	var waves []Wave
	if err := decodeByExtension(data, ext, &waves); err != nil {
		return nil, err
	}
	return waves, nil
}

// decodeByExtension routes to the decoder for the file format.
func decodeByExtension(data []byte, ext string, out any) error {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	case ".json":
		return json.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported extension: %q", ext)
	}
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func describe(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}
