package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const shooterFile = "zaptastic.yaml"

// LoadShooter loads the shooter configuration.
// Search order: customPath -> ~/.shooter/configs/zaptastic.yaml ->
// ./configs/zaptastic.yaml -> embedded default -> DefaultShooterConfig.
// Every YAML source is decoded over the hard-coded defaults, so a file only
// needs to name the keys it changes.
func LoadShooter(customPath string) (ShooterConfig, error) {
	if customPath != "" {
		cfg := DefaultShooterConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(shooterFile), filepath.Join("configs", shooterFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, ok := decode(data); ok {
			return cfg, nil
		}
	}

	if cfg, ok := decode(defaultShooterYAML); ok {
		return cfg, nil
	}
	return DefaultShooterConfig(), nil
}

// decode parses data over the defaults and reports whether the result is usable.
func decode(data []byte) (ShooterConfig, bool) {
	cfg := DefaultShooterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shooter", "configs", filename)
}
