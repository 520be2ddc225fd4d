package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SimFileName is the config file name looked up in the search directories.
const SimFileName = "sim.yaml"

// LoadSim loads simulation configuration.
// Search order: customPath -> ~/.pinball/configs/sim.yaml -> ./configs/sim.yaml -> embedded default
//
// Files are decoded over DefaultSimConfig, so a file only needs the keys it
// changes.
func LoadSim(customPath string) (SimConfig, error) {
	cfg := DefaultSimConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(SimFileName); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", SimFileName)); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	embedded := DefaultSimConfig()
	if err := yaml.Unmarshal(defaultSimYAML, &embedded); err != nil {
		return DefaultSimConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Missing, unparsable and invalid
// files are skipped.
func tryLoad(path string) (SimConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SimConfig{}, false
	}
	cfg := DefaultSimConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SimConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return SimConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pinball", "configs", filename)
}

// Write stores cfg as YAML at path, creating parent directories.
func Write(path string, cfg SimConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- config is not secret
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
