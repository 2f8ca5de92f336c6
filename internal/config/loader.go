package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "blockslide.yaml"

// LoadBlockslide loads the puzzle configuration.
// Search order: customPath -> ~/.blockslide/configs/blockslide.yaml -> ./configs/blockslide.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadBlockslide(customPath string) (BlockslideConfig, error) {
	cfg := DefaultBlockslideConfig()

	// Try custom path first
	if customPath != "" {
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

	// Try user config directory, then local configs directory
	for _, p := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if p == "" {
			continue
		}
		if loaded, ok := tryLoad(p); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBlockslideYAML, &cfg); err != nil {
		return DefaultBlockslideConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file; unreadable or invalid files are skipped.
func tryLoad(p string) (BlockslideConfig, bool) {
	data, err := os.ReadFile(p)
	if err != nil {
		return BlockslideConfig{}, false
	}
	cfg := DefaultBlockslideConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockslideConfig{}, false
	}
	if cfg.Validate() != nil {
		return BlockslideConfig{}, false
	}
	return cfg, true
}

// DataDir returns ~/.blockslide, or empty if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockslide")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
