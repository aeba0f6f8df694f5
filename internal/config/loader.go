package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "marbles.yaml"

// Load loads the Marbles configuration.
// Search order: customPath -> ~/.marbles/configs/marbles.yaml -> ./configs/marbles.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes. Only a custom path that cannot be read or parsed is an error.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		sanitize(&cfg)
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", configFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultMarblesYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	sanitize(&cfg)
	return cfg, nil
}

func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	sanitize(&cfg)
	return cfg, true
}

// sanitize resets out-of-range values decoded from a file to their
// defaults, the same way ApplyLookup treats malformed overrides.
func sanitize(cfg *Config) {
	def := DefaultConfig()
	prob := func(p *float64, d float64) {
		if *p < 0 || *p > 1 {
			*p = d
		}
	}
	count := func(n *int, d int) {
		if *n < 0 {
			*n = d
		}
	}

	prob(&cfg.Nexus.JokerProbability, def.Nexus.JokerProbability)
	prob(&cfg.PowerUps.BonusProbability, def.PowerUps.BonusProbability)
	prob(&cfg.PowerUps.JokerProbability, def.PowerUps.JokerProbability)
	count(&cfg.Scoring.CompletionPoints, def.Scoring.CompletionPoints)
	count(&cfg.Scoring.JokerCount, def.Scoring.JokerCount)
	count(&cfg.Session.MaxSteps, def.Session.MaxSteps)
	if cfg.Session.TimeLimit < 0 {
		cfg.Session.TimeLimit = def.Session.TimeLimit
	}
	switch cfg.Session.Completion {
	case "matching", "full":
	default:
		cfg.Session.Completion = def.Session.Completion
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".marbles", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust generation based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Nexus.JokerProbability = clampF(cfg.Nexus.JokerProbability*2, 0, 1)
		cfg.PowerUps.JokerProbability = clampF(cfg.PowerUps.JokerProbability+0.1, 0, 1)
	case DifficultyHard:
		cfg.Nexus.JokerProbability /= 2
		cfg.PowerUps.BonusProbability /= 2
		cfg.PowerUps.JokerProbability /= 2
	}
}
