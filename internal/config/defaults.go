package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

//go:embed defaults/marbles.yaml
var defaultMarblesYAML []byte

// DefaultConfig returns the hard-coded configuration. It matches the
// embedded defaults/marbles.yaml.
func DefaultConfig() Config {
	return Config{
		Nexus: NexusConfig{
			JokerProbability: 0.1,
		},
		Scoring: ScoringConfig{
			CompletionPoints: core.DefaultCompletionPoints,
			BonusPoints:      core.DefaultBonusPoints,
			JokerCount:       core.DefaultJokerCount,
		},
		PowerUps: PowerUpConfig{
			BonusProbability: 0.3,
			JokerProbability: 0.2,
		},
		Session: SessionConfig{
			TimeLimit:  2 * time.Minute,
			MaxSteps:   500,
			Completion: "matching",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				JokerReduction: 0.8,
				TimeReduction:  0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMarblesYAML
}
