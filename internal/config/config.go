// Package config provides YAML-based game configuration loading and
// difficulty management for Marbles.
package config

import (
	"time"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

// Config contains all tunable settings of a Marbles session.
type Config struct {
	Nexus      NexusConfig      `yaml:"nexus"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// NexusConfig defines how new marbles are generated.
type NexusConfig struct {
	JokerProbability float64  `yaml:"joker_probability"`
	InitialQueue     []string `yaml:"initial_queue"` // Color names, front first
}

// ScoringConfig defines points and power-up magnitudes.
type ScoringConfig struct {
	CompletionPoints int `yaml:"completion_points"`
	BonusPoints      int `yaml:"bonus_points"`
	JokerCount       int `yaml:"joker_count"`
}

// PowerUpConfig defines the chance of each power-up on a "random" receptor.
type PowerUpConfig struct {
	BonusProbability float64 `yaml:"bonus_probability"`
	JokerProbability float64 `yaml:"joker_probability"`
}

// SessionConfig defines limits for an automated run.
type SessionConfig struct {
	TimeLimit  time.Duration `yaml:"time_limit"` // 0 = no limit; a level's own limit wins
	MaxSteps   int           `yaml:"max_steps"`
	Completion string        `yaml:"completion"` // "matching" or "full"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "steps", or "none"
	MaxAt int    `yaml:"max_at"` // Score/steps at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	JokerReduction float64 `yaml:"joker_reduction"` // Fraction of joker probability removed at max difficulty
	TimeReduction  float64 `yaml:"time_reduction"`  // Fraction of the time limit removed at max difficulty
}

// InitialQueueColors parses the configured initial queue.
func (c Config) InitialQueueColors() ([]core.Color, error) {
	return core.ParseColors(c.Nexus.InitialQueue)
}

// PowerUpTable builds the power-up table described by the config.
func (c Config) PowerUpTable() *core.PowerUpTable {
	bonus, jokers := c.Scoring.BonusPoints, c.Scoring.JokerCount
	return core.NewPowerUpTable(
		core.PowerUpEntry{
			Kind:        core.PowerUpBonus,
			Probability: c.PowerUps.BonusProbability,
			Factory:     func() core.PowerUp { return core.Bonus{Points: bonus} },
		},
		core.PowerUpEntry{
			Kind:        core.PowerUpJoker,
			Probability: c.PowerUps.JokerProbability,
			Factory:     func() core.PowerUp { return core.Joker{Count: jokers} },
		},
	)
}

// SessionOptions converts the config into core session options. rng may be
// nil. Invalid initial queue entries are reported as an error.
func (c Config) SessionOptions(rng core.Random) (core.SessionOptions, error) {
	queue, err := c.InitialQueueColors()
	if err != nil {
		return core.SessionOptions{}, err
	}
	opts := core.SessionOptions{
		InitialQueue:     queue,
		JokerProbability: c.Nexus.JokerProbability,
		RNG:              rng,
		CompletionPoints: c.Scoring.CompletionPoints,
		PowerUps:         c.PowerUpTable(),
	}
	if c.Session.Completion == "full" {
		opts.Completion = core.FullCompletion
	}
	return opts, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset converts a flag value to a preset.
// Empty input is DifficultyNormal.
func ParseDifficultyPreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
