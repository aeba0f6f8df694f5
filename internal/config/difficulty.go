package config

import (
	"math"
	"time"
)

// minTimeLimit is the shortest limit difficulty scaling produces.
const minTimeLimit = 5 * time.Second

// DifficultyManager calculates dynamic session parameters based on
// score/steps.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/steps.
func (d *DifficultyManager) Level(score int, steps int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "steps":
		progress = float64(steps) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// JokerProbability returns the joker probability for the current level.
// Jokers get rarer as difficulty increases.
func (d *DifficultyManager) JokerProbability(base float64, score int, steps int) float64 {
	level := d.Level(score, steps)
	return clampF(base*(1.0-level*d.cfg.Scaling.JokerReduction), 0.0, 1.0)
}

// TimeLimit returns the time limit at the initial level. Zero stays zero.
func (d *DifficultyManager) TimeLimit(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	factor := 1.0 - d.initialLevel*clampF(d.cfg.Scaling.TimeReduction, 0.0, 1.0)
	limit := time.Duration(float64(base) * factor)
	if limit < minTimeLimit {
		limit = min(base, minTimeLimit)
	}
	return limit
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
