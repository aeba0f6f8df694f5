package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

// Source is a raw key/value store such as a map or the process environment.
// Keys are dotted paths matching the YAML layout, e.g. "nexus.joker_probability".
type Source interface {
	Get(key string) (string, bool)
}

// MapSource serves values from a map.
type MapSource map[string]string

// Get returns the value stored under key.
func (m MapSource) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvSource serves values from environment variables. The key
// "nexus.joker_probability" with prefix "MARBLES" reads
// MARBLES_NEXUS_JOKER_PROBABILITY.
type EnvSource struct {
	Prefix string
	Getenv func(string) (string, bool) // nil uses os.LookupEnv
}

// EnvPrefix is the prefix used by the CLI.
const EnvPrefix = "MARBLES"

// Get returns the environment value for key.
func (e EnvSource) Get(key string) (string, bool) {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}
	return getenv(EnvName(e.Prefix, key))
}

// EnvName converts a dotted key into an environment variable name.
func EnvName(prefix, key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if prefix == "" {
		return name
	}
	return strings.ToUpper(prefix) + "_" + name
}

// Lookup reads typed values from a Source. Every accessor returns def when
// the key is missing, blank or malformed, so a bad override never breaks a
// session.
type Lookup struct {
	src Source
}

// NewLookup wraps src. A nil src behaves as an empty source.
func NewLookup(src Source) Lookup {
	return Lookup{src: src}
}

func (l Lookup) raw(key string) (string, bool) {
	if l.src == nil {
		return "", false
	}
	v, ok := l.src.Get(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// String returns the value for key, or def.
func (l Lookup) String(key, def string) string {
	if v, ok := l.raw(key); ok {
		return v
	}
	return def
}

// Int returns the integer value for key, or def.
func (l Lookup) Int(key string, def int) int {
	v, ok := l.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Count is Int restricted to values >= 0; negative values fall back to def.
func (l Lookup) Count(key string, def int) int {
	n := l.Int(key, def)
	if n < 0 {
		return def
	}
	return n
}

// Float returns the float value for key, or def.
func (l Lookup) Float(key string, def float64) float64 {
	v, ok := l.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Probability is Float restricted to [0, 1]; values outside fall back to def.
func (l Lookup) Probability(key string, def float64) float64 {
	p := l.Float(key, def)
	if p < 0 || p > 1 {
		return def
	}
	return p
}

// Duration returns the duration value for key (e.g. "90s"), or def.
func (l Lookup) Duration(key string, def time.Duration) time.Duration {
	v, ok := l.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Colors returns a comma-separated color list for key, or def if any entry
// is unknown.
func (l Lookup) Colors(key string, def []core.Color) []core.Color {
	v, ok := l.raw(key)
	if !ok {
		return def
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	colors, err := core.ParseColors(parts)
	if err != nil {
		return def
	}
	return colors
}

// ApplyLookup overlays lookup values on cfg. Keys mirror the YAML layout.
func ApplyLookup(cfg *Config, l Lookup) {
	cfg.Nexus.JokerProbability = l.Probability("nexus.joker_probability", cfg.Nexus.JokerProbability)
	if queue, err := cfg.InitialQueueColors(); err == nil {
		colors := l.Colors("nexus.initial_queue", queue)
		names := make([]string, len(colors))
		for i, c := range colors {
			names[i] = c.String()
		}
		cfg.Nexus.InitialQueue = names
	}

	cfg.Scoring.CompletionPoints = l.Int("scoring.completion_points", cfg.Scoring.CompletionPoints)
	cfg.Scoring.BonusPoints = l.Int("scoring.bonus_points", cfg.Scoring.BonusPoints)
	cfg.Scoring.JokerCount = l.Count("scoring.joker_count", cfg.Scoring.JokerCount)

	cfg.PowerUps.BonusProbability = l.Probability("powerups.bonus_probability", cfg.PowerUps.BonusProbability)
	cfg.PowerUps.JokerProbability = l.Probability("powerups.joker_probability", cfg.PowerUps.JokerProbability)

	cfg.Session.TimeLimit = l.Duration("session.time_limit", cfg.Session.TimeLimit)
	cfg.Session.MaxSteps = l.Count("session.max_steps", cfg.Session.MaxSteps)
	switch c := l.String("session.completion", cfg.Session.Completion); c {
	case "matching", "full":
		cfg.Session.Completion = c
	}
}
