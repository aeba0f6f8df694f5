package config

import (
	"testing"
	"time"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

func TestLookupFallsBack(t *testing.T) {
	l := NewLookup(MapSource{
		"int":      "42",
		"bad_int":  "forty-two",
		"float":    "0.25",
		"bad_prob": "1.5",
		"dur":      "90s",
		"bad_dur":  "soon",
		"colors":   "red, joker,b",
		"bad_col":  "red,purple",
		"blank":    "   ",
	})

	if got := l.Int("int", 1); got != 42 {
		t.Errorf("Int = %d", got)
	}
	if got := l.Int("bad_int", 1); got != 1 {
		t.Errorf("malformed Int = %d, expected default", got)
	}
	if got := l.Int("missing", 3); got != 3 {
		t.Errorf("missing Int = %d, expected default", got)
	}
	if got := l.Float("float", 0); got != 0.25 {
		t.Errorf("Float = %v", got)
	}
	if got := l.Probability("bad_prob", 0.1); got != 0.1 {
		t.Errorf("out of range Probability = %v, expected default", got)
	}
	if got := l.Duration("dur", 0); got != 90*time.Second {
		t.Errorf("Duration = %v", got)
	}
	if got := l.Duration("bad_dur", time.Second); got != time.Second {
		t.Errorf("malformed Duration = %v, expected default", got)
	}
	if got := l.String("blank", "def"); got != "def" {
		t.Errorf("blank String = %q, expected default", got)
	}

	colors := l.Colors("colors", nil)
	want := []core.Color{core.ColorRed, core.ColorJoker, core.ColorBlue}
	if len(colors) != len(want) {
		t.Fatalf("Colors = %v, expected %v", colors, want)
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("Colors[%d] = %v, expected %v", i, colors[i], want[i])
		}
	}
	if got := l.Colors("bad_col", []core.Color{core.ColorGreen}); len(got) != 1 || got[0] != core.ColorGreen {
		t.Errorf("malformed Colors = %v, expected default", got)
	}

	var empty Lookup
	if got := empty.Int("int", 5); got != 5 {
		t.Errorf("zero Lookup Int = %d, expected default", got)
	}
}

func TestLookupCountRejectsNegative(t *testing.T) {
	l := NewLookup(MapSource{"n": "4", "neg": "-1", "zero": "0"})

	if got := l.Count("n", 2); got != 4 {
		t.Errorf("Count = %d, expected 4", got)
	}
	if got := l.Count("neg", 2); got != 2 {
		t.Errorf("negative Count = %d, expected default", got)
	}
	if got := l.Count("zero", 2); got != 0 {
		t.Errorf("zero Count = %d, expected 0", got)
	}
}

func TestApplyLookupIgnoresNegativeCounts(t *testing.T) {
	cfg := DefaultConfig()
	ApplyLookup(&cfg, NewLookup(MapSource{
		"scoring.joker_count": "-1",
		"session.max_steps":   "-20",
	}))

	def := DefaultConfig()
	if cfg.Scoring.JokerCount != def.Scoring.JokerCount {
		t.Errorf("JokerCount = %d, expected default %d", cfg.Scoring.JokerCount, def.Scoring.JokerCount)
	}
	if cfg.Session.MaxSteps != def.Session.MaxSteps {
		t.Errorf("MaxSteps = %d, expected default %d", cfg.Session.MaxSteps, def.Session.MaxSteps)
	}
}

func TestEnvName(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"MARBLES", "nexus.joker_probability", "MARBLES_NEXUS_JOKER_PROBABILITY"},
		{"marbles", "session.time-limit", "MARBLES_SESSION_TIME_LIMIT"},
		{"", "scoring.bonus_points", "SCORING_BONUS_POINTS"},
	}
	for _, tc := range tests {
		if got := EnvName(tc.prefix, tc.key); got != tc.want {
			t.Errorf("EnvName(%q, %q) = %q, expected %q", tc.prefix, tc.key, got, tc.want)
		}
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv("MARBLES_SCORING_BONUS_POINTS", "250")

	l := NewLookup(EnvSource{Prefix: EnvPrefix})
	if got := l.Int("scoring.bonus_points", 0); got != 250 {
		t.Errorf("Int from env = %d, expected 250", got)
	}

	stub := EnvSource{Prefix: "X", Getenv: func(name string) (string, bool) {
		if name == "X_A_B" {
			return "yes", true
		}
		return "", false
	}}
	if v, ok := stub.Get("a.b"); !ok || v != "yes" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}

func TestApplyLookup(t *testing.T) {
	cfg := DefaultConfig()
	ApplyLookup(&cfg, NewLookup(MapSource{
		"nexus.joker_probability":     "0.4",
		"nexus.initial_queue":         "red,red",
		"scoring.completion_points":   "75",
		"scoring.bonus_points":        "lots",
		"powerups.joker_probability":  "-1",
		"session.time_limit":          "10s",
		"session.completion":          "sometimes",
		"powerups.bonus_probability":  "0",
		"session.max_steps":           "12",
		"scoring.joker_count":         "3",
		"difficulty.initial_level":    "ignored",
		"nexus.unrelated_setting_key": "ignored",
	}))

	def := DefaultConfig()
	if cfg.Nexus.JokerProbability != 0.4 {
		t.Errorf("JokerProbability = %v", cfg.Nexus.JokerProbability)
	}
	if len(cfg.Nexus.InitialQueue) != 2 || cfg.Nexus.InitialQueue[0] != "red" {
		t.Errorf("InitialQueue = %v", cfg.Nexus.InitialQueue)
	}
	if cfg.Scoring.CompletionPoints != 75 || cfg.Scoring.JokerCount != 3 {
		t.Errorf("Scoring = %+v", cfg.Scoring)
	}
	if cfg.Scoring.BonusPoints != def.Scoring.BonusPoints {
		t.Errorf("malformed bonus points should keep %d, got %d", def.Scoring.BonusPoints, cfg.Scoring.BonusPoints)
	}
	if cfg.PowerUps.JokerProbability != def.PowerUps.JokerProbability || cfg.PowerUps.BonusProbability != 0 {
		t.Errorf("PowerUps = %+v", cfg.PowerUps)
	}
	if cfg.Session.TimeLimit != 10*time.Second || cfg.Session.MaxSteps != 12 {
		t.Errorf("Session = %+v", cfg.Session)
	}
	if cfg.Session.Completion != def.Session.Completion {
		t.Errorf("unknown completion should keep %q, got %q", def.Session.Completion, cfg.Session.Completion)
	}
}
