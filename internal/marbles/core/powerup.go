package core

import (
	"fmt"
	"strings"
)

// PowerUpKind identifies a power-up strategy.
type PowerUpKind uint8

const (
	PowerUpBonus PowerUpKind = iota // Adds points to the session score
	PowerUpJoker                    // Queues joker marbles
)

// Default power-up magnitudes.
const (
	DefaultBonusPoints = 100
	DefaultJokerCount  = 2
)

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpBonus:
		return "bonus"
	case PowerUpJoker:
		return "joker"
	default:
		return "unknown"
	}
}

// ParsePowerUpKind converts a string to a PowerUpKind.
func ParsePowerUpKind(s string) (PowerUpKind, bool) {
	switch strings.ToLower(s) {
	case "bonus":
		return PowerUpBonus, true
	case "joker":
		return PowerUpJoker, true
	default:
		return PowerUpBonus, false
	}
}

// PowerUp is a stateless strategy activated against a receptor, usually when
// the receptor completes.
type PowerUp interface {
	Kind() PowerUpKind
	Activate(r *Receptor) error
}

// Bonus adds Points to the score of the receptor's session.
type Bonus struct {
	Points int
}

// NewBonus returns a Bonus worth DefaultBonusPoints.
func NewBonus() PowerUp {
	return Bonus{Points: DefaultBonusPoints}
}

// Kind returns PowerUpBonus.
func (b Bonus) Kind() PowerUpKind { return PowerUpBonus }

// Activate credits the session.
func (b Bonus) Activate(r *Receptor) error {
	s := r.Session()
	if s == nil {
		return ErrNoSession
	}
	s.AddScore(b.Points)
	return nil
}

// Joker appends Count jokers to the session's spawn queue.
type Joker struct {
	Count int
}

// NewJoker returns a Joker queueing DefaultJokerCount jokers.
func NewJoker() PowerUp {
	return Joker{Count: DefaultJokerCount}
}

// Kind returns PowerUpJoker.
func (j Joker) Kind() PowerUpKind { return PowerUpJoker }

// Activate re-seeds the spawn queue. A Count of zero or less adds nothing.
func (j Joker) Activate(r *Receptor) error {
	s := r.Session()
	if s == nil {
		return ErrNoSession
	}
	if j.Count <= 0 {
		return nil
	}
	jokers := make([]Color, j.Count)
	for i := range jokers {
		jokers[i] = ColorJoker
	}
	s.Nexus().Add(jokers...)
	return nil
}

// PowerUpFactory creates a power-up instance.
type PowerUpFactory func() PowerUp

// PowerUpEntry is one row of a PowerUpTable.
type PowerUpEntry struct {
	Kind        PowerUpKind
	Probability float64 // Chance of this entry on a single draw
	Factory     PowerUpFactory
}

// PowerUpTable picks power-ups by cumulative probability. Entries are tried
// in order; probabilities summing below 1 leave room for "no power-up".
type PowerUpTable struct {
	entries []PowerUpEntry
}

// NewPowerUpTable creates a table from entries. Entries without a factory
// get the default one for their kind.
func NewPowerUpTable(entries ...PowerUpEntry) *PowerUpTable {
	t := &PowerUpTable{entries: make([]PowerUpEntry, 0, len(entries))}
	for _, e := range entries {
		if e.Factory == nil {
			e.Factory = DefaultFactory(e.Kind)
		}
		t.entries = append(t.entries, e)
	}
	return t
}

// DefaultPowerUpTable returns a table with the Bonus and Joker factories.
func DefaultPowerUpTable(bonusProbability, jokerProbability float64) *PowerUpTable {
	return NewPowerUpTable(
		PowerUpEntry{Kind: PowerUpBonus, Probability: bonusProbability},
		PowerUpEntry{Kind: PowerUpJoker, Probability: jokerProbability},
	)
}

// DefaultFactory returns the factory for a built-in kind.
func DefaultFactory(k PowerUpKind) PowerUpFactory {
	switch k {
	case PowerUpJoker:
		return NewJoker
	default:
		return NewBonus
	}
}

// Entries returns a copy of the table rows.
func (t *PowerUpTable) Entries() []PowerUpEntry {
	return append([]PowerUpEntry(nil), t.entries...)
}

// Draw rolls once and returns the selected power-up, or nil if the roll
// lands past the last cumulative bound.
func (t *PowerUpTable) Draw(rng Random) PowerUp {
	roll := rng.Float()
	cumulative := 0.0
	for _, e := range t.entries {
		cumulative += e.Probability
		if roll < cumulative {
			return e.Factory()
		}
	}
	return nil
}

// Create builds a power-up of kind k using the table's factory.
func (t *PowerUpTable) Create(k PowerUpKind) (PowerUp, error) {
	for _, e := range t.entries {
		if e.Kind == k {
			return e.Factory(), nil
		}
	}
	return nil, fmt.Errorf("no factory for power-up %s", k)
}
