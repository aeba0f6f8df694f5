// Package levels loads Marbles boards from YAML files and builds playable
// sessions from them. This package depends on core but core does not depend
// on levels.
package levels

import (
	"fmt"

	"github.com/vovakirdan/marbles/internal/marbles/core"
	"github.com/vovakirdan/marbles/internal/marbles/levels/formats"
)

// Completion rule names accepted in level files.
const (
	CompletionMatching = "matching"
	CompletionFull     = "full"
)

// Power-up names accepted on receptor tiles.
const (
	PowerUpBonus  = "bonus"
	PowerUpJoker  = "joker"
	PowerUpRandom = "random"
)

// Level represents a complete level definition.
type Level struct {
	formats.Level
	FilePath string
}

// Apply overlays the level's own settings on opts. Settings the level leaves
// out keep the values already in opts.
func (l *Level) Apply(opts core.SessionOptions) core.SessionOptions {
	if len(l.Spawn) > 0 {
		opts.InitialQueue = append([]core.Color(nil), l.Spawn...)
	}
	if l.JokerProbability != nil {
		opts.JokerProbability = *l.JokerProbability
	}
	switch l.Completion {
	case CompletionFull:
		opts.Completion = core.FullCompletion
	case CompletionMatching:
		opts.Completion = core.MatchingCompletion
	}
	return opts
}

// NewSession validates the level and builds a session with every tile
// placed, teleporters paired and receptor power-ups attached.
func (l *Level) NewSession(opts core.SessionOptions) (*core.Session, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}

	s := core.NewSession(l.Width, l.Height, l.Apply(opts))
	ends := make(map[string]*core.Teleporter)

	for _, entry := range l.Tiles {
		tile, err := l.build(s, entry, ends)
		if err != nil {
			return nil, fmt.Errorf("levels: %s at %s: %w", entry.Kind, entry.At, err)
		}
		if err := s.Place(tile, entry.At.X, entry.At.Y); err != nil {
			return nil, fmt.Errorf("levels: %w", err)
		}
	}

	return s, nil
}

func (l *Level) build(s *core.Session, entry formats.Tile, ends map[string]*core.Teleporter) (core.Tile, error) {
	switch entry.Kind {
	case formats.KindTrack:
		return buildTrack(entry), nil

	case formats.KindTeleporter:
		tp := core.NewTeleporter(buildTrack(entry))
		if other, ok := ends[entry.Pair]; ok {
			tp.SetDestination(other)
			other.SetDestination(tp)
		} else {
			ends[entry.Pair] = tp
		}
		return tp, nil

	case formats.KindReceptor:
		r := core.NewReceptor()
		r.Rotate(entry.Rotation)
		if entry.Locked {
			r.Lock()
		}
		p, err := powerUpFor(s, entry.PowerUp)
		if err != nil {
			return nil, err
		}
		r.SetPowerUp(p)
		return r, nil

	case formats.KindNexus:
		return s.NewNexus(), nil

	case formats.KindSpawner:
		return s.NewSpawningNexus(entry.Dir), nil
	}

	return nil, fmt.Errorf("unknown tile kind %q", entry.Kind)
}

func buildTrack(entry formats.Tile) *core.Track {
	t := core.NewTrack(entry.Ports[0], entry.Ports[1])
	if entry.Filter != nil {
		t = core.NewFilter(t, *entry.Filter)
	}
	if entry.OneWay != nil {
		t = core.NewOneWay(t, *entry.OneWay)
	}
	return t
}

func powerUpFor(s *core.Session, name string) (core.PowerUp, error) {
	switch name {
	case "":
		return nil, nil
	case PowerUpRandom:
		return s.DrawPowerUp(), nil
	}
	kind, ok := core.ParsePowerUpKind(name)
	if !ok {
		return nil, fmt.Errorf("unknown power-up %q", name)
	}
	return s.PowerUps().Create(kind)
}
