package levels

import (
	"fmt"

	"github.com/vovakirdan/marbles/internal/marbles/core"
	"github.com/vovakirdan/marbles/internal/marbles/levels/formats"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that a level describes a buildable board.
// Checks:
//   - Size is positive and every tile is inside it, one tile per cell
//   - Settings are in range (joker probability, completion rule, power-ups)
//   - One-way exits lie on the track's axis and no two one-ways face each other
//   - Every teleporter label names exactly two ends
//   - There is at least one spawner and one receptor
func Validate(l *Level) error {
	if l.Width <= 0 || l.Height <= 0 {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("board size %dx%d must be positive", l.Width, l.Height),
		}
	}

	if p := l.JokerProbability; p != nil && (*p < 0 || *p > 1) {
		return ValidationError{
			Code:    "INVALID_PROBABILITY",
			Message: fmt.Sprintf("joker probability %v outside [0,1]", *p),
		}
	}

	switch l.Completion {
	case "", CompletionMatching, CompletionFull:
	default:
		return ValidationError{
			Code:    "INVALID_COMPLETION",
			Message: fmt.Sprintf("unknown completion rule %q", l.Completion),
		}
	}

	seen := make(map[core.Coord]bool)
	oneWays := make(map[core.Coord]core.Dir)
	pairs := make(map[string]int)
	pairOrder := make([]string, 0)
	receptors, spawners := 0, 0

	for _, t := range l.Tiles {
		if t.At.X < 0 || t.At.X >= l.Width || t.At.Y < 0 || t.At.Y >= l.Height {
			return ValidationError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("%s at %s outside %dx%d board", t.Kind, t.At, l.Width, l.Height),
			}
		}
		if seen[t.At] {
			return ValidationError{
				Code:    "DUPLICATE_TILE",
				Message: fmt.Sprintf("more than one tile at %s", t.At),
			}
		}
		seen[t.At] = true

		switch t.Kind {
		case formats.KindTrack, formats.KindTeleporter:
			if err := validateOneWay(t); err != nil {
				return err
			}
			if t.OneWay != nil {
				oneWays[t.At] = *t.OneWay
			}
			if t.Kind == formats.KindTeleporter {
				if t.Pair == "" {
					return ValidationError{
						Code:    "UNPAIRED_TELEPORTER",
						Message: fmt.Sprintf("teleporter at %s has no pair label", t.At),
					}
				}
				if pairs[t.Pair] == 0 {
					pairOrder = append(pairOrder, t.Pair)
				}
				pairs[t.Pair]++
			}
		case formats.KindReceptor:
			receptors++
			switch t.PowerUp {
			case "", PowerUpBonus, PowerUpJoker, PowerUpRandom:
			default:
				return ValidationError{
					Code:    "UNKNOWN_POWERUP",
					Message: fmt.Sprintf("receptor at %s has unknown power-up %q", t.At, t.PowerUp),
				}
			}
		case formats.KindSpawner:
			if t.Dir == core.DirTop {
				return ValidationError{
					Code:    "INVALID_SPAWN_DIR",
					Message: fmt.Sprintf("spawner at %s cannot spawn upward", t.At),
				}
			}
			spawners++
		}
	}

	// Two one-ways pushing into each other would pass a marble back and
	// forth forever.
	for _, t := range l.Tiles {
		exit, ok := oneWays[t.At]
		if !ok {
			continue
		}
		if other, ok := oneWays[t.At.Step(exit)]; ok && other == exit.Opposite() {
			return ValidationError{
				Code:    "FACING_ONE_WAY",
				Message: fmt.Sprintf("one-way %s at %s faces one-way %s at %s", exit, t.At, other, t.At.Step(exit)),
			}
		}
	}

	for _, label := range pairOrder {
		if pairs[label] != 2 {
			return ValidationError{
				Code:    "UNPAIRED_TELEPORTER",
				Message: fmt.Sprintf("teleporter pair %q has %d ends, expected 2", label, pairs[label]),
			}
		}
	}

	if spawners == 0 {
		return ValidationError{Code: "NO_SPAWNER", Message: "board has no spawner"}
	}
	if receptors == 0 {
		return ValidationError{Code: "NO_RECEPTOR", Message: "board has no receptor"}
	}

	return nil
}

func validateOneWay(t formats.Tile) error {
	if t.OneWay == nil {
		return nil
	}
	exit := *t.OneWay
	onAxis := (t.Ports[0] == exit && t.Ports[1] == exit.Opposite()) ||
		(t.Ports[1] == exit && t.Ports[0] == exit.Opposite())
	if !onAxis {
		return ValidationError{
			Code:    "INVALID_ONE_WAY",
			Message: fmt.Sprintf("one-way %s at %s does not match ports %s/%s", exit, t.At, t.Ports[0], t.Ports[1]),
		}
	}
	return nil
}
