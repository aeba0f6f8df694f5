package core_test

import (
	"testing"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

// fixedRandom returns the same values on every call.
type fixedRandom struct {
	f float64
	i int
}

func (r fixedRandom) Float() float64 { return r.f }
func (r fixedRandom) Intn(int) int   { return r.i }

// recorder collects events.
type recorder struct {
	events []core.Event
}

func (r *recorder) OnEvent(e core.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(kind core.EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func blue() core.Marble   { return core.NewMarble(core.ColorBlue) }
func red() core.Marble    { return core.NewMarble(core.ColorRed) }
func joker() core.Marble  { return core.NewMarble(core.ColorJoker) }
func yellow() core.Marble { return core.NewMarble(core.ColorYellow) }
func green() core.Marble  { return core.NewMarble(core.ColorGreen) }

func mustPlace(t testing.TB, g *core.Grid, tile core.Tile, x, y int) {
	t.Helper()
	if err := g.Place(tile, x, y); err != nil {
		t.Fatalf("Place(%d,%d) failed: %v", x, y, err)
	}
}
