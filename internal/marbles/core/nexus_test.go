package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

func TestNexusContextNeverEmpty(t *testing.T) {
	ctx := core.NewNexusContext(nil, fixedRandom{f: 0.9, i: 2}, 0.5)
	if ctx.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", ctx.Len())
	}
	if ctx.Peek() != core.ColorRed {
		t.Errorf("Peek() = %v, expected red", ctx.Peek())
	}

	ctx = core.NewNexusContext([]core.Color{core.ColorBlue}, fixedRandom{f: 0.9, i: 3}, 0)
	if got := ctx.Poll(); got != core.ColorBlue {
		t.Errorf("Poll() = %v, expected blue", got)
	}
	if ctx.Len() != 1 {
		t.Errorf("Len() after Poll = %d, expected 1", ctx.Len())
	}
	if ctx.Peek() != core.ColorYellow {
		t.Errorf("refilled color = %v, expected yellow", ctx.Peek())
	}
}

func TestNexusContextGenerate(t *testing.T) {
	tests := []struct {
		name string
		rng  fixedRandom
		p    float64
		want core.Color
	}{
		{"roll under probability", fixedRandom{f: 0.4}, 0.5, core.ColorJoker},
		{"roll over probability", fixedRandom{f: 0.6, i: 0}, 0.5, core.ColorBlue},
		{"palette index", fixedRandom{f: 0.6, i: 1}, 0.5, core.ColorGreen},
		{"zero probability", fixedRandom{f: 0, i: 3}, 0, core.ColorYellow},
		{"certain joker", fixedRandom{f: 0.999}, 1, core.ColorJoker},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := core.NewNexusContext([]core.Color{core.ColorRed}, tc.rng, tc.p)
			if got := ctx.Generate(); got != tc.want {
				t.Errorf("Generate() = %v, expected %v", got, tc.want)
			}
			if ctx.Len() != 1 {
				t.Errorf("Generate must not touch the queue")
			}
		})
	}
}

func TestNexusContextClampsProbability(t *testing.T) {
	if p := core.NewNexusContext(nil, nil, 3).JokerProbability(); p != 1 {
		t.Errorf("JokerProbability() = %v, expected 1", p)
	}
	if p := core.NewNexusContext(nil, nil, -1).JokerProbability(); p != 0 {
		t.Errorf("JokerProbability() = %v, expected 0", p)
	}

	ctx := core.NewNexusContext(nil, nil, 0.5)
	ctx.SetJokerProbability(2)
	if p := ctx.JokerProbability(); p != 1 {
		t.Errorf("JokerProbability() after set = %v, expected 1", p)
	}
}

func TestNexusContextSeededSequence(t *testing.T) {
	a := core.NewNexusContext(nil, core.NewRNG(42), 0.2)
	b := core.NewNexusContext(nil, core.NewRNG(42), 0.2)
	for i := 0; i < 50; i++ {
		if ca, cb := a.Poll(), b.Poll(); ca != cb {
			t.Fatalf("draw %d differs: %v vs %v", i, ca, cb)
		}
	}
}

func TestNexusContextAdd(t *testing.T) {
	ctx := core.NewNexusContext([]core.Color{core.ColorBlue}, nil, 0)
	ctx.Add(core.ColorJoker, core.ColorRed)

	want := []core.Color{core.ColorBlue, core.ColorJoker, core.ColorRed}
	got := ctx.Queue()
	if len(got) != len(want) {
		t.Fatalf("Queue() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Queue()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestSpawnIntoReceptor(t *testing.T) {
	opts := core.DefaultSessionOptions()
	opts.InitialQueue = []core.Color{core.ColorRed, core.ColorBlue}
	s := core.NewSession(1, 2, opts)
	sp := s.NewSpawningNexus(core.DirBottom)
	r := core.NewReceptor()
	if err := s.Place(sp, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Place(r, 0, 1); err != nil {
		t.Fatal(err)
	}

	m, err := sp.Spawn()
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if m != red() {
		t.Errorf("spawned %v, expected red", m)
	}
	if got := r.Slot(core.DirTop); !got.Filled || got.Marble != red() {
		t.Errorf("receptor top slot = %+v", got)
	}
	if s.Nexus().Occupied() {
		t.Error("nexus should be free once a receptor caught the marble")
	}
	if s.Nexus().Peek() != core.ColorBlue {
		t.Errorf("next color = %v, expected blue", s.Nexus().Peek())
	}
}

func TestSpawnWhileOccupied(t *testing.T) {
	opts := core.DefaultSessionOptions()
	opts.InitialQueue = []core.Color{core.ColorGreen}
	s := core.NewSession(1, 1, opts)
	sp := s.NewSpawningNexus(core.DirRight)
	if err := s.Place(sp, 0, 0); err != nil {
		t.Fatal(err)
	}
	s.Nexus().SetOccupied(true)

	_, err := sp.Spawn()
	if err != core.ErrNexusOccupied {
		t.Fatalf("Spawn error = %v, expected bare ErrNexusOccupied", err)
	}
	if sp.CanSpawn() {
		t.Error("CanSpawn should be false")
	}
	if s.Nexus().Peek() != core.ColorGreen || s.Nexus().Len() != 1 {
		t.Error("an occupied spawn must not consume the queue")
	}
}

func TestStuckSpawnBlocksSpawner(t *testing.T) {
	s := core.NewSession(1, 1, core.DefaultSessionOptions())
	sp := s.NewSpawningNexus(core.DirRight)
	if err := s.Place(sp, 0, 0); err != nil {
		t.Fatal(err)
	}

	m, err := sp.Spawn()
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	held, ok := sp.Held()
	if !ok || held != m {
		t.Errorf("Held() = %v, %v; expected the spawned marble", held, ok)
	}
	if !s.Nexus().Occupied() {
		t.Error("nexus should stay occupied while the marble is live")
	}

	s.Nexus().SetOccupied(false)
	if _, err := sp.Spawn(); !errors.Is(err, core.ErrNexusBlocked) {
		t.Errorf("Spawn error = %v, expected ErrNexusBlocked", err)
	}
}

func TestSpawnDirFallback(t *testing.T) {
	ctx := core.NewNexusContext(nil, nil, 0)
	if d := core.NewSpawningNexus(ctx, core.DirTop).SpawnDir(); d != core.DirRight {
		t.Errorf("SpawnDir() = %v, expected right", d)
	}
	if d := core.NewSpawningNexus(ctx, core.DirLeft).SpawnDir(); d != core.DirLeft {
		t.Errorf("SpawnDir() = %v, expected left", d)
	}
}

func TestNexusConnectors(t *testing.T) {
	n := core.NewNexus(core.NewNexusContext(nil, nil, 0))
	if n.AllowsConnection(core.DirTop) {
		t.Error("nexus top is the spawn boundary")
	}
	for _, d := range []core.Dir{core.DirRight, core.DirBottom, core.DirLeft} {
		if !n.AllowsConnection(d) {
			t.Errorf("nexus should connect on %v", d)
		}
	}
}

func TestNexusRoutesRisingMarbles(t *testing.T) {
	s := core.NewSession(3, 2, core.DefaultSessionOptions())
	left, right, below := core.NewReceptor(), core.NewReceptor(), core.NewReceptor()
	for _, p := range []struct {
		tile core.Tile
		x, y int
	}{
		{left, 0, 0}, {s.NewNexus(), 1, 0}, {right, 2, 0}, {below, 1, 1},
	} {
		if err := s.Place(p.tile, p.x, p.y); err != nil {
			t.Fatal(err)
		}
	}

	if err := below.Accept(core.DirTop, blue()); err != nil {
		t.Fatal(err)
	}
	if err := below.Release(core.DirTop); err != nil {
		t.Fatalf("first release failed: %v", err)
	}
	if !right.Slot(core.DirLeft).Filled {
		t.Fatal("rising marble should try right first")
	}

	if err := below.Accept(core.DirTop, red()); err != nil {
		t.Fatal(err)
	}
	if err := below.Release(core.DirTop); err != nil {
		t.Fatalf("second release failed: %v", err)
	}
	if got := left.Slot(core.DirRight); !got.Filled || got.Marble != red() {
		t.Errorf("left receptor right slot = %+v, expected red", got)
	}
}

func TestNexusDropsBeforeRolling(t *testing.T) {
	s := core.NewSession(3, 2, core.DefaultSessionOptions())
	sp := s.NewSpawningNexus(core.DirRight)
	drop, end := core.NewReceptor(), core.NewReceptor()
	for _, p := range []struct {
		tile core.Tile
		x, y int
	}{
		{sp, 0, 0}, {s.NewNexus(), 1, 0}, {end, 2, 0}, {drop, 1, 1},
	} {
		if err := s.Place(p.tile, p.x, p.y); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := sp.Spawn(); err != nil {
		t.Fatal(err)
	}
	if !drop.Slot(core.DirTop).Filled {
		t.Fatal("marble should drop into the receptor below first")
	}
	if _, err := sp.Spawn(); err != nil {
		t.Fatal(err)
	}
	if !end.Slot(core.DirLeft).Filled {
		t.Error("with the drop taken the marble should keep rolling")
	}
}
