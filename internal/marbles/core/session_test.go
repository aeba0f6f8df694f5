package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

// tutorialBoard builds a 5x5 board where four spawns along the top line can
// fill one receptor from all four sides.
func tutorialBoard(t *testing.T, queue []core.Color) (*core.Session, *core.Receptor) {
	t.Helper()
	opts := core.DefaultSessionOptions()
	opts.InitialQueue = queue
	s := core.NewSession(5, 5, opts)
	r := core.NewReceptor()

	place := func(tile core.Tile, x, y int) {
		t.Helper()
		if err := s.Place(tile, x, y); err != nil {
			t.Fatalf("Place(%d,%d) failed: %v", x, y, err)
		}
	}

	place(s.NewSpawningNexus(core.DirRight), 0, 0)
	for x := 1; x < 5; x++ {
		place(s.NewNexus(), x, 0)
	}
	place(r, 2, 3)

	// left side
	place(core.NewVertical(), 1, 1)
	place(core.NewVertical(), 1, 2)
	place(core.NewTrack(core.DirTop, core.DirRight), 1, 3)
	// top side
	place(core.NewVertical(), 2, 1)
	place(core.NewVertical(), 2, 2)
	// right side
	place(core.NewVertical(), 3, 1)
	place(core.NewVertical(), 3, 2)
	place(core.NewTrack(core.DirTop, core.DirLeft), 3, 3)
	// bottom side, looping under the receptor
	place(core.NewVertical(), 4, 1)
	place(core.NewVertical(), 4, 2)
	place(core.NewVertical(), 4, 3)
	place(core.NewTrack(core.DirTop, core.DirLeft), 4, 4)
	place(core.NewHorizontal(), 3, 4)
	place(core.NewTrack(core.DirRight, core.DirTop), 2, 4)

	return s, r
}

func TestPlaceForeignNexus(t *testing.T) {
	s1 := core.NewSession(2, 2, core.DefaultSessionOptions())
	s2 := core.NewSession(2, 2, core.DefaultSessionOptions())

	err := s1.Place(s2.NewNexus(), 0, 0)
	if !errors.Is(err, core.ErrForeignContext) {
		t.Errorf("Place error = %v, expected ErrForeignContext", err)
	}
	err = s1.Place(s2.NewSpawningNexus(core.DirRight), 1, 0)
	if !errors.Is(err, core.ErrForeignContext) {
		t.Errorf("Place spawner error = %v, expected ErrForeignContext", err)
	}
	if err := s1.Place(s1.NewNexus(), 0, 0); err != nil {
		t.Errorf("own nexus should place: %v", err)
	}
}

func TestSharedNexusContext(t *testing.T) {
	ctx := core.NewNexusContext([]core.Color{core.ColorRed}, nil, 0)
	opts := core.DefaultSessionOptions()
	opts.Nexus = ctx
	s := core.NewSession(2, 1, opts)
	if s.Nexus() != ctx {
		t.Fatal("session should adopt the given context")
	}
	if err := s.Place(core.NewNexus(ctx), 0, 0); err != nil {
		t.Errorf("nexus with session context should place: %v", err)
	}
}

func TestIsWon(t *testing.T) {
	s := core.NewSession(2, 1, core.DefaultSessionOptions())
	if s.IsWon() {
		t.Error("board without receptors is not won")
	}

	a, b := core.NewReceptor(), core.NewReceptor()
	if err := s.Place(a, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Place(b, 1, 0); err != nil {
		t.Fatal(err)
	}
	for _, d := range core.AllDirs() {
		if err := a.Accept(d, blue()); err != nil {
			t.Fatal(err)
		}
	}
	if s.IsWon() {
		t.Error("one receptor still open")
	}
	for _, d := range core.AllDirs() {
		if err := b.Accept(d, joker()); err != nil {
			t.Fatal(err)
		}
	}
	if !s.IsWon() {
		t.Error("all receptors completed")
	}
	if s.CompletedCount() != 2 || s.Score() != 2*core.DefaultCompletionPoints {
		t.Errorf("CompletedCount() = %d, Score() = %d", s.CompletedCount(), s.Score())
	}
}

func TestTutorialBoardPlaysOut(t *testing.T) {
	blues := []core.Color{core.ColorBlue, core.ColorBlue, core.ColorBlue, core.ColorBlue}
	s, r := tutorialBoard(t, blues)
	rec := &recorder{}
	s.AddListener(rec)

	steps, won := s.RunUntilIdle(20)
	if !won {
		t.Fatalf("expected a win after %d steps, score %d", steps, s.Score())
	}
	if steps != 4 {
		t.Errorf("steps = %d, expected 4", steps)
	}
	if !r.Completed() || s.Score() != core.DefaultCompletionPoints {
		t.Errorf("Completed() = %v, Score() = %d", r.Completed(), s.Score())
	}
	if rec.count(core.EventAccepted) != 4 || rec.count(core.EventDisposed) != 4 {
		t.Errorf("events = %v", rec.events)
	}
	for _, d := range core.AllDirs() {
		if r.Slot(d).Marble != blue() {
			t.Errorf("slot %v = %+v", d, r.Slot(d))
		}
	}
}

func TestAutoStepReportsSpawns(t *testing.T) {
	s, _ := tutorialBoard(t, []core.Color{core.ColorRed})

	res := s.AutoStep()
	if res.Action != core.ActionSpawn || res.At != core.C(0, 0) || res.Marble != red() {
		t.Errorf("AutoStep() = %+v", res)
	}
	if res.Step != 1 || s.Steps() != 1 {
		t.Errorf("Step = %d, Steps() = %d", res.Step, s.Steps())
	}
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventAccepted || res.Events[0].Dir != core.DirLeft {
		t.Errorf("Events = %v, expected one accept on the left slot", res.Events)
	}
}

func TestAutoStepReleasesMismatch(t *testing.T) {
	s := core.NewSession(2, 1, core.DefaultSessionOptions())
	tr := core.NewHorizontal()
	r := core.NewReceptor()
	if err := s.Place(tr, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Place(r, 1, 0); err != nil {
		t.Fatal(err)
	}
	if err := r.Accept(core.DirTop, blue()); err != nil {
		t.Fatal(err)
	}
	if err := r.Accept(core.DirLeft, red()); err != nil {
		t.Fatal(err)
	}

	res := s.AutoStep()
	if res.Action != core.ActionRelease || res.Dir != core.DirLeft || res.Marble != red() {
		t.Fatalf("AutoStep() = %+v, expected release of red on the left", res)
	}
	if m, held := tr.Held(); !held || m != red() {
		t.Errorf("track Held() = %v, %v", m, held)
	}

	res = s.AutoStep()
	if res.Action != core.ActionNone {
		t.Errorf("AutoStep() = %+v, expected nothing left to do", res)
	}
	if steps, won := s.RunUntilIdle(10); steps != 1 || won {
		t.Errorf("RunUntilIdle = %d, %v; expected 1, false", steps, won)
	}
}

func TestAutoStepFlushesParkedMarble(t *testing.T) {
	s := core.NewSession(2, 1, core.DefaultSessionOptions())
	tr := core.NewHorizontal()
	if err := s.Place(tr, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := tr.Accept(core.DirLeft, blue()); err != nil {
		t.Fatal(err)
	}
	r := core.NewReceptor()
	if err := s.Place(r, 1, 0); err != nil {
		t.Fatal(err)
	}

	res := s.AutoStep()
	if res.Action != core.ActionFlush || res.At != core.C(0, 0) || res.Marble != blue() {
		t.Errorf("AutoStep() = %+v, expected flush at (0,0)", res)
	}
	if !r.Slot(core.DirLeft).Filled {
		t.Error("flushed marble should land in the receptor")
	}
}

func TestDrawPowerUpUsesSessionRNG(t *testing.T) {
	opts := core.DefaultSessionOptions()
	opts.RNG = fixedRandom{f: 0.1}
	opts.PowerUps = core.DefaultPowerUpTable(0, 0.5)
	s := core.NewSession(1, 1, opts)

	p := s.DrawPowerUp()
	if p == nil || p.Kind() != core.PowerUpJoker {
		t.Errorf("DrawPowerUp() = %v, expected joker", p)
	}
	if core.NewSession(1, 1, core.DefaultSessionOptions()).DrawPowerUp() != nil {
		t.Error("default table should never yield a power-up")
	}
}
