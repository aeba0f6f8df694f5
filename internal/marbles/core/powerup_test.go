package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

func TestBonusActivation(t *testing.T) {
	s, r := newReceptorSession(t, core.DefaultSessionOptions())

	for _, want := range []int{100, 200} {
		if err := s.Activate(core.NewBonus(), r); err != nil {
			t.Fatalf("Activate failed: %v", err)
		}
		if s.Score() != want {
			t.Errorf("Score() = %d, expected %d", s.Score(), want)
		}
	}
}

func TestPowerUpWithoutSession(t *testing.T) {
	r := core.NewReceptor()
	if err := core.NewBonus().Activate(r); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("Bonus error = %v, expected ErrNoSession", err)
	}
	if err := core.NewJoker().Activate(r); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("Joker error = %v, expected ErrNoSession", err)
	}

	s := core.NewSession(1, 1, core.DefaultSessionOptions())
	_, other := newReceptorSession(t, core.DefaultSessionOptions())
	if err := s.Activate(core.NewBonus(), other); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("Activate on foreign receptor = %v, expected ErrNoSession", err)
	}
}

func TestJokerActivation(t *testing.T) {
	opts := core.DefaultSessionOptions()
	opts.InitialQueue = []core.Color{core.ColorBlue}
	s, r := newReceptorSession(t, opts)

	if err := s.Activate(core.NewJoker(), r); err != nil {
		t.Fatal(err)
	}
	q := s.Nexus().Queue()
	if len(q) != 1+core.DefaultJokerCount {
		t.Fatalf("Queue() = %v, expected blue plus %d jokers", q, core.DefaultJokerCount)
	}
	if q[0] != core.ColorBlue || q[1] != core.ColorJoker || q[2] != core.ColorJoker {
		t.Errorf("Queue() = %v", q)
	}
}

func TestJokerWithoutCountAddsNothing(t *testing.T) {
	for _, count := range []int{0, -1} {
		opts := core.DefaultSessionOptions()
		opts.InitialQueue = []core.Color{core.ColorBlue}
		s, r := newReceptorSession(t, opts)

		if err := s.Activate(core.Joker{Count: count}, r); err != nil {
			t.Fatalf("Count %d: Activate failed: %v", count, err)
		}
		if q := s.Nexus().Queue(); len(q) != 1 || q[0] != core.ColorBlue {
			t.Errorf("Count %d: Queue() = %v, expected only blue", count, q)
		}
	}
}

func TestPowerUpTableDraw(t *testing.T) {
	table := core.DefaultPowerUpTable(0.3, 0.2)

	tests := []struct {
		roll float64
		want core.PowerUpKind
		none bool
	}{
		{roll: 0.0, want: core.PowerUpBonus},
		{roll: 0.29, want: core.PowerUpBonus},
		{roll: 0.3, want: core.PowerUpJoker},
		{roll: 0.49, want: core.PowerUpJoker},
		{roll: 0.5, none: true},
		{roll: 0.99, none: true},
	}

	for _, tc := range tests {
		p := table.Draw(fixedRandom{f: tc.roll})
		if tc.none {
			if p != nil {
				t.Errorf("Draw(%v) = %v, expected nil", tc.roll, p)
			}
			continue
		}
		if p == nil || p.Kind() != tc.want {
			t.Errorf("Draw(%v) = %v, expected %v", tc.roll, p, tc.want)
		}
	}
}

func TestPowerUpTableCreate(t *testing.T) {
	table := core.NewPowerUpTable(core.PowerUpEntry{
		Kind:    core.PowerUpBonus,
		Factory: func() core.PowerUp { return core.Bonus{Points: 7} },
	})

	p, err := table.Create(core.PowerUpBonus)
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := p.(core.Bonus); !ok || b.Points != 7 {
		t.Errorf("Create returned %#v, expected custom bonus", p)
	}
	if _, err := table.Create(core.PowerUpJoker); err == nil {
		t.Error("expected error for kind without factory")
	}
}

func TestParsePowerUpKind(t *testing.T) {
	tests := []struct {
		in   string
		want core.PowerUpKind
		ok   bool
	}{
		{"bonus", core.PowerUpBonus, true},
		{"JOKER", core.PowerUpJoker, true},
		{"shield", core.PowerUpBonus, false},
	}
	for _, tc := range tests {
		got, ok := core.ParsePowerUpKind(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePowerUpKind(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCompletionActivatesPowerUp(t *testing.T) {
	s, r := newReceptorSession(t, core.DefaultSessionOptions())
	r.SetPowerUp(core.NewBonus())

	for _, d := range core.AllDirs() {
		if err := r.Accept(d, green()); err != nil {
			t.Fatalf("Accept failed: %v", err)
		}
	}
	if want := core.DefaultCompletionPoints + core.DefaultBonusPoints; s.Score() != want {
		t.Errorf("Score() = %d, expected %d", s.Score(), want)
	}
}
