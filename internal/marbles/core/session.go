package core

// DefaultCompletionPoints is credited each time a receptor completes.
const DefaultCompletionPoints = 50

// SessionOptions configures a new Session.
type SessionOptions struct {
	// Nexus is the shared spawn context. When nil one is built from
	// InitialQueue, RNG and JokerProbability.
	Nexus            *NexusContext
	InitialQueue     []Color
	JokerProbability float64

	// RNG drives spawn generation and power-up draws. nil uses NewRNG(0).
	RNG Random

	// Completion decides when a receptor is done. nil uses MatchingCompletion.
	Completion CompletionRule

	// CompletionPoints is credited per completed receptor. Negative means 0.
	CompletionPoints int

	// PowerUps is the table DrawPowerUp rolls against. nil uses
	// DefaultPowerUpTable(0, 0), which never yields anything.
	PowerUps *PowerUpTable
}

// DefaultSessionOptions returns options with the default scoring.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		CompletionPoints: DefaultCompletionPoints,
	}
}

// Session is one play-through: the grid, the one shared spawn context, the
// score and the session-level listeners.
type Session struct {
	grid             *Grid
	nexus            *NexusContext
	rng              Random
	score            int
	completion       CompletionRule
	completionPoints int
	completedCount   int
	powerUps         *PowerUpTable
	listeners        []Listener
	steps            uint64
	recording        *[]Event
}

// NewSession creates a session with a w x h grid of empty cells.
func NewSession(w, h int, opts SessionOptions) *Session {
	rng := opts.RNG
	if rng == nil {
		rng = NewRNG(0)
	}
	ctx := opts.Nexus
	if ctx == nil {
		ctx = NewNexusContext(opts.InitialQueue, rng, opts.JokerProbability)
	}
	powerUps := opts.PowerUps
	if powerUps == nil {
		powerUps = DefaultPowerUpTable(0, 0)
	}
	points := opts.CompletionPoints
	if points < 0 {
		points = 0
	}
	s := &Session{
		grid:             NewGrid(w, h),
		nexus:            ctx,
		rng:              rng,
		completion:       opts.Completion,
		completionPoints: points,
		powerUps:         powerUps,
	}
	s.grid.session = s
	return s
}

// Grid returns the session grid.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Nexus returns the shared spawn context.
func (s *Session) Nexus() *NexusContext {
	return s.nexus
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// AddScore adds n points.
func (s *Session) AddScore(n int) {
	s.score += n
}

// CompletedCount returns how many receptors have completed.
func (s *Session) CompletedCount() int {
	return s.completedCount
}

// PowerUps returns the power-up table.
func (s *Session) PowerUps() *PowerUpTable {
	return s.powerUps
}

// DrawPowerUp rolls the session's power-up table with the session RNG.
func (s *Session) DrawPowerUp() PowerUp {
	return s.powerUps.Draw(s.rng)
}

// Place puts t at (x, y). Nexus tiles must share this session's context.
func (s *Session) Place(t Tile, x, y int) error {
	if n, ok := t.(interface{ Context() *NexusContext }); ok && n.Context() != s.nexus {
		return &TransferError{Op: "place", At: C(x, y), Err: ErrForeignContext}
	}
	return s.grid.Place(t, x, y)
}

// NewNexus creates a spawn line segment bound to this session's context.
func (s *Session) NewNexus() *Nexus {
	return NewNexus(s.nexus)
}

// NewSpawningNexus creates a spawner bound to this session's context.
func (s *Session) NewSpawningNexus(dir Dir) *SpawningNexus {
	return NewSpawningNexus(s.nexus, dir)
}

// Tile returns the occupant at (x, y), or nil if out of bounds.
func (s *Session) Tile(x, y int) Tile {
	return s.grid.Tile(C(x, y))
}

// Receptors returns every receptor in row-major order.
func (s *Session) Receptors() []*Receptor {
	return s.grid.Receptors()
}

// Spawners returns every spawning nexus in row-major order.
func (s *Session) Spawners() []*SpawningNexus {
	return s.grid.Spawners()
}

// Activate runs p against r.
func (s *Session) Activate(p PowerUp, r *Receptor) error {
	if r.Session() != s {
		return &TransferError{Op: "activate", At: r.at, Err: ErrNoSession}
	}
	return p.Activate(r)
}

// IsWon reports whether the board has receptors and all of them completed.
func (s *Session) IsWon() bool {
	receptors := s.Receptors()
	if len(receptors) == 0 {
		return false
	}
	for _, r := range receptors {
		if !r.Completed() {
			return false
		}
	}
	return true
}

// AddListener registers l for notifications from every tile of the session.
// Receptor-level listeners run first.
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Session) receptorCompleted(*Receptor) {
	s.completedCount++
	s.score += s.completionPoints
}

func (s *Session) dispatch(e Event) {
	// The spawn line frees up once a receptor has caught a marble.
	if e.Kind == EventAccepted {
		s.nexus.SetOccupied(false)
	}
	if s.recording != nil {
		*s.recording = append(*s.recording, e)
	}
	for _, l := range s.listeners {
		l.OnEvent(e)
	}
}
