package core

import (
	"math"
	"sync"
)

// NexusContext is the spawn state shared by every nexus tile of one session:
// the queue of upcoming colors, the joker probability, the random source and
// the flag saying a spawned marble is still live on the spawn line.
//
// The queue is never empty after a read. Methods are safe for concurrent use;
// Poll and Generate consume randomness, so concurrent callers still race on
// which of them gets which color.
type NexusContext struct {
	mu               sync.Mutex
	queue            []Color
	occupied         bool
	jokerProbability float64
	rng              Random
}

// NewNexusContext creates a context starting with initial. An empty initial
// queue is topped up with one generated color. A nil rng uses NewRNG(0).
// jokerProbability is clamped to [0, 1].
func NewNexusContext(initial []Color, rng Random, jokerProbability float64) *NexusContext {
	if rng == nil {
		rng = NewRNG(0)
	}
	c := &NexusContext{
		queue:            append([]Color(nil), initial...),
		jokerProbability: clampProbability(jokerProbability),
		rng:              rng,
	}
	c.refill()
	return c
}

func clampProbability(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Generate draws a new color: Joker with the configured probability,
// otherwise a uniform pick from Palette(). It does not touch the queue.
func (c *NexusContext) Generate() Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generate()
}

func (c *NexusContext) generate() Color {
	if c.rng.Float() < c.jokerProbability {
		return ColorJoker
	}
	palette := Palette()
	return palette[c.rng.Intn(len(palette))]
}

func (c *NexusContext) refill() {
	if len(c.queue) == 0 {
		c.queue = append(c.queue, c.generate())
	}
}

// Peek returns the next color without removing it.
func (c *NexusContext) Peek() Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue[0]
}

// Poll removes and returns the next color, generating a replacement if the
// queue ran dry.
func (c *NexusContext) Poll() Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.queue[0]
	c.queue = c.queue[1:]
	c.refill()
	return next
}

// Add appends colors to the back of the queue.
func (c *NexusContext) Add(colors ...Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, colors...)
}

// Len returns the queue length. Always at least 1.
func (c *NexusContext) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Queue returns a copy of the upcoming colors, front first.
func (c *NexusContext) Queue() []Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Color(nil), c.queue...)
}

// Occupied reports whether a spawned marble is still live on the spawn line.
func (c *NexusContext) Occupied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.occupied
}

// SetOccupied sets the live-marble flag.
func (c *NexusContext) SetOccupied(occupied bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.occupied = occupied
}

// JokerProbability returns the configured joker probability.
func (c *NexusContext) JokerProbability() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jokerProbability
}

// SetJokerProbability changes the probability for future draws, clamped to
// [0, 1]. Colors already queued are kept.
func (c *NexusContext) SetJokerProbability(p float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jokerProbability = clampProbability(p)
}

// Nexus is a segment of the spawn line. Its top side is the spawn boundary
// and has no connector. A marble on the line drops to the bottom when it
// can, otherwise keeps rolling straight; one rising from the bottom tries
// right, then left. If nothing takes it, the segment holds it.
type Nexus struct {
	tileBase
	holder
	ctx *NexusContext
}

// NewNexus creates a spawn line segment sharing ctx.
func NewNexus(ctx *NexusContext) *Nexus {
	return &Nexus{ctx: ctx}
}

// Context returns the shared spawn context.
func (n *Nexus) Context() *NexusContext {
	return n.ctx
}

// AllowsConnection is true on every side but the top.
func (n *Nexus) AllowsConnection(d Dir) bool {
	return d.Valid() && d != DirTop
}

// Accepts reports whether the segment is free to take a marble from d.
func (n *Nexus) Accepts(d Dir, _ Marble) bool {
	return n.AllowsConnection(d) && !n.full
}

// Accept routes m onward, or holds it if no neighbor takes it.
func (n *Nexus) Accept(d Dir, m Marble) error {
	if !n.Accepts(d, m) {
		return n.transferError("accept", d, ErrIllegalTransfer)
	}
	return n.receive(d, m)
}

func (n *Nexus) receive(from Dir, m Marble) error {
	ok, err := n.pass(m, n.exits(from)...)
	if !ok {
		n.hold(m, from)
	}
	return err
}

func (n *Nexus) exits(from Dir) []Dir {
	if from == DirBottom {
		return []Dir{DirRight, DirLeft}
	}
	if from == DirTop {
		return []Dir{DirBottom}
	}
	return []Dir{DirBottom, from.Opposite()}
}

// Flush retries routing a held marble.
func (n *Nexus) Flush() (bool, error) {
	if !n.full {
		return false, nil
	}
	m, from := n.marble, n.from
	n.clear()
	ok, err := n.pass(m, n.exits(from)...)
	if !ok {
		n.hold(m, from)
	}
	return ok, err
}

// SpawningNexus is the nexus segment that injects new marbles. Marbles start
// travelling toward its spawn direction; DirBottom means they come in through
// the spawn boundary and drop straight down.
type SpawningNexus struct {
	Nexus
	dir Dir
}

// NewSpawningNexus creates a spawner sharing ctx. Invalid and upward
// directions fall back to DirRight.
func NewSpawningNexus(ctx *NexusContext, dir Dir) *SpawningNexus {
	if !dir.Valid() || dir == DirTop {
		dir = DirRight
	}
	return &SpawningNexus{Nexus: Nexus{ctx: ctx}, dir: dir}
}

// SpawnDir returns the direction new marbles travel.
func (s *SpawningNexus) SpawnDir() Dir {
	return s.dir
}

// CanSpawn reports whether Spawn would succeed.
func (s *SpawningNexus) CanSpawn() bool {
	return !s.ctx.Occupied() && !s.full
}

// Spawn takes the next color from the shared queue and injects the marble
// into the grid. ErrNexusOccupied is returned as is and costs nothing;
// the queue is only consumed when the spawn goes through.
func (s *SpawningNexus) Spawn() (Marble, error) {
	if s.ctx.Occupied() {
		return Marble{}, ErrNexusOccupied
	}
	from := s.dir.Opposite()
	if s.full {
		return Marble{}, s.transferError("spawn", from, ErrNexusBlocked)
	}
	m := NewMarble(s.ctx.Poll())
	// Set before injecting: a receptor taking the marble clears it again
	// during receive.
	s.ctx.SetOccupied(true)
	return m, s.receive(from, m)
}
