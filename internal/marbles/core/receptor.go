package core

import "fmt"

// Slot is one directional marble position inside a receptor.
type Slot struct {
	Dir    Dir
	Marble Marble // Valid only when Filled is true
	Filled bool
}

// CompletionRule decides whether a receptor has reached its goal.
type CompletionRule func(r *Receptor) bool

// MatchingCompletion is the default rule: all four slots are filled and the
// marbles share one color, jokers standing in for any color.
func MatchingCompletion(r *Receptor) bool {
	if !r.Full() {
		return false
	}
	target := ColorJoker
	for _, s := range r.slots {
		if s.Marble.IsJoker() {
			continue
		}
		if target == ColorJoker {
			target = s.Marble.Color
			continue
		}
		if s.Marble.Color != target {
			return false
		}
	}
	return true
}

// FullCompletion completes a receptor as soon as all four slots are filled.
func FullCompletion(r *Receptor) bool {
	return r.Full()
}

// Receptor is a terminal tile with one slot per side. A marble entering from
// side d lands in slot d. Rotation is presentation only: slots stay keyed by
// absolute direction.
//
// Slot lifecycle: empty -> filled -> released (empty again), or filled for
// good once the receptor completes and locks itself.
type Receptor struct {
	tileBase
	slots     [dirCount]Slot
	locked    bool
	completed bool
	rotation  int
	powerUp   PowerUp
	listeners []Listener
}

// NewReceptor creates an unlocked receptor with four empty slots.
func NewReceptor() *Receptor {
	r := &Receptor{}
	for _, d := range AllDirs() {
		r.slots[d].Dir = d
	}
	return r
}

// AllowsConnection is true on every side: each side has a slot.
func (r *Receptor) AllowsConnection(d Dir) bool {
	return d.Valid()
}

// Accepts reports whether slot d can take a marble.
func (r *Receptor) Accepts(d Dir, _ Marble) bool {
	return d.Valid() && !r.locked && !r.slots[d].Filled
}

// Accept stores m in slot d and notifies listeners. If that completes the
// receptor, it locks, its marbles are disposed, the session is credited and
// the attached power-up is activated. An activation error is returned after
// the marble has been stored.
func (r *Receptor) Accept(d Dir, m Marble) error {
	if !d.Valid() {
		return r.transferError("accept", d, ErrIllegalTransfer)
	}
	if r.slots[d].Filled {
		return r.transferError("accept", d, ErrSlotOccupied)
	}
	if r.locked {
		return r.transferError("accept", d, ErrReceptorLocked)
	}
	r.slots[d] = Slot{Dir: d, Marble: m, Filled: true}
	r.emit(EventAccepted, d, m)

	if !r.completed && r.rule()(r) {
		return r.complete()
	}
	return nil
}

func (r *Receptor) rule() CompletionRule {
	if s := r.Session(); s != nil && s.completion != nil {
		return s.completion
	}
	return MatchingCompletion
}

func (r *Receptor) complete() error {
	r.completed = true
	r.locked = true
	for _, s := range r.slots {
		if s.Filled {
			r.emit(EventDisposed, s.Dir, s.Marble)
		}
	}
	if s := r.Session(); s != nil {
		s.receptorCompleted(r)
	}
	if r.powerUp != nil {
		if err := r.powerUp.Activate(r); err != nil {
			return fmt.Errorf("activate %s: %w", r.powerUp.Kind(), err)
		}
	}
	return nil
}

// CanRelease reports whether Release(d) would succeed.
func (r *Receptor) CanRelease(d Dir) bool {
	return r.releaseCheck(d) == nil
}

func (r *Receptor) releaseCheck(d Dir) error {
	if !d.Valid() || !r.slots[d].Filled {
		return ErrSlotEmpty
	}
	if !r.placed {
		return ErrReceptorNotPlaced
	}
	if r.locked {
		return ErrReceptorLocked
	}
	n := r.neighbor(d)
	in := d.Opposite()
	if n == nil || !n.AllowsConnection(in) || !n.Accepts(in, r.slots[d].Marble) {
		return ErrCannotRelease
	}
	return nil
}

// Release hands the marble in slot d to the neighbor on side d, which
// receives it on the facing side.
func (r *Receptor) Release(d Dir) error {
	if err := r.releaseCheck(d); err != nil {
		return r.transferError("release", d, err)
	}
	m := r.slots[d].Marble
	r.slots[d] = Slot{Dir: d}
	if err := r.neighbor(d).Accept(d.Opposite(), m); err != nil {
		r.slots[d] = Slot{Dir: d, Marble: m, Filled: true}
		return err
	}
	r.emit(EventReleased, d, m)
	return nil
}

// Lock stops the receptor from accepting or releasing. Idempotent.
func (r *Receptor) Lock() {
	r.locked = true
}

// Unlock reverses Lock. Idempotent. A completed receptor stays completed.
func (r *Receptor) Unlock() {
	r.locked = false
}

// Locked reports whether the receptor is locked.
func (r *Receptor) Locked() bool {
	return r.locked
}

// Completed reports whether the receptor reached its goal.
func (r *Receptor) Completed() bool {
	return r.completed
}

// Rotate turns the receptor n quarter turns clockwise. Visual only.
func (r *Receptor) Rotate(n int) {
	r.rotation = int(Dir(r.rotation).Rotate(n))
}

// Rotation returns the number of clockwise quarter turns, 0-3.
func (r *Receptor) Rotation() int {
	return r.rotation
}

// Slot returns the slot on side d.
func (r *Receptor) Slot(d Dir) Slot {
	if !d.Valid() {
		return Slot{Dir: d}
	}
	return r.slots[d]
}

// Slots returns all four slots in direction order.
func (r *Receptor) Slots() []Slot {
	out := make([]Slot, dirCount)
	copy(out, r.slots[:])
	return out
}

// FilledCount returns the number of occupied slots.
func (r *Receptor) FilledCount() int {
	n := 0
	for _, s := range r.slots {
		if s.Filled {
			n++
		}
	}
	return n
}

// Full reports whether every slot is occupied.
func (r *Receptor) Full() bool {
	return r.FilledCount() == dirCount
}

// SetPowerUp attaches p, replacing any previous power-up. nil detaches.
func (r *Receptor) SetPowerUp(p PowerUp) {
	r.powerUp = p
}

// PowerUp returns the attached power-up, or nil.
func (r *Receptor) PowerUp() PowerUp {
	return r.powerUp
}

// AddListener registers l for this receptor's notifications.
func (r *Receptor) AddListener(l Listener) {
	r.listeners = append(r.listeners, l)
}

func (r *Receptor) emit(kind EventKind, d Dir, m Marble) {
	e := Event{Kind: kind, Tile: r, At: r.at, Dir: d, Marble: m}
	for _, l := range r.listeners {
		l.OnEvent(e)
	}
	if s := r.Session(); s != nil {
		s.dispatch(e)
	}
}
