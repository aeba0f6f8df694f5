package core

// Teleporter is a track whose marbles continue their journey from a paired
// teleporter elsewhere on the board, keeping their direction of travel.
type Teleporter struct {
	tileBase
	holder
	track       *Track
	destination *Teleporter
}

// NewTeleporter wraps base. It must be paired before it can carry marbles.
func NewTeleporter(base *Track) *Teleporter {
	return &Teleporter{track: base.clone()}
}

// NewTeleporterPair creates two teleporters pointing at each other.
func NewTeleporterPair(a, b *Track) (*Teleporter, *Teleporter) {
	ta, tb := NewTeleporter(a), NewTeleporter(b)
	ta.destination = tb
	tb.destination = ta
	return ta, tb
}

// SetDestination points t at dst. Pairing is expected to be symmetric; use
// NewTeleporterPair or call SetDestination on both ends.
func (t *Teleporter) SetDestination(dst *Teleporter) {
	t.destination = dst
}

// Destination returns the paired teleporter, or nil.
func (t *Teleporter) Destination() *Teleporter {
	return t.destination
}

// Paired reports whether t and its destination point at each other.
func (t *Teleporter) Paired() bool {
	return t.destination != nil && t.destination.destination == t
}

// Track returns the base track.
func (t *Teleporter) Track() *Track {
	return t.track
}

// AllowsConnection reports whether the base track has a connector on side d.
func (t *Teleporter) AllowsConnection(d Dir) bool {
	return t.track.AllowsConnection(d)
}

// Accepts reports whether a marble entering from d can be carried to the
// destination and continue from there.
func (t *Teleporter) Accepts(d Dir, m Marble) bool {
	if t.full || t.destination == nil || !t.track.admits(d, m) {
		return false
	}
	return t.destination.canArrive(d, m)
}

func (t *Teleporter) canArrive(d Dir, m Marble) bool {
	if t.full || !t.track.admits(d, m) {
		return false
	}
	return t.clearAhead(t.track.exitFor(d), m)
}

// Accept relocates m to the destination, which treats it as entering from
// the same side d.
func (t *Teleporter) Accept(d Dir, m Marble) error {
	if t.destination == nil {
		return t.transferError("accept", d, ErrUnpaired)
	}
	if !t.Accepts(d, m) {
		return t.transferError("accept", d, ErrIllegalTransfer)
	}
	return t.destination.arrive(d, m)
}

func (t *Teleporter) arrive(d Dir, m Marble) error {
	ok, err := t.pass(m, t.track.exitFor(d))
	if !ok {
		t.hold(m, d)
	}
	return err
}

// Flush retries forwarding a marble parked at this end.
func (t *Teleporter) Flush() (bool, error) {
	if !t.full {
		return false, nil
	}
	m, from := t.marble, t.from
	t.clear()
	ok, err := t.pass(m, t.track.exitFor(from))
	if !ok {
		t.hold(m, from)
	}
	return ok, err
}
