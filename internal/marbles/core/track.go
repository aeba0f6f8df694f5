package core

import "fmt"

// ModifierKind identifies a restriction layered on top of a base track.
type ModifierKind uint8

const (
	ModOneWay ModifierKind = iota // Marbles may only leave toward Dir
	ModFilter                     // Only marbles matching Color may enter
)

// String returns the string representation of a modifier kind.
func (k ModifierKind) String() string {
	switch k {
	case ModOneWay:
		return "one-way"
	case ModFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// Modifier is one restriction on a track. Only the field matching Kind is used.
type Modifier struct {
	Kind  ModifierKind
	Dir   Dir   // ModOneWay: exit direction
	Color Color // ModFilter: required color
}

// String returns a short description of the modifier.
func (m Modifier) String() string {
	switch m.Kind {
	case ModOneWay:
		return fmt.Sprintf("one-way(%s)", m.Dir)
	case ModFilter:
		return fmt.Sprintf("filter(%s)", m.Color)
	default:
		return "unknown"
	}
}

// Track is a pass-through connector with exactly two ports. A marble entering
// one port leaves through the other, subject to the modifiers, which are
// folded in order on every query.
type Track struct {
	tileBase
	holder
	ports [2]Dir
	mods  []Modifier
}

// NewTrack creates a track connecting ports a and b. Opposite ports make a
// straight track, adjacent ones a curve.
func NewTrack(a, b Dir) *Track {
	return &Track{ports: [2]Dir{a, b}}
}

// NewHorizontal creates a straight Left-Right track.
func NewHorizontal() *Track {
	return NewTrack(DirLeft, DirRight)
}

// NewVertical creates a straight Top-Bottom track.
func NewVertical() *Track {
	return NewTrack(DirTop, DirBottom)
}

// NewOneWay returns a copy of base that only lets marbles leave toward exit.
// Its only entry is exit.Opposite(), so it is useful on straight tracks.
func NewOneWay(base *Track, exit Dir) *Track {
	return base.with(Modifier{Kind: ModOneWay, Dir: exit})
}

// NewFilter returns a copy of base that only admits marbles matching c.
// Jokers always pass.
func NewFilter(base *Track, c Color) *Track {
	return base.with(Modifier{Kind: ModFilter, Color: c})
}

// clone copies the track layout without any parked marble or placement.
func (t *Track) clone() *Track {
	mods := make([]Modifier, len(t.mods))
	copy(mods, t.mods)
	return &Track{ports: t.ports, mods: mods}
}

func (t *Track) with(m Modifier) *Track {
	c := t.clone()
	c.mods = append(c.mods, m)
	return c
}

// Ports returns the two connector sides of the base track.
func (t *Track) Ports() (Dir, Dir) {
	return t.ports[0], t.ports[1]
}

// Straight reports whether the ports are opposite each other.
func (t *Track) Straight() bool {
	return t.ports[0].Opposite() == t.ports[1]
}

// Modifiers returns a copy of the modifier list, innermost first.
func (t *Track) Modifiers() []Modifier {
	mods := make([]Modifier, len(t.mods))
	copy(mods, t.mods)
	return mods
}

// AllowsConnection reports whether side d has a connector.
func (t *Track) AllowsConnection(d Dir) bool {
	if d != t.ports[0] && d != t.ports[1] {
		return false
	}
	for _, m := range t.mods {
		if m.Kind == ModOneWay && d != m.Dir && d != m.Dir.Opposite() {
			return false
		}
	}
	return true
}

// admits folds the modifiers over an entry from side d, ignoring occupancy.
// One-way modifiers only narrow the connectors (see AllowsConnection); any
// connected side is an entry, and exitFor sends the marble out the one-way
// side, back the way it came if it entered there.
func (t *Track) admits(d Dir, m Marble) bool {
	if !t.AllowsConnection(d) {
		return false
	}
	for _, mod := range t.mods {
		if mod.Kind == ModFilter && !m.Matches(mod.Color) {
			return false
		}
	}
	return true
}

// exitFor returns the side a marble entering from d leaves through.
func (t *Track) exitFor(d Dir) Dir {
	exit := t.ports[0]
	if d == t.ports[0] {
		exit = t.ports[1]
	}
	for _, mod := range t.mods {
		if mod.Kind == ModOneWay {
			exit = mod.Dir
		}
	}
	return exit
}

// Accepts reports whether a marble entering from d would be taken: the port
// and modifiers admit it, the track is not already holding a marble, and the
// neighbor past the exit (if connected) would take it in turn.
func (t *Track) Accepts(d Dir, m Marble) bool {
	if t.full || !t.admits(d, m) {
		return false
	}
	return t.clearAhead(t.exitFor(d), m)
}

// Accept forwards m to the neighbor past the exit port, or parks it on the
// track if the exit is a dead end.
//
// Forwarding recurses through chained tracks. A loop of tracks with no
// receptor or dead end never terminates; boards must not contain one.
func (t *Track) Accept(d Dir, m Marble) error {
	if !t.Accepts(d, m) {
		return t.transferError("accept", d, ErrIllegalTransfer)
	}
	ok, err := t.pass(m, t.exitFor(d))
	if !ok {
		t.hold(m, d)
	}
	return err
}

// Flush retries forwarding a parked marble. Returns true if it moved.
func (t *Track) Flush() (bool, error) {
	if !t.full {
		return false, nil
	}
	m, from := t.marble, t.from
	t.clear()
	ok, err := t.pass(m, t.exitFor(from))
	if !ok {
		t.hold(m, from)
	}
	return ok, err
}
