package core

// Tile is the capability set every grid occupant implements.
//
// In every method d is the side of this tile the marble crosses: a marble
// moving right enters its next tile on DirLeft.
type Tile interface {
	// AllowsConnection reports whether the tile has a connector on side d,
	// regardless of what it currently holds.
	AllowsConnection(d Dir) bool

	// Accepts reports whether Accept(d, m) would succeed right now.
	// It never mutates state.
	Accepts(d Dir, m Marble) bool

	// Accept takes ownership of m entering from side d. It fails with
	// ErrIllegalTransfer (or a more specific error) when Accepts is false.
	Accept(d Dir, m Marble) error

	// Cell returns the cell holding this tile, or nil if it is not placed.
	Cell() *Cell

	base() *tileBase
}

// tileBase is the non-owning locator every tile embeds. The grid owns the
// tile; the tile only remembers where it sits so it can find its neighbors
// and its session.
type tileBase struct {
	grid   *Grid
	at     Coord
	placed bool
}

func (b *tileBase) base() *tileBase {
	return b
}

// Cell returns the cell holding this tile, or nil if it is not placed.
func (b *tileBase) Cell() *Cell {
	if !b.placed {
		return nil
	}
	return b.grid.Cell(b.at)
}

// Session returns the session owning the tile's grid, or nil.
func (b *tileBase) Session() *Session {
	if !b.placed {
		return nil
	}
	return b.grid.session
}

func (b *tileBase) neighbor(d Dir) Tile {
	if !b.placed {
		return nil
	}
	return b.grid.Tile(b.at.Step(d))
}

// clearAhead reports whether a marble leaving across side d would not be
// refused. A side with no connected neighbor is a dead end and counts as
// clear: the marble just stays where it is.
func (b *tileBase) clearAhead(d Dir, m Marble) bool {
	n := b.neighbor(d)
	if n == nil {
		return true
	}
	in := d.Opposite()
	if !n.AllowsConnection(in) {
		return true
	}
	return n.Accepts(in, m)
}

// pass hands m to the first neighbor along exits that connects back and
// accepts it. Returns false if nobody took the marble.
func (b *tileBase) pass(m Marble, exits ...Dir) (bool, error) {
	for _, d := range exits {
		n := b.neighbor(d)
		if n == nil {
			continue
		}
		in := d.Opposite()
		if n.AllowsConnection(in) && n.Accepts(in, m) {
			return true, n.Accept(in, m)
		}
	}
	return false, nil
}

func (b *tileBase) transferError(op string, d Dir, err error) error {
	return &TransferError{Op: op, At: b.at, Dir: d, Err: err}
}

// holder is a single-marble buffer for pass-through tiles whose exit is
// currently a dead end.
type holder struct {
	marble Marble
	from   Dir
	full   bool
}

// Held returns the marble parked on the tile, if any.
func (h *holder) Held() (Marble, bool) {
	return h.marble, h.full
}

func (h *holder) hold(m Marble, from Dir) {
	h.marble, h.from, h.full = m, from, true
}

func (h *holder) clear() {
	*h = holder{}
}

// Flusher is implemented by tiles that can park a marble and retry
// forwarding it later.
type Flusher interface {
	Tile
	Held() (Marble, bool)
	Flush() (bool, error)
}

// Empty is the default occupant of every cell. It connects to nothing.
type Empty struct {
	tileBase
}

// NewEmpty returns an empty tile.
func NewEmpty() *Empty {
	return &Empty{}
}

// AllowsConnection always returns false.
func (e *Empty) AllowsConnection(Dir) bool { return false }

// Accepts always returns false.
func (e *Empty) Accepts(Dir, Marble) bool { return false }

// Accept always fails.
func (e *Empty) Accept(d Dir, _ Marble) error {
	return e.transferError("accept", d, ErrIllegalTransfer)
}
