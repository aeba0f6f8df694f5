// Package render draws a Marbles session as text for debugging, tests
// (golden outputs) and the CLI.
package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

// glyphKind selects the style a glyph is drawn with.
type glyphKind int

const (
	kindEmpty glyphKind = iota
	kindTrack
	kindModifier
	kindTeleporter
	kindNexus
	kindReceptor
	kindCompleted
	kindMarble
)

// glyph is one rendered cell.
type glyph struct {
	r     rune
	kind  glyphKind
	color core.Color // kindMarble and filters
}

// cellGlyph picks the character for a tile.
//
// Legend:
//   - '.' empty, '-' '|' straight tracks, '/' '\' curves
//   - '>' '<' '^' 'v' one-way tracks, lowercase letter for a color filter
//   - 'T' teleporter, '=' nexus, 'S' spawner
//   - 'O' empty receptor, '1'-'3' partly filled, '@' completed, '#' locked
//   - A parked marble shows as its uppercase color letter, '*' for a joker
func cellGlyph(t core.Tile) glyph {
	if f, ok := t.(core.Flusher); ok {
		if m, held := f.Held(); held {
			return glyph{r: m.Color.Char(), kind: kindMarble, color: m.Color}
		}
	}

	switch v := t.(type) {
	case *core.Track:
		return trackGlyph(v)
	case *core.Teleporter:
		return glyph{r: 'T', kind: kindTeleporter}
	case *core.SpawningNexus:
		return glyph{r: 'S', kind: kindNexus}
	case *core.Nexus:
		return glyph{r: '=', kind: kindNexus}
	case *core.Receptor:
		return receptorGlyph(v)
	default:
		return glyph{r: '.', kind: kindEmpty}
	}
}

func trackGlyph(t *core.Track) glyph {
	mods := t.Modifiers()
	for i := len(mods) - 1; i >= 0; i-- {
		switch mods[i].Kind {
		case core.ModOneWay:
			return glyph{r: arrow(mods[i].Dir), kind: kindModifier}
		case core.ModFilter:
			c := mods[i].Color
			return glyph{r: lower(c.Char()), kind: kindModifier, color: c}
		}
	}

	a, b := t.Ports()
	if t.Straight() {
		if a == core.DirLeft || a == core.DirRight {
			return glyph{r: '-', kind: kindTrack}
		}
		return glyph{r: '|', kind: kindTrack}
	}
	// Curves joining top-left or bottom-right read as '/'.
	if has(a, b, core.DirTop) == has(a, b, core.DirLeft) {
		return glyph{r: '/', kind: kindTrack}
	}
	return glyph{r: '\\', kind: kindTrack}
}

func receptorGlyph(r *core.Receptor) glyph {
	switch {
	case r.Completed():
		return glyph{r: '@', kind: kindCompleted}
	case r.Locked():
		return glyph{r: '#', kind: kindReceptor}
	case r.FilledCount() == 0:
		return glyph{r: 'O', kind: kindReceptor}
	default:
		return glyph{r: rune('0' + r.FilledCount()), kind: kindReceptor}
	}
}

func has(a, b, d core.Dir) bool {
	return a == d || b == d
}

func arrow(d core.Dir) rune {
	switch d {
	case core.DirTop:
		return '^'
	case core.DirRight:
		return '>'
	case core.DirBottom:
		return 'v'
	default:
		return '<'
	}
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// ASCII creates a plain text representation of the session.
//
// Format:
//   - Header with step count, score, completed receptors and the spawn queue
//   - One character per cell (see cellGlyph)
//   - One line per receptor listing its slots
func ASCII(s *core.Session) string {
	return draw(s, func(g glyph) string { return string(g.r) }, nil)
}

// draw lays out the board with a per-glyph painter. decorate, when set, is
// applied to each full header/footer line.
func draw(s *core.Session, paint func(glyph) string, decorate func(string) string) string {
	var sb strings.Builder
	line := func(text string) {
		if decorate != nil {
			text = decorate(text)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	g := s.Grid()
	receptors := s.Receptors()

	line(fmt.Sprintf("Step: %d | Score: %d | Completed: %d/%d | Next: %s",
		s.Steps(), s.Score(), s.CompletedCount(), len(receptors), queueString(s.Nexus().Queue(), 5)))
	line(strings.Repeat("-", max(g.W, 10)))

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sb.WriteString(paint(cellGlyph(g.Tile(core.C(x, y)))))
		}
		sb.WriteString("\n")
	}

	line(strings.Repeat("-", max(g.W, 10)))
	for _, r := range receptors {
		line(receptorLine(r))
	}

	return sb.String()
}

func queueString(q []core.Color, maxShow int) string {
	var sb strings.Builder
	for i, c := range q {
		if i >= maxShow {
			sb.WriteString(fmt.Sprintf(" +%d", len(q)-maxShow))
			break
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteRune(c.Char())
	}
	return sb.String()
}

func receptorLine(r *core.Receptor) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("R%s:", r.Cell().At()))
	for _, slot := range r.Slots() {
		c := '.'
		if slot.Filled {
			c = slot.Marble.Color.Char()
		}
		sb.WriteString(fmt.Sprintf(" %s=%c", slot.Dir, c))
	}
	if p := r.PowerUp(); p != nil {
		sb.WriteString(fmt.Sprintf(" [%s]", p.Kind()))
	}
	switch {
	case r.Completed():
		sb.WriteString(" completed")
	case r.Locked():
		sb.WriteString(" locked")
	}
	return sb.String()
}
