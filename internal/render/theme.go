package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

// Theme contains all configurable visual styles for the board dump.
type Theme struct {
	// Marble colors
	Blue   lipgloss.Style
	Green  lipgloss.Style
	Red    lipgloss.Style
	Yellow lipgloss.Style
	Joker  lipgloss.Style

	// Tile styles
	Empty      lipgloss.Style
	Track      lipgloss.Style
	Modifier   lipgloss.Style
	Teleporter lipgloss.Style
	Nexus      lipgloss.Style
	Receptor   lipgloss.Style
	Completed  lipgloss.Style

	// HUD line style
	HUD lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Joker:  lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),

		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Track:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Modifier:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Teleporter: lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true), // Medium purple
		Nexus:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Receptor:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Completed:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),

		HUD: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// colorStyle returns the style for a marble color.
func (t Theme) colorStyle(c core.Color) lipgloss.Style {
	switch c {
	case core.ColorBlue:
		return t.Blue
	case core.ColorGreen:
		return t.Green
	case core.ColorRed:
		return t.Red
	case core.ColorYellow:
		return t.Yellow
	default:
		return t.Joker
	}
}

func (t Theme) style(g glyph) lipgloss.Style {
	switch g.kind {
	case kindMarble:
		return t.colorStyle(g.color)
	case kindModifier:
		if g.r >= 'a' && g.r <= 'z' {
			return t.colorStyle(g.color)
		}
		return t.Modifier
	case kindTrack:
		return t.Track
	case kindTeleporter:
		return t.Teleporter
	case kindNexus:
		return t.Nexus
	case kindReceptor:
		return t.Receptor
	case kindCompleted:
		return t.Completed
	default:
		return t.Empty
	}
}

// Styled renders the same layout as ASCII with lipgloss colors.
func Styled(s *core.Session, theme Theme) string {
	return draw(s,
		func(g glyph) string { return theme.style(g).Render(string(g.r)) },
		func(line string) string { return theme.HUD.Render(line) },
	)
}

// Options controls how Write renders.
type Options struct {
	Color bool
	Theme Theme
}

// DetectOptions enables color when f is a terminal.
func DetectOptions(f *os.File) Options {
	return Options{
		Color: IsTerminal(f),
		Theme: DefaultTheme(),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal behind f, or fallback.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Write renders s to w according to opts.
func Write(w io.Writer, s *core.Session, opts Options) error {
	out := ASCII(s)
	if opts.Color {
		out = Styled(s, opts.Theme)
	}
	_, err := io.WriteString(w, out)
	return err
}
