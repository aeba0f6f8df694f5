package core

import (
	"fmt"
	"strings"
)

// Color is the type of a marble.
// The non-joker values are declared in palette order; random generation
// picks by index into Palette(), so reordering them changes seeded output.
type Color uint8

const (
	ColorBlue Color = iota
	ColorGreen
	ColorRed
	ColorYellow
	ColorJoker // Wildcard, matches every color
)

// Palette returns the non-joker colors in their fixed order.
func Palette() []Color {
	return []Color{ColorBlue, ColorGreen, ColorRed, ColorYellow}
}

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorJoker:
		return "joker"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorBlue:
		return 'B'
	case ColorGreen:
		return 'G'
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorJoker:
		return '*'
	default:
		return '?'
	}
}

// ParseColor converts a string to a Color.
// Returns ColorBlue and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "joker", "j", "*":
		return ColorJoker, true
	default:
		return ColorBlue, false
	}
}

// ParseColors converts a list of names, stopping at the first unknown one.
func ParseColors(names []string) ([]Color, error) {
	colors := make([]Color, 0, len(names))
	for _, n := range names {
		c, ok := ParseColor(n)
		if !ok {
			return nil, fmt.Errorf("unknown color %q", n)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// Marble is the token that travels the grid. It is a plain value: moving a
// marble copies it into the next holder and clears the previous one.
type Marble struct {
	Color Color
}

// NewMarble returns a marble of the given color.
func NewMarble(c Color) Marble {
	return Marble{Color: c}
}

// IsJoker reports whether the marble is a wildcard.
func (m Marble) IsJoker() bool {
	return m.Color == ColorJoker
}

// Matches reports whether the marble satisfies a color requirement.
// Jokers on either side always match.
func (m Marble) Matches(c Color) bool {
	return m.Color == ColorJoker || c == ColorJoker || m.Color == c
}

// String returns the color name of the marble.
func (m Marble) String() string {
	return m.Color.String()
}
