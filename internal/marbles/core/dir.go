// Package core provides the simulation core of the Marbles puzzle board.
// This package is UI-agnostic and deterministic: given the same board and
// the same random source, every command produces the same result.
package core

import "strings"

// Dir is one of the four compass directions, in clockwise order.
type Dir uint8

const (
	DirTop Dir = iota
	DirRight
	DirBottom
	DirLeft
)

const dirCount = 4

// AllDirs returns the four directions in clockwise order starting at Top.
func AllDirs() []Dir {
	return []Dir{DirTop, DirRight, DirBottom, DirLeft}
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirTop:
		return "top"
	case DirRight:
		return "right"
	case DirBottom:
		return "bottom"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Dir) Valid() bool {
	return d < dirCount
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Top decreases Y, Bottom increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirTop:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirBottom:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the inverse direction (Top<->Bottom, Right<->Left).
func (d Dir) Opposite() Dir {
	return d.Rotate(2)
}

// Rotate advances the direction n steps clockwise. Negative n rotates
// counter-clockwise.
func (d Dir) Rotate(n int) Dir {
	return Dir(((int(d)+n)%dirCount + dirCount) % dirCount)
}

// ParseDir converts a string to a Dir.
// Returns DirTop and false if the string is not recognized.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(s) {
	case "top", "up", "t", "u", "n", "north":
		return DirTop, true
	case "right", "r", "e", "east":
		return DirRight, true
	case "bottom", "down", "b", "d", "s", "south":
		return DirBottom, true
	case "left", "l", "w", "west":
		return DirLeft, true
	default:
		return DirTop, false
	}
}
