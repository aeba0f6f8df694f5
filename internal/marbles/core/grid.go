package core

import "fmt"

// Cell is one addressable position on the grid. It holds exactly one tile.
type Cell struct {
	at   Coord
	grid *Grid
	tile Tile
}

// At returns the cell coordinate.
func (c *Cell) At() Coord {
	return c.at
}

// Tile returns the current occupant.
func (c *Cell) Tile() Tile {
	return c.tile
}

// Neighbor returns the adjacent cell in direction d, or nil at the board edge.
func (c *Cell) Neighbor(d Dir) *Cell {
	return c.grid.Cell(c.at.Step(d))
}

// Grid represents the board as a rectangular grid of cells.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W       int // Width of the grid
	H       int // Height of the grid
	cells   []*Cell
	session *Session
}

// NewGrid creates a w x h grid with every cell holding an Empty tile.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{
		W:     w,
		H:     h,
		cells: make([]*Cell, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := C(x, y)
			cell := &Cell{at: c, grid: g}
			g.cells[g.index(c)] = cell
			g.attach(cell, NewEmpty())
		}
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Cell returns the cell at c, or nil if out of bounds.
func (g *Grid) Cell(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[g.index(c)]
}

// Tile returns the occupant at c, or nil if out of bounds.
func (g *Grid) Tile(c Coord) Tile {
	cell := g.Cell(c)
	if cell == nil {
		return nil
	}
	return cell.tile
}

// Session returns the session that owns the grid, or nil for a bare grid.
func (g *Grid) Session() *Session {
	return g.session
}

// Place puts t into the cell at (x, y), replacing the previous occupant.
// A tile lives in one cell for its whole life: placing a tile that already
// sits in a different cell fails with ErrTileInUse.
func (g *Grid) Place(t Tile, x, y int) error {
	c := C(x, y)
	if !g.InBounds(c) {
		return &TransferError{Op: "place", At: c, Err: ErrOutOfBounds}
	}
	b := t.base()
	if b.placed {
		if b.grid == g && b.at == c {
			return nil
		}
		return &TransferError{Op: "place", At: c, Err: ErrTileInUse}
	}
	g.attach(g.cells[g.index(c)], t)
	return nil
}

func (g *Grid) attach(cell *Cell, t Tile) {
	if cell.tile != nil {
		old := cell.tile.base()
		old.placed = false
		old.grid = nil
	}
	b := t.base()
	b.grid = g
	b.at = cell.at
	b.placed = true
	cell.tile = t
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(c *Cell)) {
	for _, cell := range g.cells {
		fn(cell)
	}
}

// Receptors returns every receptor on the grid in row-major order.
func (g *Grid) Receptors() []*Receptor {
	result := make([]*Receptor, 0)
	for _, cell := range g.cells {
		if r, ok := cell.tile.(*Receptor); ok {
			result = append(result, r)
		}
	}
	return result
}

// Spawners returns every spawning nexus on the grid in row-major order.
func (g *Grid) Spawners() []*SpawningNexus {
	result := make([]*SpawningNexus, 0)
	for _, cell := range g.cells {
		if s, ok := cell.tile.(*SpawningNexus); ok {
			result = append(result, s)
		}
	}
	return result
}

// String returns the grid dimensions.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.W, g.H)
}
