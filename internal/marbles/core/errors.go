package core

import (
	"errors"
	"fmt"
)

// Precondition failures. Callers are expected to check Accepts, CanRelease
// or Occupied before issuing the command; these are returned, never panicked.
var (
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrTileInUse         = errors.New("tile already placed in another cell")
	ErrForeignContext    = errors.New("nexus belongs to another session")
	ErrIllegalTransfer   = errors.New("tile does not accept marble")
	ErrSlotOccupied      = errors.New("receptor slot occupied")
	ErrReceptorLocked    = errors.New("receptor locked")
	ErrSlotEmpty         = errors.New("receptor slot empty")
	ErrReceptorNotPlaced = errors.New("receptor not placed")
	ErrCannotRelease     = errors.New("neighbor cannot take marble")
	ErrUnpaired          = errors.New("teleporter has no destination")
	ErrNoSession         = errors.New("tile is not part of a session")

	// ErrNexusOccupied is the expected, frequent answer to Spawn while a
	// marble is still live on the spawn line. It is returned unwrapped.
	ErrNexusOccupied = errors.New("nexus occupied")
	ErrNexusBlocked  = errors.New("spawning nexus is holding a marble")
)

// TransferError describes a failed marble operation on a tile.
type TransferError struct {
	Op  string // "accept", "release", "place", ...
	At  Coord  // Cell of the tile, zero when the tile is not placed
	Dir Dir    // Side of the tile involved
	Err error  // One of the sentinel errors above
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s at %s: %v", e.Op, e.Dir, e.At, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
