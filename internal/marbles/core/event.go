package core

// EventKind identifies a marble notification.
type EventKind uint8

const (
	EventAccepted EventKind = iota // A receptor took a marble into a slot
	EventReleased                  // A receptor handed a slot's marble to a neighbor
	EventDisposed                  // A marble left play for good
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventAccepted:
		return "accepted"
	case EventReleased:
		return "released"
	case EventDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously while the command that caused it runs.
type Event struct {
	Kind   EventKind
	Tile   Tile
	At     Coord
	Dir    Dir
	Marble Marble
}

// Listener receives marble notifications.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}
