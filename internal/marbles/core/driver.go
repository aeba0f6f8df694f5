package core

// ActionKind represents the move the autoplayer made in a step.
type ActionKind int

const (
	ActionNone    ActionKind = iota // Nothing could be done
	ActionSpawn                     // A spawner injected a marble
	ActionFlush                     // A parked marble moved on
	ActionRelease                   // A receptor released a slot
)

// String returns the string representation of an action.
func (a ActionKind) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSpawn:
		return "spawn"
	case ActionFlush:
		return "flush"
	case ActionRelease:
		return "release"
	default:
		return "unknown"
	}
}

// StepResult contains information about what happened during one AutoStep.
type StepResult struct {
	Step   uint64
	Action ActionKind
	At     Coord
	Dir    Dir
	Marble Marble
	Events []Event
	Err    error
	Won    bool
}

// AutoStep performs one move using a simple deterministic policy:
//  1. Spawn from the first spawner that can
//  2. Else move the first parked marble that can move (row-major order)
//  3. Else release, from an incomplete receptor, the first marble that does
//     not match the color the receptor is collecting
//
// It is the driving loop used by the CLI and tests; interactive play
// issues the same commands directly.
func (s *Session) AutoStep() StepResult {
	events := make([]Event, 0)
	s.recording = &events
	defer func() { s.recording = nil }()

	result := s.autoMove()
	s.steps++
	result.Step = s.steps
	result.Events = events
	result.Won = s.IsWon()
	return result
}

func (s *Session) autoMove() StepResult {
	for _, sp := range s.Spawners() {
		if !sp.CanSpawn() {
			continue
		}
		m, err := sp.Spawn()
		return StepResult{Action: ActionSpawn, At: sp.at, Dir: sp.dir, Marble: m, Err: err}
	}

	var moved *StepResult
	s.grid.Each(func(c *Cell) {
		if moved != nil {
			return
		}
		f, ok := c.tile.(Flusher)
		if !ok {
			return
		}
		m, held := f.Held()
		if !held {
			return
		}
		if ok, err := f.Flush(); ok || err != nil {
			moved = &StepResult{Action: ActionFlush, At: c.at, Marble: m, Err: err}
		}
	})
	if moved != nil {
		return *moved
	}

	for _, r := range s.Receptors() {
		if r.Completed() || r.Locked() {
			continue
		}
		target := collecting(r)
		for _, d := range AllDirs() {
			slot := r.slots[d]
			if !slot.Filled || slot.Marble.Matches(target) || !r.CanRelease(d) {
				continue
			}
			err := r.Release(d)
			return StepResult{Action: ActionRelease, At: r.at, Dir: d, Marble: slot.Marble, Err: err}
		}
	}

	return StepResult{Action: ActionNone}
}

// collecting returns the color of the first non-joker marble in r, or
// ColorJoker if there is none.
func collecting(r *Receptor) Color {
	for _, slot := range r.slots {
		if slot.Filled && !slot.Marble.IsJoker() {
			return slot.Marble.Color
		}
	}
	return ColorJoker
}

// Steps returns how many AutoSteps have run.
func (s *Session) Steps() uint64 {
	return s.steps
}

// RunUntilIdle runs AutoStep until the board is won, nothing can move, or
// maxSteps is reached. Returns steps taken and whether the board was won.
func (s *Session) RunUntilIdle(maxSteps int) (int, bool) {
	steps := 0
	for steps < maxSteps {
		result := s.AutoStep()
		steps++
		if result.Won {
			return steps, true
		}
		if result.Action == ActionNone || result.Err != nil {
			break
		}
	}
	return steps, s.IsWon()
}
