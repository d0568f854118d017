package game

import (
	"fmt"
	"time"
)

type State uint8

const (
	Approaching State = iota
	Hit
	Missed
	HeldInitial
	Holding
	Completed
	BrokenHeld
)

var stateNames = [...]string{
	Approaching: "approaching",
	Hit:         "hit",
	Missed:      "missed",
	HeldInitial: "held-initial",
	Holding:     "holding",
	Completed:   "completed",
	BrokenHeld:  "broken",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

// Outcome is what a single Advance did to a note.
type Outcome uint8

const (
	Unchanged Outcome = iota
	BecameMissed
	BecameCompleted
)

// NoteID is the index of the note's event in the chart timeline.
type NoteID int

// Note is a spawned HitEvent. Offset is the signed distance of the head
// from the hit line: negative while approaching, positive once past it.
type Note struct {
	ID     NoteID
	Event  HitEvent
	State  State
	Offset float64
	Length float64 // Hold only

	GrabOffset  float64       // Hold only, absolute offset at the grab
	TickedUntil time.Duration // Hold only, hold ticks have been granted up to here
}

func NewNote(id NoteID, e HitEvent, now time.Duration, speed float64) *Note {
	n := &Note{ID: id, Event: e, State: Approaching}
	if e.Kind == Hold {
		n.Length = Travel(e.Duration, speed)
	}
	n.Offset = Travel(now-e.Time, speed)
	return n
}

func (n *Note) Lane() int {
	return n.Event.Lane
}

// Tail is the offset of the far end of a hold. For taps it equals Offset.
func (n *Note) Tail() float64 {
	return n.Offset - n.Length
}

// Eligible notes can be judged by a key press.
func (n *Note) Eligible() bool {
	return n.State == Approaching
}

func (n *Note) Held() bool {
	return n.State == HeldInitial || n.State == Holding
}

func (n *Note) Terminal() bool {
	return n.State == Hit || n.State == Missed || n.State == Completed
}

// Gone reports whether the note should leave the arena. Broken holds stay
// as a ghost until their tail passes the hit line.
func (n *Note) Gone() bool {
	if n.State == BrokenHeld {
		return n.Tail() > 0
	}
	return n.Terminal()
}

// Distance is how far the closest point of the note is from the hit line.
func (n *Note) Distance() float64 {
	head, tail := n.Offset, n.Tail()
	switch {
	case tail <= 0 && head >= 0:
		return 0
	case head < 0:
		return -head
	}
	return tail
}

// Advance moves the note to its position at now and applies any
// time-driven transition.
func (n *Note) Advance(now time.Duration, speed float64, t *Tuning) Outcome {
	n.Offset = Travel(now-n.Event.Time, speed)
	switch n.State {
	case Approaching:
		if n.Offset > t.HitWindow {
			n.State = Missed
			return BecameMissed
		}
	case HeldInitial, Holding:
		n.State = Holding
		if now >= n.Event.End() {
			n.State = Completed
			return BecameCompleted
		}
	}
	return Unchanged
}

// Strike applies a key press to an eligible note. A tap becomes Hit, a
// hold is grabbed.
func (n *Note) Strike(now time.Duration, t *Tuning) (Tier, bool) {
	if !n.Eligible() {
		return Miss, false
	}
	tier, ok := Judge(n.Offset, t)
	if !ok {
		return Miss, false
	}
	switch n.Event.Kind {
	case Hold:
		n.State = HeldInitial
		n.GrabOffset = abs(n.Offset)
		n.TickedUntil = now
	default:
		n.State = Hit
	}
	return tier, true
}

// Release lets go of a held note before its tail reached the hit line.
func (n *Note) Release() bool {
	if !n.Held() {
		return false
	}
	n.State = BrokenHeld
	return true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
