package game

import (
	"errors"
	"fmt"
	"time"
)

type Kind uint8

const (
	Tap Kind = iota
	Hold
)

func (k Kind) String() string {
	if k == Hold {
		return "hold"
	}
	return "tap"
}

type HitEvent struct {
	Lane     int           // The chart column
	Time     time.Duration // The time the note should be hit
	Kind     Kind
	Duration time.Duration // Hold only, the time the note should be held for
}

// End is the time the note's tail reaches the hit line.
func (e HitEvent) End() time.Duration {
	return e.Time + e.Duration
}

var (
	ErrUnsorted = errors.New("events are not sorted by time")
	ErrLane     = errors.New("lane out of range")
	ErrTime     = errors.New("negative event time")
	ErrDuration = errors.New("invalid hold duration")
)

// LoadError reports the first malformed event in a chart.
type LoadError struct {
	Index int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("event %d: %v", e.Index, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Chart is the timeline of a session. Events are popped once they enter
// the spawn window and are never returned again.
type Chart struct {
	events []HitEvent
	next   int
	lanes  int
}

func NewChart(events []HitEvent, lanes int) (*Chart, error) {
	if lanes <= 0 {
		return nil, fmt.Errorf("chart needs at least one lane, got %d", lanes)
	}
	for i, e := range events {
		switch {
		case e.Lane < 0 || e.Lane >= lanes:
			return nil, &LoadError{Index: i, Err: fmt.Errorf("%w: %d not in [0, %d)", ErrLane, e.Lane, lanes)}
		case e.Time < 0:
			return nil, &LoadError{Index: i, Err: ErrTime}
		case e.Duration < 0, e.Kind == Tap && e.Duration != 0:
			return nil, &LoadError{Index: i, Err: ErrDuration}
		case i > 0 && e.Time < events[i-1].Time:
			return nil, &LoadError{Index: i, Err: ErrUnsorted}
		}
	}
	evs := make([]HitEvent, len(events))
	copy(evs, events)
	return &Chart{events: evs, lanes: lanes}, nil
}

// PopDue removes and returns, in time order, every event due by now+lookahead.
func (c *Chart) PopDue(now, lookahead time.Duration) []HitEvent {
	limit := now + lookahead
	start := c.next
	for c.next < len(c.events) && c.events[c.next].Time <= limit {
		c.next++
	}
	if start == c.next {
		return nil
	}
	return c.events[start:c.next:c.next]
}

// Cursor is the index of the next event PopDue will return.
func (c *Chart) Cursor() int {
	return c.next
}

func (c *Chart) Peek() (HitEvent, bool) {
	if c.Exhausted() {
		return HitEvent{}, false
	}
	return c.events[c.next], true
}

func (c *Chart) Exhausted() bool {
	return c.next >= len(c.events)
}

func (c *Chart) Remaining() int {
	return len(c.events) - c.next
}

func (c *Chart) Len() int {
	return len(c.events)
}

func (c *Chart) Lanes() int {
	return c.lanes
}

// Events returns a copy of the full timeline, popped events included.
func (c *Chart) Events() []HitEvent {
	evs := make([]HitEvent, len(c.events))
	copy(evs, c.events)
	return evs
}

// Duration is the end of the last note plus one second of run-out.
func (c *Chart) Duration() time.Duration {
	var end time.Duration
	for _, e := range c.events {
		if e.End() > end {
			end = e.End()
		}
	}
	if len(c.events) == 0 {
		return 0
	}
	return end + time.Second
}
