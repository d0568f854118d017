package engine

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// Scheduler materializes chart events into notes once they are within the
// look-ahead window, and keeps them in an arena keyed by their event index.
type Scheduler struct {
	chart     *game.Chart
	tuning    *game.Tuning
	speed     float64
	lookahead time.Duration

	notes map[game.NoteID]*game.Note
	order []game.NoteID // spawn order, which is chart order
}

// Lookahead is how long a note is on screen before it reaches the hit line.
func Lookahead(spawnDistance, speed float64) time.Duration {
	return game.TravelTime(spawnDistance, speed)
}

func NewScheduler(chart *game.Chart, tuning *game.Tuning, speed float64) *Scheduler {
	return &Scheduler{
		chart:     chart,
		tuning:    tuning,
		speed:     speed,
		lookahead: Lookahead(tuning.SpawnDistance, speed),
		notes:     map[game.NoteID]*game.Note{},
	}
}

// Spawn pops every due event and creates its note, positioned so that it
// reaches the hit line exactly at the event time.
func (s *Scheduler) Spawn(now time.Duration) []*game.Note {
	base := s.chart.Cursor()
	due := s.chart.PopDue(now, s.lookahead)
	spawned := make([]*game.Note, 0, len(due))
	for i, e := range due {
		id := game.NoteID(base + i)
		if _, exists := s.notes[id]; exists {
			panic(fmt.Sprintf("note %d spawned twice", id))
		}
		n := game.NewNote(id, e, now, s.speed)
		s.notes[id] = n
		s.order = append(s.order, id)
		spawned = append(spawned, n)
	}
	return spawned
}

// Advance moves every note to now and returns the holds that completed.
func (s *Scheduler) Advance(now time.Duration) []*game.Note {
	var completed []*game.Note
	for _, id := range s.order {
		n := s.notes[id]
		if n.Advance(now, s.speed, s.tuning) == game.BecameCompleted {
			completed = append(completed, n)
		}
	}
	return completed
}

// Sweep removes every note that is done and returns the missed ones, each
// exactly once.
func (s *Scheduler) Sweep() []*game.Note {
	var missed []*game.Note
	kept := s.order[:0]
	for _, id := range s.order {
		n := s.notes[id]
		if !n.Gone() {
			kept = append(kept, id)
			continue
		}
		delete(s.notes, id)
		if n.State == game.Missed {
			missed = append(missed, n)
		}
	}
	s.order = kept
	return missed
}

// Lane returns the notes of one lane in chart order.
func (s *Scheduler) Lane(lane int) []*game.Note {
	var notes []*game.Note
	for _, id := range s.order {
		if n := s.notes[id]; n.Lane() == lane {
			notes = append(notes, n)
		}
	}
	return notes
}

func (s *Scheduler) Notes() []*game.Note {
	notes := make([]*game.Note, 0, len(s.order))
	for _, id := range s.order {
		notes = append(notes, s.notes[id])
	}
	return notes
}

func (s *Scheduler) Get(id game.NoteID) (*game.Note, bool) {
	n, ok := s.notes[id]
	return n, ok
}

func (s *Scheduler) Len() int {
	return len(s.order)
}

func (s *Scheduler) Lookahead() time.Duration {
	return s.lookahead
}

// Done reports whether the chart is exhausted and every note has left.
func (s *Scheduler) Done() bool {
	return s.chart.Exhausted() && len(s.order) == 0
}
