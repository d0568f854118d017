package engine

import (
	"time"

	"git.lost.host/meutraa/qwerty/internal/clock"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/score"
)

type NoteView struct {
	ID     game.NoteID
	Lane   int
	Kind   game.Kind
	State  game.State
	Offset float64
	Length float64
}

// View is a read-only copy of what presentation needs for one frame.
type View struct {
	Title    string
	Lanes    int
	Now      time.Duration
	Duration time.Duration
	Mode     clock.Mode
	Phase    Phase
	Paused   bool

	Stats     score.Stats
	Accuracy  float64
	Remaining int // notes not yet judged or removed

	Judgement     string
	JudgementLeft time.Duration

	HitWindow     float64
	SpawnDistance float64
	Notes         []NoteView
}

// Progress is how far through the chart the session is, in [0, 1].
func (v *View) Progress() float64 {
	if v.Duration <= 0 || v.Now <= 0 {
		return 0
	}
	if v.Now >= v.Duration {
		return 1
	}
	return float64(v.Now) / float64(v.Duration)
}

func (s *Session) Snapshot() View {
	notes := s.sched.Notes()
	v := View{
		Title:         s.opts.Title,
		Lanes:         s.chart.Lanes(),
		Now:           s.clock.Now(),
		Duration:      s.duration,
		Mode:          s.clock.Mode(),
		Phase:         s.phase,
		Paused:        s.paused,
		Stats:         *s.stats,
		Accuracy:      s.stats.Accuracy(),
		Remaining:     s.chart.Remaining() + s.sched.Len(),
		Judgement:     s.judgement,
		JudgementLeft: s.judgementLeft,
		HitWindow:     s.opts.Tuning.HitWindow,
		SpawnDistance: s.opts.Tuning.SpawnDistance,
		Notes:         make([]NoteView, 0, len(notes)),
	}
	for _, n := range notes {
		v.Notes = append(v.Notes, NoteView{
			ID:     n.ID,
			Lane:   n.Lane(),
			Kind:   n.Event.Kind,
			State:  n.State,
			Offset: n.Offset,
			Length: n.Length,
		})
	}
	return v
}
