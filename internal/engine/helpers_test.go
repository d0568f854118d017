package engine

import (
	"testing"
	"time"

	"git.lost.host/meutraa/qwerty/internal/audio/audiotest"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/score"
	"github.com/stretchr/testify/require"
)

const speed = 300.0

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func tap(lane, at int) game.HitEvent {
	return game.HitEvent{Lane: lane, Time: ms(at)}
}

func hold(lane, at, length int) game.HitEvent {
	return game.HitEvent{Lane: lane, Time: ms(at), Kind: game.Hold, Duration: ms(length)}
}

func down(lane int) game.Input {
	return game.Input{Lane: lane, Down: true}
}

func up(lane int) game.Input {
	return game.Input{Lane: lane}
}

// rig drives a session with a scripted audio track. Every frame sets the
// track position to the wanted session time.
type rig struct {
	t       *testing.T
	s       *Session
	audio   *audiotest.Fake
	records []*score.Record
	reports []Report
}

func newRig(t *testing.T, lanes int, events ...game.HitEvent) *rig {
	t.Helper()
	r := &rig{t: t, audio: &audiotest.Fake{}}
	m := &game.Map{
		Title:      "test",
		Difficulty: game.Difficulty{Lanes: lanes},
		Events:     events,
	}
	s, err := NewSession(m, r.audio, Options{
		Speed: speed,
		Recorder: score.RecorderFunc(func(rec *score.Record) error {
			r.records = append(r.records, rec)
			return nil
		}),
	})
	require.NoError(t, err)
	r.s = s

	// no grace: the first frame starts the track at zero
	s.Update(0, nil)
	require.True(t, r.audio.Playing())
	return r
}

// at runs one frame whose session time is now.
func (r *rig) at(now int, inputs ...game.Input) []Report {
	r.t.Helper()
	target := ms(now)
	if r.audio.Playing() {
		r.audio.Pos = target
	}
	dt := target - r.s.Now()
	r.s.Update(dt, inputs)
	reports := r.s.Reports()
	r.reports = append(r.reports, reports...)
	return reports
}

// run steps frames of size step from the current time up to and including end.
func (r *rig) run(end, step int) {
	r.t.Helper()
	for now := int(r.s.Now()/time.Millisecond) + step; now <= end; now += step {
		r.at(now)
	}
}

func (r *rig) count(kind ReportKind) int {
	n := 0
	for _, rep := range r.reports {
		if rep.Kind == kind {
			n++
		}
	}
	return n
}
