package main

import (
	"bytes"
	"testing"
	"time"

	"git.lost.host/meutraa/qwerty/internal/audio"
	"git.lost.host/meutraa/qwerty/internal/config"
	"git.lost.host/meutraa/qwerty/internal/engine"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/input"
	"git.lost.host/meutraa/qwerty/internal/replay"
	"git.lost.host/meutraa/qwerty/internal/score"
	"git.lost.host/meutraa/qwerty/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	reports []engine.Report
	draws   int
	flushes int
}

func (r *fakeRenderer) Init() error                         { return nil }
func (r *fakeRenderer) Deinit() error                       { return nil }
func (r *fakeRenderer) AddDecoration(int, int, string, int) {}
func (r *fakeRenderer) Report(rep engine.Report)            { r.reports = append(r.reports, rep) }
func (r *fakeRenderer) Draw(*engine.View)                   { r.draws++ }
func (r *fakeRenderer) Flush() error                        { r.flushes++; return nil }

func newProgram(t *testing.T) (*Program, chan input.Event, *fakeRenderer) {
	t.Helper()
	sess, err := engine.NewSession(testdata.Map(), audio.Silent{}, engine.Options{Speed: 300})
	require.NoError(t, err)
	events := make(chan input.Event, 16)
	r := &fakeRenderer{}
	p := &Program{Session: sess, Renderer: r, Events: events}
	require.True(t, p.Update(0))
	return p, events, r
}

func TestQuitAbortsSession(t *testing.T) {
	p, events, _ := newProgram(t)
	events <- input.Event{Lane: game.NoLane, Control: input.Quit}

	assert.False(t, p.Update(10*time.Millisecond))
	assert.True(t, p.Session.Finalized())
	rec, err := p.Session.Result()
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPauseKeyFreezesSession(t *testing.T) {
	p, events, _ := newProgram(t)
	p.Recording = replay.New(p.Session, 300, 0, game.DefaultTuning())
	require.True(t, p.Update(10*time.Millisecond))
	now := p.Session.Now()

	events <- input.Event{Lane: game.NoLane, Control: input.Pause}
	require.True(t, p.Update(10*time.Millisecond))
	assert.True(t, p.Session.Paused())
	require.True(t, p.Update(100*time.Millisecond))
	assert.Equal(t, now, p.Session.Now())

	// two toggles within one frame cancel out
	events <- input.Event{Lane: game.NoLane, Control: input.Pause}
	events <- input.Event{Lane: game.NoLane, Control: input.Pause}
	require.True(t, p.Update(10*time.Millisecond))
	assert.True(t, p.Session.Paused())

	frames := p.Recording.Frames
	require.Len(t, frames, 4)
	assert.False(t, frames[0].Toggle)
	assert.True(t, frames[1].Toggle)
	assert.False(t, frames[3].Toggle)
}

func TestInputsReachSession(t *testing.T) {
	p, events, r := newProgram(t)
	p.Recording = replay.New(p.Session, 300, 0, game.DefaultTuning())

	events <- input.Event{Lane: 0, Down: true}
	events <- input.Event{Lane: 0}
	require.True(t, p.Update(16*time.Millisecond))

	assert.Equal(t, 1, p.Session.Stats().Spams)
	require.Len(t, r.reports, 1)
	assert.Equal(t, engine.ReportSpam, r.reports[0].Kind)
	require.Len(t, p.Recording.Frames, 1)
	assert.Len(t, p.Recording.Frames[0].Inputs, 2)

	require.NoError(t, p.Render())
	assert.Equal(t, 1, r.draws)
	assert.Equal(t, 1, r.flushes)
}

func TestUpdateEndsWhenFinalized(t *testing.T) {
	p, _, _ := newProgram(t)
	// without presses every note is missed and the session fails
	running := true
	for i := 0; running && i < 10000; i++ {
		running = p.Update(10 * time.Millisecond)
	}
	assert.False(t, running)
	assert.Equal(t, engine.Failed, p.Session.Phase())
	rec, err := p.Session.Result()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, score.RankF, rec.Rank)
}

func TestPick(t *testing.T) {
	maps := []*game.Map{
		{Difficulty: game.Difficulty{Name: "Easy", Meter: "3"}},
		{Difficulty: game.Difficulty{Name: "Hard", Meter: "9"}},
	}
	m, err := pick(maps, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hard", m.Difficulty.Name)

	_, err = pick(maps, 2)
	assert.ErrorIs(t, err, config.ErrConfig)
	assert.Contains(t, err.Error(), "Easy")
	assert.Contains(t, err.Error(), "Hard")
}

func TestByHash(t *testing.T) {
	m := testdata.Map()
	found, err := byHash([]*game.Map{{}, m}, score.Hash(m.Events))
	require.NoError(t, err)
	assert.Same(t, m, found)

	_, err = byHash([]*game.Map{m}, "nope")
	assert.ErrorIs(t, err, replay.ErrChart)
}

func TestSummarize(t *testing.T) {
	var b bytes.Buffer
	summarize(&b, "Song", score.Stats{Score: 1500}, nil, nil)
	assert.Equal(t, "Song: aborted at 1,500 points\n", b.String())

	b.Reset()
	rec := &score.Record{Score: 1234567, Rank: score.RankS, Accuracy: 97.5, MaxCombo: 321, Perfects: 300, Greats: 21}
	summarize(&b, "Song", score.Stats{}, rec, nil)
	out := b.String()
	assert.Contains(t, out, "Song: cleared")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "97.50%")

	b.Reset()
	rec.Failed = true
	summarize(&b, "Song", score.Stats{}, rec, nil)
	assert.Contains(t, b.String(), "Song: failed")
}
