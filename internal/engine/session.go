package engine

import (
	"errors"
	"time"

	"git.lost.host/meutraa/qwerty/internal/clock"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/score"
	"github.com/google/uuid"
)

// Audio is the part of the audio collaborator the session uses. Its
// position and play state are sampled once per frame.
type Audio interface {
	Play(start time.Duration)
	Pause()
	Unpause()
	Stop()
	Position() time.Duration
	Playing() bool
}

type Phase uint8

const (
	Playing Phase = iota
	Failed
	Complete
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Failed:
		return "failed"
	case Complete:
		return "complete"
	}
	return "unknown"
}

type Options struct {
	Speed    float64       // px/s
	Grace    time.Duration // lead-in before the audio starts
	Tuning   game.Tuning
	Title    string
	Recorder score.Recorder
}

var ErrSpeed = errors.New("note speed must be positive")

// Session runs one play of a map. It is single threaded: Update is called
// once per frame, everything else only reads or toggles pause.
type Session struct {
	ID uuid.UUID

	opts       Options
	chartHash  string
	multiplier float64
	duration   time.Duration

	audio Audio
	chart *game.Chart
	clock *clock.Clock
	sched *Scheduler
	judge *Judge
	stats *score.Stats

	phase  Phase
	paused bool
	timer  time.Duration // remaining fail/end display time

	position time.Duration
	playing  bool
	inputs   []game.Input
	reports  []Report

	judgement     string
	judgementLeft time.Duration

	finalized bool
	record    *score.Record
	err       error
}

func NewSession(m *game.Map, a Audio, opts Options) (*Session, error) {
	if opts.Speed <= 0 {
		return nil, ErrSpeed
	}
	chart, err := m.Chart()
	if nil != err {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = m.Title
	}
	if opts.Tuning == (game.Tuning{}) {
		opts.Tuning = game.DefaultTuning()
	}
	if err := opts.Tuning.Validate(); nil != err {
		return nil, err
	}
	s := &Session{
		ID:         uuid.New(),
		opts:       opts,
		chartHash:  score.Hash(chart.Events()),
		multiplier: m.Multiplier(),
		duration:   chart.Duration(),
		audio:      a,
		chart:      chart,
		clock:      clock.New(opts.Grace),
		stats:      score.NewStats(opts.Tuning.MaxHealth),
	}
	s.sched = NewScheduler(chart, &s.opts.Tuning, opts.Speed)
	s.judge = NewJudge(s.sched, s.stats, &s.opts.Tuning, opts.Speed, s.multiplier)
	return s, nil
}

// Update advances the session by one frame. All inputs of the frame are
// judged against the same session time.
func (s *Session) Update(dt time.Duration, inputs []game.Input) {
	s.judge.Flush()
	s.reports = s.reports[:0]
	if s.phase != Playing {
		s.linger(dt)
		return
	}
	if s.paused {
		return
	}

	s.position, s.playing = s.audio.Position(), s.audio.Playing()
	now, sig := s.clock.Advance(dt, s.position, s.playing)
	if sig == clock.StartAudio {
		s.audio.Play(0)
	}

	s.sched.Spawn(now)
	for _, n := range s.sched.Advance(now) {
		s.judge.Complete(n)
	}
	for _, in := range inputs {
		if in.Lane < 0 || in.Lane >= s.chart.Lanes() {
			continue
		}
		in.At = now
		s.inputs = append(s.inputs, in)
		if in.Down {
			s.judge.OnInputDown(in.Lane, now)
		} else {
			s.judge.OnInputUp(in.Lane, now)
		}
	}
	for _, n := range s.sched.Sweep() {
		s.judge.Miss(n)
	}
	s.judge.OnTick(dt, now)

	s.reports = append(s.reports, s.judge.Reports()...)
	s.showJudgement(dt)

	switch {
	case s.stats.Dead():
		s.phase = Failed
		s.timer = s.opts.Tuning.FailDelay
		s.audio.Stop()
	case s.sched.Done():
		s.phase = Complete
		s.timer = s.opts.Tuning.EndDelay
	}
}

func (s *Session) showJudgement(dt time.Duration) {
	s.judgementLeft -= dt
	for _, r := range s.reports {
		if text := r.Text(); text != "" {
			s.judgement = text
			s.judgementLeft = s.opts.Tuning.JudgementDisplay
		}
	}
	if s.judgementLeft <= 0 {
		s.judgementLeft = 0
		s.judgement = ""
	}
}

// linger counts down the display delay of a terminal phase, then
// finalizes.
func (s *Session) linger(dt time.Duration) {
	if s.finalized {
		return
	}
	s.timer -= dt
	if s.timer <= 0 {
		s.Finalize()
	}
}

// Finalize submits the record of a finished session. Only the first call
// does anything.
func (s *Session) Finalize() {
	if s.finalized || s.phase == Playing {
		return
	}
	s.finalized = true
	s.audio.Stop()

	rec := s.stats.Record(s.phase == Failed)
	rec.SessionID = s.ID.String()
	rec.ChartHash = s.chartHash
	rec.Title = s.opts.Title
	rec.Inputs = append([]game.Input(nil), s.inputs...)
	s.record = &rec
	if nil != s.opts.Recorder {
		s.err = s.opts.Recorder.Submit(&rec)
	}
}

func (s *Session) Pause() {
	if s.paused || s.phase != Playing {
		return
	}
	s.paused = true
	s.audio.Pause()
}

func (s *Session) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	s.audio.Unpause()
}

func (s *Session) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Abort stops the session without finalizing it.
func (s *Session) Abort() {
	s.finalized = true
	s.audio.Stop()
}

func (s *Session) Paused() bool {
	return s.paused
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Finalized() bool {
	return s.finalized
}

// Result is the finalized record and the error the recorder returned.
func (s *Session) Result() (*score.Record, error) {
	return s.record, s.err
}

func (s *Session) Stats() score.Stats {
	return *s.stats
}

func (s *Session) Now() time.Duration {
	return s.clock.Now()
}

func (s *Session) Mode() clock.Mode {
	return s.clock.Mode()
}

// Sampled is the audio position and play state read this frame.
func (s *Session) Sampled() (time.Duration, bool) {
	return s.position, s.playing
}

// Reports are the judgements of the last frame.
func (s *Session) Reports() []Report {
	return append([]Report(nil), s.reports...)
}

func (s *Session) ChartHash() string {
	return s.chartHash
}

func (s *Session) Lanes() int {
	return s.chart.Lanes()
}
