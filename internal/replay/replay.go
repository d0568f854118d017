// Package replay records the frame stream of a session and plays it back.
// A session fed the same frames makes the same judgements.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"git.lost.host/meutraa/qwerty/internal/engine"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/score"
	json "github.com/goccy/go-json"
)

var ErrChart = errors.New("replay was recorded on a different chart")

// Frame is one session update: the wall clock delta, what the audio
// reported, and the inputs. Toggle pauses or resumes before the update.
type Frame struct {
	DT       time.Duration `json:"dt"`
	Position time.Duration `json:"pos,omitempty"`
	Playing  bool          `json:"playing,omitempty"`
	Toggle   bool          `json:"toggle,omitempty"`
	Inputs   []game.Input  `json:"inputs,omitempty"`
}

type Recording struct {
	SessionID string        `json:"session"`
	ChartHash string        `json:"chart"`
	Speed     float64       `json:"speed"`
	Grace     time.Duration `json:"grace"`
	Tuning    game.Tuning   `json:"tuning"`
	Frames    []Frame       `json:"frames"`
}

func New(sess *engine.Session, speed float64, grace time.Duration, tuning game.Tuning) *Recording {
	return &Recording{
		SessionID: sess.ID.String(),
		ChartHash: sess.ChartHash(),
		Speed:     speed,
		Grace:     grace,
		Tuning:    tuning,
	}
}

// Add records the frame sess just ran. Call it after Update so the audio
// sample of the frame is known.
func (r *Recording) Add(sess *engine.Session, dt time.Duration, toggled bool, inputs []game.Input) {
	pos, playing := sess.Sampled()
	f := Frame{DT: dt, Position: pos, Playing: playing, Toggle: toggled}
	if len(inputs) > 0 {
		f.Inputs = make([]game.Input, len(inputs))
		for i, in := range inputs {
			f.Inputs[i] = game.Input{Lane: in.Lane, Down: in.Down}
		}
	}
	r.Frames = append(r.Frames, f)
}

func (r *Recording) Duration() time.Duration {
	var d time.Duration
	for _, f := range r.Frames {
		d += f.DT
	}
	return d
}

func Encode(w io.Writer, r *Recording) error {
	return json.NewEncoder(w).Encode(r)
}

func Decode(rd io.Reader) (*Recording, error) {
	var r Recording
	if err := json.NewDecoder(rd).Decode(&r); nil != err {
		return nil, fmt.Errorf("unable to decode replay: %w", err)
	}
	return &r, nil
}

func Save(path string, r *Recording) error {
	f, err := os.Create(path)
	if nil != err {
		return err
	}
	if err := Encode(f, r); nil != err {
		f.Close()
		return err
	}
	return f.Close()
}

func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Track is the audio of a replay: it reports whatever the current frame
// recorded and ignores commands.
type Track struct {
	pos     time.Duration
	playing bool
}

func (t *Track) Play(time.Duration)      {}
func (t *Track) Pause()                  {}
func (t *Track) Unpause()                {}
func (t *Track) Stop()                   {}
func (t *Track) Position() time.Duration { return t.pos }
func (t *Track) Playing() bool           { return t.playing }

// Run feeds every frame to sess, which must have been created on track.
func Run(sess *engine.Session, track *Track, frames []Frame) {
	for _, f := range frames {
		if f.Toggle {
			sess.TogglePause()
		}
		track.pos, track.playing = f.Position, f.Playing
		sess.Update(f.DT, f.Inputs)
	}
}

// Play replays r on m in a fresh session. The finalized record, if the
// replay reaches one, goes to recorder.
func Play(m *game.Map, r *Recording, recorder score.Recorder) (*engine.Session, error) {
	if hash := score.Hash(m.Events); hash != r.ChartHash {
		return nil, ErrChart
	}
	track := &Track{}
	sess, err := engine.NewSession(m, track, engine.Options{
		Speed:    r.Speed,
		Grace:    r.Grace,
		Tuning:   r.Tuning,
		Recorder: recorder,
	})
	if nil != err {
		return nil, err
	}
	Run(sess, track, r.Frames)
	return sess, nil
}
