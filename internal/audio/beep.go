package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// SampleRate is the rate the speaker is opened at. Tracks at other rates
// are resampled.
const SampleRate beep.SampleRate = 44100

var ErrFormat = errors.New("unsupported audio format")

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/60))
	})
	return speakerErr
}

// BeepPlayer plays one track through the beep speaker.
type BeepPlayer struct {
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl

	playing atomic.Bool
	ended   atomic.Bool
}

func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".ogg", ".wav":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, err
	}
	var stream beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	return stream, format, nil
}

// Load decodes the track and opens the speaker. A previously loaded track
// is closed.
func (p *BeepPlayer) Load(path string) error {
	stream, format, err := decode(path)
	if nil != err {
		return err
	}
	if err := initSpeaker(); nil != err {
		stream.Close()
		return fmt.Errorf("unable to open speaker: %w", err)
	}
	p.Close()
	p.stream, p.format = stream, format
	return nil
}

// Play starts the track from start, replacing anything already playing.
func (p *BeepPlayer) Play(start time.Duration) {
	if nil == p.stream {
		return
	}
	speaker.Clear()

	speaker.Lock()
	err := p.stream.Seek(p.format.SampleRate.N(start))
	speaker.Unlock()
	if nil != err {
		p.ended.Store(true)
		p.playing.Store(false)
		return
	}

	var s beep.Streamer = p.stream
	if p.format.SampleRate != SampleRate {
		s = beep.Resample(4, p.format.SampleRate, SampleRate, s)
	}
	p.ctrl = &beep.Ctrl{Streamer: beep.Seq(s, beep.Callback(func() {
		p.ended.Store(true)
		p.playing.Store(false)
	}))}
	p.ended.Store(false)
	p.playing.Store(true)
	speaker.Play(p.ctrl)
}

func (p *BeepPlayer) Pause() {
	if nil == p.ctrl {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.playing.Store(false)
}

func (p *BeepPlayer) Unpause() {
	if nil == p.ctrl || p.ended.Load() {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.playing.Store(true)
}

func (p *BeepPlayer) Stop() {
	if nil == p.ctrl {
		return
	}
	speaker.Clear()
	p.ctrl = nil
	p.playing.Store(false)
}

// Position is the playback position in the track's own sample rate.
func (p *BeepPlayer) Position() time.Duration {
	if nil == p.stream {
		return 0
	}
	speaker.Lock()
	pos := p.stream.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

func (p *BeepPlayer) Playing() bool {
	return p.playing.Load()
}

// Length is the duration of the loaded track.
func (p *BeepPlayer) Length() time.Duration {
	if nil == p.stream {
		return 0
	}
	return p.format.SampleRate.D(p.stream.Len())
}

func (p *BeepPlayer) Close() error {
	if nil == p.stream {
		return nil
	}
	p.Stop()
	err := p.stream.Close()
	p.stream = nil
	return err
}
