// Package clock reconciles wall-clock frame deltas, the audio playback
// position and the startup grace period into one session time per frame.
package clock

import "time"

type Mode uint8

const (
	Grace Mode = iota
	AudioSynced
	Fallback
)

func (m Mode) String() string {
	switch m {
	case Grace:
		return "grace"
	case AudioSynced:
		return "audio"
	case Fallback:
		return "fallback"
	}
	return "unknown"
}

// Signal asks the caller to act on the audio collaborator.
type Signal uint8

const (
	None Signal = iota
	StartAudio
)

type Clock struct {
	mode Mode
	now  time.Duration
}

// New returns a clock counting up from -grace.
func New(grace time.Duration) *Clock {
	if grace < 0 {
		grace = -grace
	}
	return &Clock{mode: Grace, now: -grace}
}

// Advance moves the clock by one frame. Exactly one time source is used
// per frame: a mode switch replaces the source, it never adds to it. The
// returned time never decreases.
func (c *Clock) Advance(dt, position time.Duration, playing bool) (time.Duration, Signal) {
	if dt < 0 {
		dt = 0
	}
	switch c.mode {
	case Grace:
		c.now += dt
		if c.now >= 0 {
			c.mode = AudioSynced
			return c.now, StartAudio
		}
	case AudioSynced:
		if !playing {
			c.mode = Fallback
			c.now += dt
			break
		}
		if position > c.now {
			c.now = position
		}
	case Fallback:
		c.now += dt
	}
	return c.now, None
}

func (c *Clock) Now() time.Duration {
	return c.now
}

func (c *Clock) Mode() Mode {
	return c.mode
}
