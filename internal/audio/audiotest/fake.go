// Package audiotest provides a scripted audio collaborator for tests.
package audiotest

import "time"

// Fake plays nothing. Its position only moves when the test sets it, or
// follows Advance while playing.
type Fake struct {
	Pos     time.Duration
	Started bool
	Stopped bool
	Broken  bool // Play never starts playback, like a missing file

	playing bool
	Plays   int
	Pauses  int
	Stops   int
}

func (f *Fake) Load(string) error {
	return nil
}

func (f *Fake) Play(start time.Duration) {
	f.Plays++
	if f.Broken {
		return
	}
	f.Started = true
	f.Stopped = false
	f.playing = true
	f.Pos = start
}

func (f *Fake) Pause() {
	f.Pauses++
	f.playing = false
}

func (f *Fake) Unpause() {
	if f.Started && !f.Stopped {
		f.playing = true
	}
}

func (f *Fake) Stop() {
	f.Stops++
	f.Stopped = true
	f.playing = false
}

func (f *Fake) Position() time.Duration {
	return f.Pos
}

func (f *Fake) Playing() bool {
	return f.playing
}

// Advance moves the position by d if the track is playing.
func (f *Fake) Advance(d time.Duration) {
	if f.playing {
		f.Pos += d
	}
}

// End simulates the track running out.
func (f *Fake) End() {
	f.playing = false
}

func (f *Fake) Close() error {
	f.Stop()
	return nil
}
