// Package audio plays the track of a map and reports its position.
package audio

import "time"

// Player is the audio collaborator of a session. Position and Playing are
// polled once per frame and must not block.
type Player interface {
	Load(path string) error
	Play(start time.Duration)
	Pause()
	Unpause()
	Stop()
	Position() time.Duration
	Playing() bool
	Close() error
}

// Silent never plays, so a session using it runs on the wall clock.
type Silent struct{}

func (Silent) Load(string) error       { return nil }
func (Silent) Play(time.Duration)      {}
func (Silent) Pause()                  {}
func (Silent) Unpause()                {}
func (Silent) Stop()                   {}
func (Silent) Position() time.Duration { return 0 }
func (Silent) Playing() bool           { return false }
func (Silent) Close() error            { return nil }
