// Package input turns keyboard devices into lane presses and releases.
package input

import (
	"context"

	"git.lost.host/meutraa/qwerty/internal/game"
)

type Control uint8

const (
	NoControl Control = iota
	Pause
	Quit
)

// Event is a press or release of a lane, or a control key when Control is
// set. Timing is the frame's business: events carry no timestamp.
type Event struct {
	Lane    int
	Down    bool
	Control Control
}

func (e Event) Input() game.Input {
	return game.Input{Lane: e.Lane, Down: e.Down}
}

// Source delivers events until the context is cancelled or the device
// fails.
type Source interface {
	Run(ctx context.Context, out chan<- Event) error
}

func send(ctx context.Context, out chan<- Event, e Event) bool {
	select {
	case out <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
