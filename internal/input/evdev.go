package input

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey = 0x01

	keyEsc   = 1
	keySpace = 57

	released = 0
	pressed  = 1
)

var keyCodes = map[rune]uint16{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
	'-': 12, '=': 13,
	'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20, 'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
	'[': 26, ']': 27,
	'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34, 'h': 35, 'j': 36, 'k': 37, 'l': 38,
	';': 39, '\'': 40, '`': 41, '\\': 43,
	'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48, 'n': 49, 'm': 50,
	',': 51, '.': 52, '/': 53,
}

var ErrKeyCode = errors.New("key has no evdev code")

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// EvdevSource reads a Linux input device, which reports real releases.
// The device usually needs root or the input group.
type EvdevSource struct {
	device string
	lanes  map[uint16]int
}

func NewEvdevSource(device string, keymap *Keymap) (*EvdevSource, error) {
	s := &EvdevSource{device: device, lanes: map[uint16]int{}}
	for lane, r := range keymap.Keys() {
		code, ok := keyCodes[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrKeyCode, r)
		}
		s.lanes[code] = lane
	}
	return s, nil
}

func (s *EvdevSource) Run(ctx context.Context, out chan<- Event) error {
	file, err := os.Open(s.device)
	if nil != err {
		return fmt.Errorf("unable to open input device: %w", err)
	}

	// closing the device unblocks the read below
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		file.Close()
	}()

	return s.read(ctx, file, out)
}

func (s *EvdevSource) read(ctx context.Context, r io.Reader, out chan<- Event) error {
	var ev keyEvent
	for {
		if err := binary.Read(r, binary.LittleEndian, &ev); nil != err {
			if nil != ctx.Err() || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("unable to read keyboard input: %w", err)
		}
		e, ok := s.translate(ev)
		if ok && !send(ctx, out, e) {
			return nil
		}
	}
}

func (s *EvdevSource) translate(ev keyEvent) (Event, bool) {
	// value 2 is auto-repeat
	if ev.Type != evKey || (ev.Value != pressed && ev.Value != released) {
		return Event{}, false
	}
	switch ev.Code {
	case keyEsc:
		return Event{Lane: game.NoLane, Control: Quit}, ev.Value == pressed
	case keySpace:
		return Event{Lane: game.NoLane, Control: Pause}, ev.Value == pressed
	}
	lane, ok := s.lanes[ev.Code]
	if !ok {
		return Event{}, false
	}
	return Event{Lane: lane, Down: ev.Value == pressed}, true
}
