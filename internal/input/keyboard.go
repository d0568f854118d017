package input

import (
	"context"
	"fmt"
	"sort"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
	"github.com/eiannone/keyboard"
)

// DefaultRelease should be longer than the terminal's key repeat delay so
// a held key keeps its lane down. X11 waits 660ms before the first repeat.
const DefaultRelease = 700 * time.Millisecond

// KeyboardSource reads the terminal. Terminals report presses and
// auto-repeats but no releases, so a lane is released once no press has
// been seen for the release timeout.
type KeyboardSource struct {
	keymap  *Keymap
	release time.Duration
}

func NewKeyboardSource(keymap *Keymap, release time.Duration) *KeyboardSource {
	if release <= 0 {
		release = DefaultRelease
	}
	return &KeyboardSource{keymap: keymap, release: release}
}

func (k *KeyboardSource) Run(ctx context.Context, out chan<- Event) error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer keyboard.Close()

	held := newReleaser(k.release)
	ticker := time.NewTicker(k.release / 8)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			for _, e := range held.expire(now) {
				if !send(ctx, out, e) {
					return nil
				}
			}
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			if nil != key.Err {
				return fmt.Errorf("unable to read keyboard: %w", key.Err)
			}
			e, ok := k.translate(key, held, time.Now())
			if ok && !send(ctx, out, e) {
				return nil
			}
		}
	}
}

func (k *KeyboardSource) translate(key keyboard.KeyEvent, held *releaser, now time.Time) (Event, bool) {
	switch key.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Event{Lane: game.NoLane, Control: Quit}, true
	case keyboard.KeySpace:
		return Event{Lane: game.NoLane, Control: Pause}, true
	}
	lane := k.keymap.Lane(key.Rune)
	if lane < 0 {
		return Event{}, false
	}
	return held.press(lane, now), true
}

// releaser synthesizes key releases from the time of the last press.
type releaser struct {
	timeout time.Duration
	last    map[int]time.Time
}

func newReleaser(timeout time.Duration) *releaser {
	return &releaser{timeout: timeout, last: map[int]time.Time{}}
}

// press counts every press, repeats included, as a new key down, since a
// quick second tap looks the same as a repeat. The session ignores downs on
// a lane whose hold is still held.
func (r *releaser) press(lane int, at time.Time) Event {
	r.last[lane] = at
	return Event{Lane: lane, Down: true}
}

// expire releases every lane not pressed for the timeout, in lane order.
func (r *releaser) expire(now time.Time) []Event {
	var lanes []int
	for lane, at := range r.last {
		if now.Sub(at) >= r.timeout {
			lanes = append(lanes, lane)
		}
	}
	sort.Ints(lanes)
	events := make([]Event, 0, len(lanes))
	for _, lane := range lanes {
		delete(r.last, lane)
		events = append(events, Event{Lane: lane})
	}
	return events
}
