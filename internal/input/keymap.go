package input

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// DefaultKeys are the home row keys, outer lanes first.
const DefaultKeys = "asdfjkl;"

var ErrKeys = errors.New("invalid key map")

// Keymap assigns one key to each lane.
type Keymap struct {
	keys  []rune
	lanes map[rune]int
}

// NewKeymap maps lanes to keys. With more keys than lanes the middle keys
// are used, so four lanes on the home row are "dfjk".
func NewKeymap(keys string, lanes int) (*Keymap, error) {
	runes := []rune(keys)
	if lanes <= 0 || len(runes) < lanes {
		return nil, fmt.Errorf("%w: %d keys for %d lanes", ErrKeys, len(runes), lanes)
	}
	start := (len(runes) - lanes) / 2
	runes = runes[start : start+lanes]

	m := &Keymap{keys: runes, lanes: make(map[rune]int, lanes)}
	for lane, r := range runes {
		if _, dup := m.lanes[r]; dup {
			return nil, fmt.Errorf("%w: %q bound twice", ErrKeys, r)
		}
		m.lanes[r] = lane
	}
	return m, nil
}

// Lane is the lane bound to r, or game.NoLane.
func (m *Keymap) Lane(r rune) int {
	if lane, ok := m.lanes[r]; ok {
		return lane
	}
	return game.NoLane
}

func (m *Keymap) Keys() []rune {
	return append([]rune(nil), m.keys...)
}

func (m *Keymap) String() string {
	return string(m.keys)
}
