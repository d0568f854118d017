package game

import "time"

// NoLane marks input from a key that is not mapped to any lane.
const NoLane = -1

type Input struct {
	Lane int           `json:"lane"`
	Down bool          `json:"down"`
	At   time.Duration `json:"at"` // session time the input was judged against
}
