package score

import (
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// Recorder receives the finalized record of a session, once.
type Recorder interface {
	Submit(rec *Record) error
}

type Scorer interface {
	Recorder

	// Best is the highest scoring record kept for a chart, nil if none.
	Best(chartHash string) (*Record, error)

	// History lists every submitted play of a chart, oldest first.
	History(chartHash string) ([]History, error)

	Close() error
}

type Record struct {
	SessionID string
	ChartHash string
	Title     string

	Score    int64
	MaxCombo int
	Accuracy float64
	Rank     Rank
	Perfects int
	Greats   int
	Misses   int
	Spams    int
	Failed   bool

	Inputs []game.Input
}

type History struct {
	Record
	PlayedAt time.Time
}

// RecorderFunc adapts a function to a Recorder.
type RecorderFunc func(rec *Record) error

func (f RecorderFunc) Submit(rec *Record) error {
	return f(rec)
}
