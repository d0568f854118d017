package game

import "time"

// Map is a loaded beatmap: its metadata and the events of one difficulty.
type Map struct {
	Title      string
	Artist     string
	Mapper     string
	AudioFile  string
	BPM        float64
	Offset     time.Duration
	Difficulty Difficulty
	Events     []HitEvent
}

func (m *Map) Lanes() int {
	if m.Difficulty.Lanes > 0 {
		return m.Difficulty.Lanes
	}
	return DefaultLanes
}

func (m *Map) Multiplier() float64 {
	if m.Difficulty.Multiplier > 0 {
		return m.Difficulty.Multiplier
	}
	return 1
}

// Chart validates the events and returns a fresh timeline over them.
func (m *Map) Chart() (*Chart, error) {
	return NewChart(m.Events, m.Lanes())
}

func (m *Map) HoldCount() int {
	count := 0
	for _, e := range m.Events {
		if e.Kind == Hold {
			count++
		}
	}
	return count
}
