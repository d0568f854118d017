package parser

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// mapFile is the beatmap document shared by the JSON and YAML formats.
type mapFile struct {
	Metadata struct {
		Title      string  `json:"title" yaml:"title"`
		Artist     string  `json:"artist" yaml:"artist"`
		Mapper     string  `json:"mapper" yaml:"mapper"`
		Difficulty float64 `json:"difficulty" yaml:"difficulty"` // doubles as the score multiplier
		Lanes      int     `json:"lanes,omitempty" yaml:"lanes,omitempty"`
	} `json:"metadata" yaml:"metadata"`
	Audio struct {
		File     string  `json:"file" yaml:"file"`
		BPM      float64 `json:"bpm" yaml:"bpm"`
		OffsetMs float64 `json:"offset_ms" yaml:"offset_ms"`
	} `json:"audio" yaml:"audio"`
	HitObjects []hitObject `json:"hit_objects" yaml:"hit_objects"`
}

type hitObject struct {
	Type     string  `json:"type" yaml:"type"` // "hold", anything else is a tap
	Lane     int     `json:"lane" yaml:"lane"`
	Time     float64 `json:"time" yaml:"time"`
	Duration float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

func millis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// toMap fills in the defaults of a missing field and validates the
// events. The audio file is resolved against the chart's directory.
func (f *mapFile) toMap(file string) (*game.Map, error) {
	m := &game.Map{
		Title:  f.Metadata.Title,
		Artist: f.Metadata.Artist,
		Mapper: f.Metadata.Mapper,
		BPM:    f.Audio.BPM,
		Offset: millis(f.Audio.OffsetMs),
		Difficulty: game.Difficulty{
			Name:       "Normal",
			Meter:      fmt.Sprintf("%g", f.Metadata.Difficulty),
			Multiplier: f.Metadata.Difficulty,
			Lanes:      f.Metadata.Lanes,
		},
	}
	if m.Title == "" {
		m.Title = "Untitled"
	}
	if m.Artist == "" {
		m.Artist = "Unknown"
	}
	if m.Mapper == "" {
		m.Mapper = "Unknown"
	}
	if m.BPM <= 0 {
		m.BPM = 120
	}
	if m.Difficulty.Multiplier <= 0 {
		m.Difficulty.Multiplier = 1
		m.Difficulty.Meter = "1"
	}
	if m.Difficulty.Lanes <= 0 {
		m.Difficulty.Lanes = game.DefaultLanes
	}
	if f.Audio.File != "" {
		m.AudioFile = filepath.Join(filepath.Dir(file), f.Audio.File)
	}

	m.Events = make([]game.HitEvent, 0, len(f.HitObjects))
	for _, o := range f.HitObjects {
		e := game.HitEvent{Lane: o.Lane, Time: millis(o.Time)}
		if o.Type == "hold" {
			e.Kind = game.Hold
			e.Duration = millis(o.Duration)
		}
		m.Events = append(m.Events, e)
	}
	sort.SliceStable(m.Events, func(i, j int) bool {
		return m.Events[i].Time < m.Events[j].Time
	})

	if _, err := m.Chart(); nil != err {
		return nil, fmt.Errorf("invalid chart %v: %w", file, err)
	}
	return m, nil
}
