// Package testdata holds chart fixtures shared by tests.
package testdata

import (
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// MapJSON is a beatmap in the native format, deliberately out of order.
const MapJSON = `{
  "metadata": {
    "title": "Fixture",
    "artist": "Nobody",
    "mapper": "Tester",
    "difficulty": 1.5
  },
  "audio": {
    "file": "fixture.ogg",
    "bpm": 150,
    "offset_ms": 20
  },
  "hit_objects": [
    {"type": "beat", "lane": 0, "time": 1000},
    {"type": "hold", "lane": 3, "time": 2000, "duration": 750},
    {"type": "beat", "lane": 7, "time": 1500}
  ]
}`

// MapYAML is MapJSON with the default metadata left out.
const MapYAML = `metadata:
  title: Fixture
audio:
  file: fixture.ogg
hit_objects:
  - {type: beat, lane: 0, time: 1000}
  - {type: hold, lane: 3, time: 2000, duration: 750}
  - {type: beat, lane: 7, time: 1500}
`

// StepMania has one dance-single chart with a tempo change, a hold and a
// mine, and a chart type that is not playable.
const StepMania = `#TITLE:Fixture;
#ARTIST:Nobody;
#CREDIT:Tester;
#MUSIC:fixture.ogg;
#OFFSET:-0.100;
#BPMS:0.000=120.000
,4.000=240.000;
#NOTES:
     dance-single:
     :
     Easy:
     3:
     0.0,0.0,0.0,0.0,0.0:
// measure 1
1000
0000
0100
0000
,  // measure 2
2000
0000
3001
0000
,  // measure 3
M000
0010
0000
0000
;
#NOTES:
     lights-cabinet:
     :
     Beginner:
     1:
     0.0,0.0,0.0,0.0,0.0:
0000
;
`

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Map is a short eight lane map of taps across every lane and two holds.
func Map() *game.Map {
	events := []game.HitEvent{}
	for i := 0; i < 16; i++ {
		events = append(events, game.HitEvent{Lane: i % 8, Time: ms(1000 + i*250)})
	}
	events = append(events,
		game.HitEvent{Lane: 1, Time: ms(5500), Kind: game.Hold, Duration: ms(1000)},
		game.HitEvent{Lane: 6, Time: ms(6000), Kind: game.Hold, Duration: ms(500)},
		game.HitEvent{Lane: 3, Time: ms(7000)},
	)
	return &game.Map{
		Title:      "Fixture",
		Difficulty: game.Difficulty{Name: "Normal", Multiplier: 1, Lanes: 8},
		Events:     events,
	}
}
