package parser

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// SMParser reads StepMania charts. Every #NOTES section of a known chart
// type becomes one map.
type SMParser struct{}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

type smMeta struct {
	title, artist, credit, music string
	offset                       float64 // seconds of beat zero
	bpms                         []game.BPM
}

// bpmAt is the tempo at beat. Before the first change the first tempo
// applies.
func bpmAt(rates []game.BPM, beat float64) float64 {
	sel := rates[0].Value
	for _, bpm := range rates {
		if beat < bpm.StartingBeat {
			break
		}
		sel = bpm.Value
	}
	return sel
}

func (p *SMParser) Parse(file string) ([]*game.Map, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.parse(string(data), file)
}

func (p *SMParser) parse(data, file string) ([]*game.Map, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")

	meta, err := p.parseMeta(sections[0])
	if nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	if len(meta.bpms) == 0 || meta.bpms[0].Value <= 0 {
		return nil, fmt.Errorf("unable to parse %v: no usable #BPMS", file)
	}

	maps := []*game.Map{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		lanes, ok := game.LaneMap[chartType]
		if !ok {
			continue
		}
		m := &game.Map{
			Title:  meta.title,
			Artist: meta.artist,
			Mapper: meta.credit,
			BPM:    meta.bpms[0].Value,
			Offset: seconds(meta.offset),
			Difficulty: game.Difficulty{
				Name:       strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
				Meter:      strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
				Multiplier: 1,
				Lanes:      lanes,
			},
			Events: p.parseNotes(lines[6], lanes, meta),
		}
		if meta.music != "" {
			m.AudioFile = filepath.Join(filepath.Dir(file), meta.music)
		}
		if _, err := m.Chart(); nil != err {
			return nil, fmt.Errorf("invalid chart %v (%v): %w", file, m.Difficulty.Name, err)
		}
		maps = append(maps, m)
	}
	return maps, nil
}

func (p *SMParser) parseMeta(header string) (*smMeta, error) {
	meta := &smMeta{}
	for _, mdl := range strings.Split(header, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		key, value, ok := strings.Cut(mdl, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
		switch key {
		case "TITLE":
			meta.title = value
		case "ARTIST":
			meta.artist = value
		case "CREDIT":
			meta.credit = value
		case "MUSIC":
			meta.music = value
		case "OFFSET":
			offs, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, fmt.Errorf("bad #OFFSET: %w", err)
			}
			meta.offset = -offs
		case "BPMS":
			for _, bpm := range strings.Split(strings.ReplaceAll(value, "\n", ""), ",") {
				beat, rate, ok := strings.Cut(bpm, "=")
				if !ok {
					return nil, fmt.Errorf("bad #BPMS entry %q", bpm)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(beat), 64)
				if nil != err {
					return nil, fmt.Errorf("bad #BPMS beat: %w", err)
				}
				v, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
				if nil != err {
					return nil, fmt.Errorf("bad #BPMS value: %w", err)
				}
				meta.bpms = append(meta.bpms, game.BPM{StartingBeat: sb, Value: v})
			}
		}
	}
	sort.SliceStable(meta.bpms, func(i, j int) bool {
		return meta.bpms[i].StartingBeat < meta.bpms[j].StartingBeat
	})
	return meta, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s*1000)) * time.Millisecond
}

// parseNotes walks the measures of one chart. A measure is four beats
// split evenly across its rows.
func (p *SMParser) parseNotes(body string, lanes int, meta *smMeta) []game.HitEvent {
	body, _, _ = strings.Cut(body, ";")

	events := []game.HitEvent{}
	open := map[int]int{} // lane to index of its unclosed hold head
	at := meta.offset
	beat := 0.0

	for _, block := range strings.Split(body, ",") {
		rows := []string{}
		for _, l := range strings.Split(block, "\n") {
			l = strings.TrimSpace(l)
			if strings.HasPrefix(l, "//") || len(l) != lanes {
				continue
			}
			rows = append(rows, l)
		}
		if len(rows) == 0 {
			continue
		}

		beatsPerRow := 4.0 / float64(len(rows))
		for _, row := range rows {
			secondsPerRow := beatsPerRow * 60 / bpmAt(meta.bpms, beat)
			t := seconds(at)
			for lane, c := range row {
				switch c {
				case '1':
					events = append(events, game.HitEvent{Lane: lane, Time: t})
				case '2', '4':
					open[lane] = len(events)
					events = append(events, game.HitEvent{Lane: lane, Time: t, Kind: game.Hold})
				case '3':
					if i, ok := open[lane]; ok {
						events[i].Duration = t - events[i].Time
						delete(open, lane)
					}
				}
			}
			at += secondsPerRow
			beat += beatsPerRow
		}
	}

	// unclosed or empty holds are plain taps, and notes before the audio
	// starts cannot be played
	kept := events[:0]
	for _, e := range events {
		if e.Kind == game.Hold && e.Duration <= 0 {
			e.Kind, e.Duration = game.Tap, 0
		}
		if e.Time < 0 {
			continue
		}
		kept = append(kept, e)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Time < kept[j].Time
	})
	return kept
}
