package engine

import (
	"math"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/score"
)

type ReportKind uint8

const (
	ReportHit ReportKind = iota
	ReportGrab
	ReportComplete
	ReportMiss
	ReportSpam
	ReportBreak
)

func (k ReportKind) String() string {
	switch k {
	case ReportHit:
		return "hit"
	case ReportGrab:
		return "grab"
	case ReportComplete:
		return "complete"
	case ReportMiss:
		return "miss"
	case ReportSpam:
		return "spam"
	case ReportBreak:
		return "break"
	}
	return "unknown"
}

// Report is one judgement handed to the aggregator.
type Report struct {
	Kind   ReportKind
	Lane   int
	Note   game.NoteID // -1 for spam
	Tier   game.Tier
	Offset float64 // signed pixels from the hit line at the input
	Points int64
}

// Text is what presentation shows for the report, empty for none.
func (r Report) Text() string {
	switch r.Kind {
	case ReportHit, ReportGrab, ReportComplete:
		return r.Tier.String()
	case ReportMiss:
		return game.Miss.String()
	case ReportBreak:
		return "BREAK"
	}
	return ""
}

// Judge turns inputs and note transitions into reports, and applies each
// report to the session stats. Once health reaches zero it does nothing.
type Judge struct {
	sched      *Scheduler
	stats      *score.Stats
	tuning     *game.Tuning
	speed      float64
	multiplier float64

	reports []Report
}

func NewJudge(sched *Scheduler, stats *score.Stats, tuning *game.Tuning, speed, multiplier float64) *Judge {
	return &Judge{
		sched:      sched,
		stats:      stats,
		tuning:     tuning,
		speed:      speed,
		multiplier: multiplier,
	}
}

// OnInputDown judges the nearest eligible note of the lane within the hit
// window. Without one, a press far from any note is a spam penalty. A lane
// whose hold is still held is already down, so the press is ignored.
func (j *Judge) OnInputDown(lane int, now time.Duration) (Report, bool) {
	if j.stats.Dead() {
		return Report{}, false
	}

	var nearest *game.Note
	nearby := false
	for _, n := range j.sched.Lane(lane) {
		if n.Held() {
			return Report{}, false
		}
		if n.Gone() {
			continue
		}
		if n.Distance() < j.tuning.NearbyBand {
			nearby = true
		}
		if !n.Eligible() || math.Abs(n.Offset) > j.tuning.HitWindow {
			continue
		}
		// ties keep the earlier note
		if nil == nearest || math.Abs(n.Offset) < math.Abs(nearest.Offset) {
			nearest = n
		}
	}

	if nil == nearest {
		if nearby {
			return Report{}, false
		}
		return j.spam(lane), true
	}

	offset := nearest.Offset
	tier, ok := nearest.Strike(now, j.tuning)
	if !ok {
		return Report{}, false
	}
	r := Report{Kind: ReportHit, Lane: lane, Note: nearest.ID, Tier: tier, Offset: offset}
	if nearest.Event.Kind == game.Hold {
		r.Kind = ReportGrab
	}
	r.Points = j.stats.Hit(tier, j.multiplier)
	j.stats.Timing(game.TravelTime(offset, j.speed))
	switch {
	case r.Kind == ReportGrab:
		j.stats.Heal(j.tuning.HoldTickHealth)
	case tier == game.Perfect:
		j.stats.Heal(j.tuning.PerfectHealth)
	default:
		j.stats.Heal(j.tuning.GreatHealth)
	}
	j.reports = append(j.reports, r)
	return r, true
}

func (j *Judge) spam(lane int) Report {
	j.stats.Spam()
	j.stats.Heal(j.tuning.SpamHealth)
	r := Report{Kind: ReportSpam, Lane: lane, Note: -1, Tier: game.Miss}
	j.reports = append(j.reports, r)
	return r
}

// OnInputUp breaks a hold of the lane released before its tail reached the
// hit line. The broken combo is the whole penalty.
func (j *Judge) OnInputUp(lane int, now time.Duration) bool {
	if j.stats.Dead() {
		return false
	}
	for _, n := range j.sched.Lane(lane) {
		if !n.Held() {
			continue
		}
		j.accrue(n, now)
		n.Release()
		j.stats.Break()
		j.reports = append(j.reports, Report{Kind: ReportBreak, Lane: lane, Note: n.ID, Tier: game.Miss})
		return true
	}
	return false
}

// OnTick grants hold ticks to every held note whose tail has not yet
// reached the hit line. Ticks are granted per elapsed HoldTickPeriod of
// session time, so the trickle does not depend on the frame rate.
func (j *Judge) OnTick(dt, now time.Duration) {
	if j.stats.Dead() {
		return
	}
	for _, n := range j.sched.Notes() {
		if n.State == game.Holding {
			j.accrue(n, now)
		}
	}
}

func (j *Judge) accrue(n *game.Note, now time.Duration) {
	period := j.tuning.HoldTickPeriod
	if period <= 0 {
		return
	}
	end := now
	if tail := n.Event.End(); tail < end {
		end = tail
	}
	for n.TickedUntil+period <= end {
		n.TickedUntil += period
		j.stats.AddScore(j.tuning.HoldTickScore)
		j.stats.Heal(j.tuning.HoldTickHealth)
	}
}

// Complete reports a hold whose tail reached the hit line while held.
func (j *Judge) Complete(n *game.Note) {
	if j.stats.Dead() {
		return
	}
	j.accrue(n, n.Event.End())
	r := Report{Kind: ReportComplete, Lane: n.Lane(), Note: n.ID, Tier: game.Perfect}
	r.Points = j.stats.Hit(game.Perfect, j.multiplier)
	j.reports = append(j.reports, r)
}

// Miss reports a note that crossed the hit line unjudged.
func (j *Judge) Miss(n *game.Note) {
	if j.stats.Dead() {
		return
	}
	j.stats.Miss()
	j.stats.Heal(j.tuning.MissHealth)
	j.reports = append(j.reports, Report{Kind: ReportMiss, Lane: n.Lane(), Note: n.ID, Tier: game.Miss, Offset: n.Offset})
}

// Reports returns the reports since the last Flush.
func (j *Judge) Reports() []Report {
	return j.reports
}

func (j *Judge) Flush() {
	j.reports = j.reports[:0]
}
