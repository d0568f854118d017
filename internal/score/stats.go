package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
)

// Stats is the running state of one session. It is only mutated through
// the reporting methods below.
type Stats struct {
	Score     int64
	Combo     int
	MaxCombo  int
	Health    float64
	MaxHealth float64

	Perfects int
	Greats   int
	Misses   int
	Spams    int
	Breaks   int // early hold releases, not part of accuracy

	// Welford running mean and variance of hit offsets in ms
	timed    int
	mean, m2 float64
}

func NewStats(maxHealth float64) *Stats {
	return &Stats{Health: maxHealth, MaxHealth: maxHealth}
}

// Hit counts a judged hit and returns the points it earned: the tier value
// scaled by the combo including this hit and the difficulty multiplier.
func (s *Stats) Hit(tier game.Tier, multiplier float64) int64 {
	switch tier {
	case game.Perfect:
		s.Perfects++
	case game.Great:
		s.Greats++
	default:
		s.Miss()
		return 0
	}
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	points := int64(math.Round(float64(tier.Weight()) * float64(s.Combo) * multiplier))
	s.Score += points
	return points
}

func (s *Stats) Miss() {
	s.Misses++
	s.Combo = 0
}

func (s *Stats) Spam() {
	s.Spams++
	s.Combo = 0
}

func (s *Stats) Break() {
	s.Breaks++
	s.Combo = 0
}

func (s *Stats) AddScore(points int64) {
	if points > 0 {
		s.Score += points
	}
}

// Heal adds d (which may be negative) to health, clamped to [0, MaxHealth].
func (s *Stats) Heal(d float64) {
	s.Health = math.Max(0, math.Min(s.MaxHealth, s.Health+d))
}

func (s *Stats) Dead() bool {
	return s.Health <= 0
}

// Judged is the number of events that count towards accuracy.
func (s *Stats) Judged() int {
	return s.Perfects + s.Greats + s.Misses + s.Spams
}

// Accuracy is the weighted percentage of judged events. A session with
// nothing judged is at 100%.
func (s *Stats) Accuracy() float64 {
	n := s.Judged()
	if n == 0 {
		return 100
	}
	weighted := int64(s.Perfects)*game.Perfect.Weight() + int64(s.Greats)*game.Great.Weight()
	return float64(weighted) * 100 / float64(int64(n)*game.MaxWeight)
}

// Timing records the signed error of a hit, negative is early.
func (s *Stats) Timing(offset time.Duration) {
	x := float64(offset) / float64(time.Millisecond)
	s.timed++
	d := x - s.mean
	s.mean += d / float64(s.timed)
	s.m2 += d * (x - s.mean)
}

func (s *Stats) MeanOffset() time.Duration {
	return time.Duration(s.mean * float64(time.Millisecond))
}

func (s *Stats) StdevOffset() time.Duration {
	if s.timed < 2 {
		return 0
	}
	return time.Duration(math.Sqrt(s.m2/float64(s.timed-1)) * float64(time.Millisecond))
}

// Record builds the finalized result of the session.
func (s *Stats) Record(failed bool) Record {
	acc := s.Accuracy()
	return Record{
		Score:    s.Score,
		MaxCombo: s.MaxCombo,
		Accuracy: acc,
		Rank:     RankFor(acc, failed),
		Perfects: s.Perfects,
		Greats:   s.Greats,
		Misses:   s.Misses,
		Spams:    s.Spams,
		Failed:   failed,
	}
}
