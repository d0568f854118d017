package game

import (
	"errors"
	"fmt"
	"time"
)

// Tuning holds the gameplay constants. Distances are in pixels measured
// along the lane, times are wall or chart durations.
type Tuning struct {
	HitWindow        float64 `yaml:"hit_window"`        // max offset for a judged hit
	PerfectThreshold float64 `yaml:"perfect_threshold"` // offsets below this are Perfect
	NearbyBand       float64 `yaml:"nearby_band"`       // inputs with a note this close are never spam
	SpawnDistance    float64 `yaml:"spawn_distance"`    // distance a note travels before the hit line

	MaxHealth     float64 `yaml:"max_health"`
	PerfectHealth float64 `yaml:"perfect_health"`
	GreatHealth   float64 `yaml:"great_health"`
	MissHealth    float64 `yaml:"miss_health"`
	SpamHealth    float64 `yaml:"spam_health"`

	HoldTickPeriod time.Duration `yaml:"hold_tick_period"`
	HoldTickScore  int64         `yaml:"hold_tick_score"`
	HoldTickHealth float64       `yaml:"hold_tick_health"`

	FailDelay        time.Duration `yaml:"fail_delay"`
	EndDelay         time.Duration `yaml:"end_delay"`
	JudgementDisplay time.Duration `yaml:"judgement_display"`
}

func DefaultTuning() Tuning {
	return Tuning{
		HitWindow:        60,
		PerfectThreshold: 20,
		NearbyBand:       200,
		SpawnDistance:    820,

		MaxHealth:     100,
		PerfectHealth: 2,
		GreatHealth:   1,
		MissHealth:    -20,
		SpamHealth:    -5,

		HoldTickPeriod: time.Second / 60,
		HoldTickScore:  5,
		HoldTickHealth: 0.05,

		FailDelay:        2 * time.Second,
		EndDelay:         2 * time.Second,
		JudgementDisplay: 500 * time.Millisecond,
	}
}

// Travel converts a time distance into a lane distance at speed px/s.
func Travel(d time.Duration, speed float64) float64 {
	return float64(d) * speed / float64(time.Second)
}

// TravelTime is the inverse of Travel.
func TravelTime(px float64, speed float64) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(px / speed * float64(time.Second))
}

var ErrTuning = errors.New("invalid tuning")

// Validate reports the first constant that would break judging.
func (t *Tuning) Validate() error {
	switch {
	case t.HitWindow <= 0:
		return fmt.Errorf("%w: hit window must be positive", ErrTuning)
	case t.PerfectThreshold <= 0 || t.PerfectThreshold > t.HitWindow:
		return fmt.Errorf("%w: perfect threshold must be in (0, hit window]", ErrTuning)
	case t.NearbyBand < t.HitWindow:
		return fmt.Errorf("%w: nearby band is narrower than the hit window", ErrTuning)
	case t.SpawnDistance <= 0:
		return fmt.Errorf("%w: spawn distance must be positive", ErrTuning)
	case t.MaxHealth <= 0:
		return fmt.Errorf("%w: max health must be positive", ErrTuning)
	case t.HoldTickPeriod <= 0:
		return fmt.Errorf("%w: hold tick period must be positive", ErrTuning)
	}
	return nil
}
