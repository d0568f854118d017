package game

type Tier uint8

const (
	Perfect Tier = iota
	Great
	Miss
)

type Judgement struct {
	Name   string
	Weight int64 // accuracy weight and base score value
}

var Judgements = [...]Judgement{
	Perfect: {Name: "PERFECT", Weight: 300},
	Great:   {Name: "GREAT", Weight: 100},
	Miss:    {Name: "MISS", Weight: 0},
}

const MaxWeight = 300

func (t Tier) String() string {
	if int(t) < len(Judgements) {
		return Judgements[t].Name
	}
	return "UNKNOWN"
}

func (t Tier) Weight() int64 {
	if int(t) < len(Judgements) {
		return Judgements[t].Weight
	}
	return 0
}

// Judge maps an absolute offset from the hit line to a tier. Offsets
// beyond the hit window do not register.
func Judge(offset float64, t *Tuning) (Tier, bool) {
	if offset < 0 {
		offset = -offset
	}
	switch {
	case offset < t.PerfectThreshold:
		return Perfect, true
	case offset <= t.HitWindow:
		return Great, true
	}
	return Miss, false
}
