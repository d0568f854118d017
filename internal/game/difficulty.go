package game

type Difficulty struct {
	Name       string
	Meter      string  // the chart author's rating, free form
	Multiplier float64 // score multiplier
	Lanes      int
}

// LaneMap maps StepMania chart types to their lane count.
var LaneMap = map[string]int{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
	"pump-single":  5,
	"pump-double":  10,
}

// DefaultLanes is the lane count of maps that do not state one.
const DefaultLanes = 8
