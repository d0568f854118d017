package game

// BPM is a tempo change starting at a beat.
type BPM struct {
	StartingBeat float64
	Value        float64
}
