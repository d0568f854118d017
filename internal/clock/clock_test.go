package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const frame = 16 * time.Millisecond

func TestGraceCountsUpAndSignalsOnce(t *testing.T) {
	c := New(2 * time.Second)
	assert.Equal(t, Grace, c.Mode())
	assert.Equal(t, -2*time.Second, c.Now())

	signals := 0
	var now time.Duration
	for i := 0; i < 200; i++ {
		var sig Signal
		now, sig = c.Advance(frame, 0, false)
		if sig == StartAudio {
			signals++
			assert.GreaterOrEqual(t, now, time.Duration(0))
			break
		}
		assert.Less(t, now, time.Duration(0))
	}
	assert.Equal(t, 1, signals)
	assert.Equal(t, AudioSynced, c.Mode())
	assert.Equal(t, time.Duration(0), now) // 125 frames of 16ms from -2s
}

func TestAudioPositionIsAuthoritative(t *testing.T) {
	c := New(0)
	c.Advance(0, 0, false)
	now, sig := c.Advance(frame, 500*time.Millisecond, true)
	assert.Equal(t, None, sig)
	assert.Equal(t, 500*time.Millisecond, now)

	// drift in dt is ignored while audio plays
	now, _ = c.Advance(time.Second, 510*time.Millisecond, true)
	assert.Equal(t, 510*time.Millisecond, now)
}

func TestAudioBehindIsClamped(t *testing.T) {
	c := New(0)
	c.Advance(20*time.Millisecond, 0, false)
	now, _ := c.Advance(frame, 5*time.Millisecond, true)
	assert.Equal(t, 20*time.Millisecond, now)
	now, _ = c.Advance(frame, 30*time.Millisecond, true)
	assert.Equal(t, 30*time.Millisecond, now)
}

func TestFallbackWhenAudioStops(t *testing.T) {
	c := New(0)
	c.Advance(0, 0, false)
	c.Advance(frame, time.Second, true)

	// the switching frame adds dt exactly once, it does not also take the position
	now, _ := c.Advance(frame, 5*time.Second, false)
	assert.Equal(t, Fallback, c.Mode())
	assert.Equal(t, time.Second+frame, now)

	now, _ = c.Advance(frame, 9*time.Second, true)
	assert.Equal(t, Fallback, c.Mode())
	assert.Equal(t, time.Second+2*frame, now)
}

func TestNoAudioAtAllKeepsProgressing(t *testing.T) {
	c := New(100 * time.Millisecond)
	var last time.Duration = -time.Hour
	for i := 0; i < 100; i++ {
		now, _ := c.Advance(frame, 0, false)
		assert.GreaterOrEqual(t, now, last)
		last = now
	}
	assert.Equal(t, Fallback, c.Mode())
	assert.Equal(t, 100*frame-100*time.Millisecond, last)
}

func TestNegativeDeltaIgnored(t *testing.T) {
	c := New(time.Second)
	now, _ := c.Advance(-frame, 0, false)
	assert.Equal(t, -time.Second, now)
	assert.Equal(t, "grace", c.Mode().String())
	assert.Equal(t, "fallback", Fallback.String())
}
