package engine

import (
	"testing"

	"git.lost.host/meutraa/qwerty/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(t *testing.T, events ...game.HitEvent) *Scheduler {
	t.Helper()
	chart, err := game.NewChart(events, 8)
	require.NoError(t, err)
	tuning := game.DefaultTuning()
	return NewScheduler(chart, &tuning, speed)
}

func TestLookahead(t *testing.T) {
	assert.Equal(t, ms(2000), Lookahead(600, speed))
	s := newScheduler(t)
	assert.Equal(t, Lookahead(820, speed), s.Lookahead())
	assert.True(t, s.Done())
}

func TestSpawnEachEventOnce(t *testing.T) {
	var events []game.HitEvent
	for i := 0; i < 200; i++ {
		events = append(events, tap(i%8, 1000+i*25))
	}
	s := newScheduler(t, events...)

	seen := map[game.NoteID]bool{}
	for now := 0; now <= 8000; now += 16 {
		for i := 0; i < 3; i++ {
			for _, n := range s.Spawn(ms(now)) {
				require.False(t, seen[n.ID], "note %d spawned twice", n.ID)
				seen[n.ID] = true
				assert.Equal(t, events[n.ID], n.Event)
			}
		}
		s.Advance(ms(now))
		s.Sweep()
	}
	assert.Len(t, seen, len(events))
	assert.True(t, s.Done())
}

func TestSpawnPositionsOnTime(t *testing.T) {
	s := newScheduler(t, tap(0, 3000), tap(1, 3000), tap(0, 9000))
	spawned := s.Spawn(ms(1000))
	require.Len(t, spawned, 2)
	for _, n := range spawned {
		assert.Equal(t, -600.0, n.Offset)
	}
	assert.Len(t, s.Lane(0), 1)
	assert.Len(t, s.Lane(1), 1)
	assert.Empty(t, s.Lane(2))
	assert.False(t, s.Done())
}

func TestSweepReportsMissOnce(t *testing.T) {
	s := newScheduler(t, tap(0, 1000), hold(1, 1000, 500))
	s.Spawn(0)

	s.Advance(ms(1300))
	missed := s.Sweep()
	require.Len(t, missed, 2)
	assert.Equal(t, game.NoteID(0), missed[0].ID)
	assert.Equal(t, game.NoteID(1), missed[1].ID)

	s.Advance(ms(1400))
	assert.Empty(t, s.Sweep())
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get(0)
	assert.False(t, ok)
}

func TestAdvanceReturnsCompletedHolds(t *testing.T) {
	s := newScheduler(t, hold(0, 1000, 500))
	s.Spawn(0)
	tuning := game.DefaultTuning()
	n, ok := s.Get(0)
	require.True(t, ok)
	s.Advance(ms(1000))
	_, ok = n.Strike(ms(1000), &tuning)
	require.True(t, ok)

	assert.Empty(t, s.Advance(ms(1499)))
	done := s.Advance(ms(1500))
	require.Len(t, done, 1)
	assert.Same(t, n, done[0])
	assert.Empty(t, s.Advance(ms(1600)), "completion is reported once")
	assert.Empty(t, s.Sweep())
	assert.True(t, s.Done())
}
