package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestNewChartRejectsMalformed(t *testing.T) {
	tests := map[string]struct {
		events []HitEvent
		want   error
		index  int
	}{
		"unsorted": {
			events: []HitEvent{{Lane: 0, Time: ms(200)}, {Lane: 1, Time: ms(100)}},
			want:   ErrUnsorted,
			index:  1,
		},
		"lane too high": {
			events: []HitEvent{{Lane: 4, Time: ms(100)}},
			want:   ErrLane,
		},
		"negative lane": {
			events: []HitEvent{{Lane: 0}, {Lane: -1, Time: ms(10)}},
			want:   ErrLane,
			index:  1,
		},
		"negative time": {
			events: []HitEvent{{Lane: 0, Time: -ms(1)}},
			want:   ErrTime,
		},
		"tap with duration": {
			events: []HitEvent{{Lane: 0, Time: ms(1), Duration: ms(5)}},
			want:   ErrDuration,
		},
		"negative hold": {
			events: []HitEvent{{Lane: 0, Time: ms(1), Kind: Hold, Duration: -ms(5)}},
			want:   ErrDuration,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewChart(test.events, 4)
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.want), "got %v", err)
			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, test.index, le.Index)
		})
	}

	_, err := NewChart(nil, 0)
	assert.Error(t, err)
}

func TestPopDueReturnsEachEventOnceInOrder(t *testing.T) {
	events := []HitEvent{
		{Lane: 0, Time: ms(100)},
		{Lane: 1, Time: ms(100)},
		{Lane: 2, Time: ms(250)},
		{Lane: 3, Time: ms(900), Kind: Hold, Duration: ms(300)},
		{Lane: 0, Time: ms(2000)},
	}
	c, err := NewChart(events, 4)
	require.NoError(t, err)

	var popped []HitEvent
	for now := -ms(500); now <= ms(2500); now += ms(16) {
		popped = append(popped, c.PopDue(now, ms(300))...)
	}

	require.Equal(t, events, popped)
	for i := 1; i < len(popped); i++ {
		assert.LessOrEqual(t, popped[i-1].Time, popped[i].Time)
	}
	assert.True(t, c.Exhausted())
	assert.Empty(t, c.PopDue(ms(10000), ms(300)))
	assert.Equal(t, 0, c.Remaining())
}

func TestPopDueBoundaryIsInclusive(t *testing.T) {
	c, err := NewChart([]HitEvent{{Time: ms(1000)}, {Time: ms(1001)}}, 1)
	require.NoError(t, err)

	assert.Len(t, c.PopDue(ms(700), ms(300)), 1)
	e, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, ms(1001), e.Time)
	assert.Equal(t, 1, c.Cursor())
}

func TestChartDoesNotAliasInput(t *testing.T) {
	events := []HitEvent{{Time: ms(10)}}
	c, err := NewChart(events, 1)
	require.NoError(t, err)
	events[0].Time = ms(99)
	assert.Equal(t, ms(10), c.Events()[0].Time)
}

func TestChartDuration(t *testing.T) {
	c, err := NewChart([]HitEvent{
		{Time: ms(1000), Kind: Hold, Duration: ms(5000)},
		{Time: ms(2000)},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, ms(7000), c.Duration())

	empty, err := NewChart(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), empty.Duration())
	assert.True(t, empty.Exhausted())
}
