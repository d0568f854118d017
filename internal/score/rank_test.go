package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankFor(t *testing.T) {
	tests := []struct {
		accuracy float64
		failed   bool
		rank     Rank
	}{
		{100, true, RankF},
		{100, false, RankSS},
		{99.99, false, RankS},
		{95, false, RankS},
		{94.9, false, RankA},
		{90, false, RankA},
		{80, false, RankB},
		{70, false, RankC},
		{69.9, false, RankD},
		{0, false, RankD},
	}
	for _, test := range tests {
		assert.Equal(t, test.rank, RankFor(test.accuracy, test.failed), "%v %v", test.accuracy, test.failed)
	}
}
