package score

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
	"github.com/stretchr/testify/suite"
)

type ScorerSuite struct {
	suite.Suite
	dir    string
	scorer *DefaultScorer
	clock  time.Time
}

func (s *ScorerSuite) SetupTest() {
	var err error
	s.dir, err = os.MkdirTemp("", "scores-test-*")
	s.Require().NoError(err)

	s.scorer, err = Open(filepath.Join(s.dir, "scores.db"))
	s.Require().NoError(err)
	s.clock = time.Unix(1700000000, 0)
	s.scorer.now = func() time.Time {
		s.clock = s.clock.Add(time.Minute)
		return s.clock
	}
}

func (s *ScorerSuite) TearDownTest() {
	s.NoError(s.scorer.Close())
	os.RemoveAll(s.dir)
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerSuite))
}

func (s *ScorerSuite) TestBestMissing() {
	rec, err := s.scorer.Best("nothing")
	s.NoError(err)
	s.Nil(rec)
}

func (s *ScorerSuite) TestKeepsHigherScore() {
	s.Require().NoError(s.scorer.Submit(&Record{SessionID: "a", ChartHash: "c", Score: 1000, MaxCombo: 40, Rank: RankB}))
	s.Require().NoError(s.scorer.Submit(&Record{SessionID: "b", ChartHash: "c", Score: 500, MaxCombo: 90, Rank: RankS}))

	best, err := s.scorer.Best("c")
	s.Require().NoError(err)
	s.Equal("a", best.SessionID)
	s.Equal(int64(1000), best.Score)
	s.Equal(40, best.MaxCombo)

	s.Require().NoError(s.scorer.Submit(&Record{SessionID: "c", ChartHash: "c", Score: 2000, MaxCombo: 10, Rank: RankA}))
	best, err = s.scorer.Best("c")
	s.Require().NoError(err)
	s.Equal("c", best.SessionID)
	s.Equal(int64(2000), best.Score)
	s.Equal(40, best.MaxCombo, "best combo is kept across plays")
	s.Equal(RankA, best.Rank)
}

func (s *ScorerSuite) TestHistoryKeepsEveryPlayWithInputs() {
	inputs := []game.Input{
		{Lane: 1, Down: true, At: 5 * time.Second},
		{Lane: 1, At: 6 * time.Second},
	}
	s.Require().NoError(s.scorer.Submit(&Record{SessionID: "a", ChartHash: "c", Score: 10, Inputs: inputs}))
	s.Require().NoError(s.scorer.Submit(&Record{SessionID: "b", ChartHash: "c", Score: 5, Failed: true, Rank: RankF}))
	s.Require().NoError(s.scorer.Submit(&Record{SessionID: "z", ChartHash: "other", Score: 5}))

	histories, err := s.scorer.History("c")
	s.Require().NoError(err)
	s.Require().Len(histories, 2)
	s.Equal("a", histories[0].SessionID)
	s.Equal(inputs, histories[0].Inputs)
	s.True(histories[1].Failed)
	s.Equal(RankF, histories[1].Rank)
	s.True(histories[0].PlayedAt.Before(histories[1].PlayedAt))
}

func (s *ScorerSuite) TestHashDependsOnTimeline() {
	a := []game.HitEvent{{Lane: 0, Time: time.Second}}
	b := []game.HitEvent{{Lane: 1, Time: time.Second}}
	s.Equal(Hash(a), Hash(a))
	s.NotEqual(Hash(a), Hash(b))
}
