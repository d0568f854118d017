package score

type Rank string

const (
	RankSS Rank = "SS"
	RankS  Rank = "S"
	RankA  Rank = "A"
	RankB  Rank = "B"
	RankC  Rank = "C"
	RankD  Rank = "D"
	RankF  Rank = "F"
)

func RankFor(accuracy float64, failed bool) Rank {
	switch {
	case failed:
		return RankF
	case accuracy >= 100:
		return RankSS
	case accuracy >= 95:
		return RankS
	case accuracy >= 90:
		return RankA
	case accuracy >= 80:
		return RankB
	case accuracy >= 70:
		return RankC
	}
	return RankD
}
