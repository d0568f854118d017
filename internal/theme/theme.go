package theme

import "git.lost.host/meutraa/qwerty/internal/game"

type Theme interface {
	Note(lane int, kind game.Kind, state game.State) string
	Body(lane int, state game.State) string
	HitField(lane int, key rune) string
	Flash(tier game.Tier) string
	Judgement(text string) string
	Health(fraction float64, width int) string
}
