package theme

import (
	"fmt"
	"math"
	"strings"

	"git.lost.host/meutraa/qwerty/internal/game"
)

type Color struct {
	R, G, B uint8
}

// Paint wraps s in a 24 bit foreground colour escape.
func (c Color) Paint(s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

type DefaultTheme struct{}

const (
	noteSym   = "⬤"
	holdSym   = "◆"
	bodySym   = "┃"
	brokenSym = "╏"
	flashSym  = "✦"
	barSym    = "━"
)

var (
	neonBlue = Color{56, 189, 248}
	white    = Color{255, 255, 255}
	gray     = Color{100, 100, 100}
	red      = Color{236, 30, 0}

	laneColors = [...]Color{
		{236, 30, 0},    // red
		{0, 118, 236},   // blue
		{106, 0, 236},   // purple
		{236, 195, 0},   // yellow
		{236, 195, 0},   // yellow
		{106, 0, 236},   // purple
		{0, 118, 236},   // blue
		{236, 30, 0},    // red
		{0, 236, 128},   // green
		{236, 128, 0},   // orange
	}
	tierColors = map[game.Tier]Color{
		game.Perfect: {173, 236, 236},
		game.Great:   {0, 236, 128},
		game.Miss:    red,
	}
)

// laneColor mirrors the palette around the middle of the playfield.
func laneColor(lane int) Color {
	if lane < 0 {
		return white
	}
	return laneColors[lane%len(laneColors)]
}

func (t *DefaultTheme) Note(lane int, kind game.Kind, state game.State) string {
	sym := noteSym
	if kind == game.Hold {
		sym = holdSym
	}
	switch state {
	case game.Missed, game.BrokenHeld:
		return gray.Paint(sym)
	case game.HeldInitial, game.Holding:
		return white.Paint(sym)
	}
	return laneColor(lane).Paint(sym)
}

func (t *DefaultTheme) Body(lane int, state game.State) string {
	switch state {
	case game.BrokenHeld, game.Missed:
		return gray.Paint(brokenSym)
	case game.HeldInitial, game.Holding:
		return white.Paint(bodySym)
	}
	return laneColor(lane).Paint(bodySym)
}

func (t *DefaultTheme) HitField(lane int, key rune) string {
	return neonBlue.Paint(barSym + string(key) + barSym)
}

func (t *DefaultTheme) Flash(tier game.Tier) string {
	return tierColors[tier].Paint(flashSym)
}

func (t *DefaultTheme) Judgement(text string) string {
	switch text {
	case game.Perfect.String():
		return tierColors[game.Perfect].Paint(text)
	case game.Great.String():
		return tierColors[game.Great].Paint(text)
	case "":
		return ""
	}
	return red.Paint(text)
}

// Health draws a bar of width cells, red once below a quarter.
func (t *DefaultTheme) Health(fraction float64, width int) string {
	fraction = math.Max(0, math.Min(1, fraction))
	full := int(math.Round(fraction * float64(width)))
	c := neonBlue
	if fraction < 0.25 {
		c = red
	}
	return c.Paint(strings.Repeat("█", full)) + gray.Paint(strings.Repeat("░", width-full))
}
