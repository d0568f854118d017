package theme

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/qwerty/internal/game"
	"github.com/stretchr/testify/assert"
)

var _ Theme = &DefaultTheme{}

func TestPaint(t *testing.T) {
	assert.Equal(t, "\033[38;2;1;2;3mx\033[0m", Color{1, 2, 3}.Paint("x"))
}

func TestNoteColoursFollowState(t *testing.T) {
	th := &DefaultTheme{}
	assert.Equal(t, laneColor(2).Paint(noteSym), th.Note(2, game.Tap, game.Approaching))
	assert.Equal(t, gray.Paint(holdSym), th.Note(2, game.Hold, game.BrokenHeld))
	assert.Equal(t, white.Paint(bodySym), th.Body(0, game.Holding))
	assert.Equal(t, laneColor(0), laneColor(7), "palette is mirrored")
	assert.Equal(t, white, laneColor(-1))
}

func TestJudgement(t *testing.T) {
	th := &DefaultTheme{}
	assert.Empty(t, th.Judgement(""))
	assert.Contains(t, th.Judgement("BREAK"), "BREAK")
	assert.True(t, strings.HasPrefix(th.Judgement("MISS"), "\033[38;2;236;30;0m"))
}

func TestHealthBar(t *testing.T) {
	th := &DefaultTheme{}
	bar := th.Health(0.5, 10)
	assert.Equal(t, 5, strings.Count(bar, "█"))
	assert.Equal(t, 5, strings.Count(bar, "░"))
	assert.Equal(t, 10, strings.Count(th.Health(3, 10), "█"))
	assert.Contains(t, th.Health(0.1, 10), "236;30;0")
}
