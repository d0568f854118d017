package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/qwerty/internal/engine"
	"git.lost.host/meutraa/qwerty/internal/game"
	"git.lost.host/meutraa/qwerty/internal/theme"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const (
	laneWidth   = 4 // columns per lane
	barRow      = 4 // rows below the hit line
	flashFrames = 24
)

// DefaultRenderer draws a session on an ANSI terminal. Every frame is
// composed into a buffer and written at once.
type DefaultRenderer struct {
	out   io.Writer
	fd    int
	theme theme.Theme
	keys  []rune

	rows, cols int
	lanes      int

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

// NewDefaultRenderer draws to out. fd is the terminal to put in raw mode
// and measure, or -1 to keep the 80x24 default.
func NewDefaultRenderer(out io.Writer, fd int, th theme.Theme, keys []rune) *DefaultRenderer {
	return &DefaultRenderer{out: out, fd: fd, theme: th, keys: keys, rows: 24, cols: 80}
}

func (r *DefaultRenderer) Init() error {
	if r.fd >= 0 && term.IsTerminal(r.fd) {
		state, err := term.MakeRaw(r.fd)
		if nil != err {
			return fmt.Errorf("unable to enter raw mode: %w", err)
		}
		r.restoreState = state
		if err := r.measure(); nil != err {
			return err
		}
	}

	_, err := fmt.Fprintf(r.out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return err
}

func (r *DefaultRenderer) measure() error {
	cols, rows, err := term.GetSize(r.fd)
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	r.rows, r.cols = rows, cols
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(r.fd, r.restoreState)
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			continue
		}
		r.Fill(d.Y, d.X, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func (r *DefaultRenderer) hitRow() int {
	return r.rows - barRow
}

// laneCol is the centre column of a lane, 1 based.
func (r *DefaultRenderer) laneCol(lane, lanes int) int {
	return r.cols/2 - lanes*laneWidth/2 + lane*laneWidth + laneWidth/2
}

// Report flashes the lane of a judgement just above the hit line.
func (r *DefaultRenderer) Report(rep engine.Report) {
	if r.lanes == 0 || rep.Kind == engine.ReportSpam || rep.Kind == engine.ReportBreak {
		return
	}
	r.AddDecoration(r.laneCol(rep.Lane, r.lanes), r.hitRow()-1, r.theme.Flash(rep.Tier), flashFrames)
}

func (r *DefaultRenderer) Draw(v *engine.View) {
	if r.fd >= 0 && nil != r.restoreState {
		// the terminal may have been resized, keep the old size if not
		_ = r.measure()
	}
	r.lanes = v.Lanes
	r.buffer.WriteString("\033[2J")

	hit := r.hitRow()
	scale := 1.0 // pixels per row
	if field := hit - 2; field > 0 && v.SpawnDistance > 0 {
		scale = v.SpawnDistance / float64(field)
	}

	for lane := 0; lane < v.Lanes; lane++ {
		key := ' '
		if lane < len(r.keys) {
			key = r.keys[lane]
		}
		r.Fill(hit, r.laneCol(lane, v.Lanes)-1, r.theme.HitField(lane, key))
	}

	for _, n := range v.Notes {
		col := r.laneCol(n.Lane, v.Lanes)
		head := hit + int(math.Round(n.Offset/scale))
		held := n.State == game.HeldInitial || n.State == game.Holding
		if held && head > hit {
			head = hit
		}
		if n.Kind == game.Hold {
			tail := hit + int(math.Round((n.Offset-n.Length)/scale))
			for row := max(tail, 1); row < head && row <= r.rows; row++ {
				r.Fill(row, col, r.theme.Body(n.Lane, n.State))
			}
		}
		if head >= 1 && head <= r.rows {
			r.Fill(head, col, r.theme.Note(n.Lane, n.Kind, n.State))
		}
	}

	r.drawHUD(v)
	r.tickDecorations()

	if text := r.theme.Judgement(v.Judgement); text != "" {
		r.Fill(hit-3, r.cols/2-len(v.Judgement)/2, text)
	}
	switch {
	case v.Paused:
		r.center(r.rows/2, "PAUSED  space to resume, esc to quit")
	case v.Phase == engine.Failed:
		r.center(r.rows/2, "FAILED")
	case v.Phase == engine.Complete:
		r.center(r.rows/2, "CLEARED")
	}
}

func (r *DefaultRenderer) center(row int, message string) {
	r.Fill(row, r.cols/2-len(message)/2, message)
}

func (r *DefaultRenderer) drawHUD(v *engine.View) {
	st := &v.Stats
	health := 0.0
	if st.MaxHealth > 0 {
		health = st.Health / st.MaxHealth
	}
	lines := []string{
		v.Title,
		"",
		"Score     " + humanize.Comma(st.Score),
		"Combo     " + strconv.Itoa(st.Combo) + " (" + strconv.Itoa(st.MaxCombo) + ")",
		fmt.Sprintf("Accuracy  %.2f%%", v.Accuracy),
		"Health    " + r.theme.Health(health, 16),
		"",
		fmt.Sprintf("Perfect   %d", st.Perfects),
		fmt.Sprintf("Great     %d", st.Greats),
		fmt.Sprintf("Miss      %d", st.Misses),
		fmt.Sprintf("Spam      %d", st.Spams),
		fmt.Sprintf("Left      %d", v.Remaining),
		"",
		fmt.Sprintf("%v / %v  %v", v.Now.Truncate(time.Second), v.Duration.Truncate(time.Second), v.Mode),
		progress(v.Progress(), 24),
	}
	for i, line := range lines {
		r.Fill(2+i, 2, line)
	}
}

func progress(fraction float64, width int) string {
	done := int(fraction * float64(width))
	return "[" + strings.Repeat("=", done) + strings.Repeat(" ", width-done) + "]"
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) Flush() error {
	_, err := io.WriteString(r.out, r.buffer.String())
	r.buffer.Reset()
	return err
}
