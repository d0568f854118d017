package main

import (
	"fmt"
	"io"

	"git.lost.host/meutraa/qwerty/internal/score"
	"github.com/dustin/go-humanize"
)

// summarize prints the result of a play, and how it compares to the plays
// kept for the chart when a scorer is available.
func summarize(w io.Writer, title string, st score.Stats, rec *score.Record, scorer score.Scorer) {
	if nil == rec {
		fmt.Fprintf(w, "%s: aborted at %s points\n", title, humanize.Comma(st.Score))
		return
	}
	outcome := "cleared"
	if rec.Failed {
		outcome = "failed"
	}
	fmt.Fprintf(w, "%s: %s\n", title, outcome)
	fmt.Fprintf(w, "  Score     %12s\n", humanize.Comma(rec.Score))
	fmt.Fprintf(w, "  Rank      %12s\n", rec.Rank)
	fmt.Fprintf(w, "  Accuracy  %11.2f%%\n", rec.Accuracy)
	fmt.Fprintf(w, "  Max combo %12d\n", rec.MaxCombo)
	fmt.Fprintf(w, "  Perfect %d  Great %d  Miss %d  Spam %d\n", rec.Perfects, rec.Greats, rec.Misses, rec.Spams)
	if rec.Perfects+rec.Greats > 1 {
		fmt.Fprintf(w, "  Mean %v  Stdev %v\n", st.MeanOffset(), st.StdevOffset())
	}

	if nil == scorer || rec.ChartHash == "" {
		return
	}
	history, err := scorer.History(rec.ChartHash)
	if nil != err {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	best, err := scorer.Best(rec.ChartHash)
	if nil != err || nil == best {
		return
	}
	if len(history) > 0 {
		fmt.Fprintf(w, "  %s play of this chart\n", humanize.Ordinal(len(history)))
	}
	if len(history) > 1 {
		fmt.Fprintf(w, "  First played %s\n", humanize.Time(history[0].PlayedAt))
	}
	if best.SessionID == rec.SessionID {
		fmt.Fprintln(w, "  New best!")
	} else {
		fmt.Fprintf(w, "  Best      %12s (%s)\n", humanize.Comma(best.Score), best.Rank)
	}
}
