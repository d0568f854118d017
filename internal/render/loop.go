package render

import (
	"context"
	"time"
)

// Loop calls frame once per period with the wall time since the previous
// call, until frame returns false or ctx is done.
func Loop(ctx context.Context, period time.Duration, frame func(dt time.Duration) bool) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(last)
			last = now
			if !frame(dt) {
				return nil
			}
		}
	}
}
