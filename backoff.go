package utapi

import (
	"context"
	"math/rand"
	"time"
)

// backoff computes exponential retry delays: base doubled per attempt, capped
// at max, plus up to fuzz of random jitter so concurrent pollers spread out.
type backoff struct {
	base time.Duration
	max  time.Duration
	fuzz time.Duration
}

// forAttempt returns the delay before retry attempt (zero-indexed).
func (b backoff) forAttempt(attempt int) time.Duration {
	d := b.base
	for i := 0; i < attempt && d < b.max; i++ {
		d *= 2
	}
	if d > b.max {
		d = b.max
	}
	if b.fuzz > 0 {
		d += time.Duration(rand.Int63n(int64(b.fuzz))) //nolint:gosec // G404: jitter needs no cryptographic strength
	}
	return d
}

// sleepCtx waits for d or for ctx to be done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
