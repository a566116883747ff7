package ledger

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

// newRetrySchedule spaces out retries of failed batches: about 2s, 4s, 8s and
// so on up to 5m, each randomized by 10%.
func newRetrySchedule() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.Multiplier = 2
	b.MaxInterval = 5 * time.Minute
	b.RandomizationFactor = 0.1
	b.Reset()

	return b
}
