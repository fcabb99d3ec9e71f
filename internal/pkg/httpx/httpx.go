package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"
)

// Retry helpers for outbound provider calls. The payment provider is the only
// external HTTP dependency, so the policy is small: retry timeouts and
// transient transport failures, give up on everything the caller can act on.

func IsRetryableStatus(code int) bool {
	if code == 408 || code == 429 {
		return true
	}
	return code >= 500 && code <= 599
}

// IsRetryableError reports whether a transport error is worth another
// attempt. Context cancellation is not: the caller already gave up.
func IsRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Backoff returns the pause before retry number attempt (1-based):
// exponential doubling of base with 20% jitter so concurrent requests do not
// retry in lockstep.
func Backoff(attempt int, base time.Duration) time.Duration {
	if attempt < 1 || base <= 0 {
		return 0
	}
	d := base << (attempt - 1)
	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(float64(d) * jitter)
}
