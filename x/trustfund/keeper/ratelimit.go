package keeper

import (
	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// applyRateLimit validates and records one attempt of the given class
// against a sliding window. The window resets once idle longer than its
// length; inside the window a max-attempts counter and a minimum cooldown
// between consecutive attempts both apply. The mutation is only meaningful
// if the caller persists the stake record, which happens as part of the
// operation's own state write.
func applyRateLimit(w *types.RateWindow, maxAttempts uint64, nowUnix int64) error {
	if w.LastAttemptUnix > 0 && nowUnix-w.LastAttemptUnix < types.RateLimitCooldownSecs {
		return types.ErrRateLimitExceeded.Wrapf(
			"cooldown: %ds since last attempt, need %ds",
			nowUnix-w.LastAttemptUnix, types.RateLimitCooldownSecs,
		)
	}

	if w.WindowStartUnix == 0 || nowUnix-w.LastAttemptUnix > types.RateLimitWindowSeconds {
		w.WindowStartUnix = nowUnix
		w.Attempts = 0
	}

	if w.Attempts >= maxAttempts {
		return types.ErrRateLimitExceeded.Wrapf(
			"%d attempts in window starting %d, max %d",
			w.Attempts, w.WindowStartUnix, maxAttempts,
		)
	}

	w.Attempts++
	w.LastAttemptUnix = nowUnix
	return nil
}
