package keeper

import (
	"context"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// withReentrancyGuard runs fn with the pool reentrancy flag held. The flag
// is persisted before fn runs, so a re-entrant call arriving through an
// external program sees it set and fails. Release happens on every exit
// path: the flag is cleared and the (possibly mutated) pool persisted even
// when fn errors, so a failure partway through cannot leave the flag stuck.
func (k Keeper) withReentrancyGuard(ctx context.Context, fn func(pool *types.Pool) error) error {
	pool, err := k.GetPool(ctx)
	if err != nil {
		return err
	}
	if pool.ReentrancyLock {
		if k.metrics != nil {
			k.metrics.GuardRejections.Inc()
		}
		return types.ErrReentrancyDetected
	}

	pool.ReentrancyLock = true
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	fnErr := fn(pool)

	pool.ReentrancyLock = false
	if setErr := k.setPool(ctx, *pool); setErr != nil && fnErr == nil {
		fnErr = setErr
	}
	return fnErr
}

// checkSlippage enforces actual >= expected * (10000 - maxSlippageBps) / 10000.
// An expected amount of zero disables the check.
func checkSlippage(actual, expected, maxSlippageBps uint64) error {
	if expected == 0 {
		return nil
	}
	floor, err := types.FeeBps(expected, types.BpsDenominator-maxSlippageBps)
	if err != nil {
		return err
	}
	if actual < floor {
		return types.ErrSlippageExceeded.Wrapf("received %d, floor %d (expected %d within %d bps)", actual, floor, expected, maxSlippageBps)
	}
	return nil
}

// checkDeadline enforces now <= deadline. A zero deadline disables the check.
func checkDeadline(nowUnix, deadlineUnix int64) error {
	if deadlineUnix == 0 {
		return nil
	}
	if nowUnix > deadlineUnix {
		return types.ErrTransactionExpired.Wrapf("now %d past deadline %d", nowUnix, deadlineUnix)
	}
	return nil
}

// checkMEVCooldown gates large operations: once an operation at or above the
// pool threshold lands, further large operations must wait the configured
// number of slots. The caller records the slot via recordLargeOp on success.
func checkMEVCooldown(pool *types.Pool, amount uint64, currentSlot int64) error {
	if pool.MEVLargeThreshold == 0 || amount < pool.MEVLargeThreshold {
		return nil
	}
	if pool.LastLargeOpSlot > 0 && currentSlot-pool.LastLargeOpSlot < pool.MEVCooldownSlots {
		return types.ErrMEVProtectionActive.Wrapf(
			"large operation at slot %d within %d-slot cooldown of slot %d",
			currentSlot, pool.MEVCooldownSlots, pool.LastLargeOpSlot,
		)
	}
	return nil
}

func recordLargeOp(pool *types.Pool, amount uint64, currentSlot int64) {
	if pool.MEVLargeThreshold != 0 && amount >= pool.MEVLargeThreshold {
		pool.LastLargeOpSlot = currentSlot
	}
}

// requireFreshOraclePrice gates operations on oracle freshness when both a
// feed and an oracle are configured. Returns the fresh price.
func (k Keeper) requireFreshOraclePrice(ctx context.Context, pool *types.Pool) (uint64, error) {
	if k.priceOracle == nil || pool.OracleFeed == "" {
		return 0, nil
	}
	_, now := contextNow(ctx)
	price, publishTime, err := k.priceOracle.GetPrice(ctx, pool.OracleFeed)
	if err != nil {
		return 0, types.ErrInvalidOracle.Wrapf("feed %s: %v", pool.OracleFeed, err)
	}
	if now.Unix()-publishTime.Unix() > pool.OracleStalenessSecs {
		return 0, types.ErrStaleOraclePrice.Wrapf(
			"feed %s published %d, now %d, threshold %ds",
			pool.OracleFeed, publishTime.Unix(), now.Unix(), pool.OracleStalenessSecs,
		)
	}
	return price, nil
}
