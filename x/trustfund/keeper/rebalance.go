package keeper

import (
	"context"
	"sort"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// The rebalance engine is a checkpointed bulk job, not a single transaction:
// trigger opens a cycle, batch calls score up to 25 users each, and finalize
// ranks the buffered scores and assigns tiers. The admin cranks the phases.

// TriggerRebalance opens a tier rebalance cycle. Cycles are spaced at least
// 30 days apart, measured from the previous finalize.
func (k Keeper) TriggerRebalance(ctx context.Context, msg types.MsgTriggerRebalance) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}

	sdkCtx, now := contextNow(ctx)
	if pool.LastRebalanceUnix > 0 && now.Unix() < pool.LastRebalanceUnix+types.RebalanceIntervalSeconds {
		return types.ErrRebalanceTooSoon.Wrapf(
			"last rebalance at %d, next allowed at %d",
			pool.LastRebalanceUnix, pool.LastRebalanceUnix+types.RebalanceIntervalSeconds,
		)
	}
	if has, _ := k.Scores.Has(ctx); has {
		return types.ErrRebalanceTooSoon.Wrap("a rebalance cycle is already open")
	}

	if err := k.setScores(ctx, types.TempScores{CycleStartUnix: now.Unix()}); err != nil {
		return err
	}

	sdkCtx.Logger().Info("rebalance cycle opened", "admin", msg.Admin, "at", now.Unix())
	return nil
}

// RebalanceTiersBatch scores up to MaxRebalanceBatch users in the open
// cycle. Users scoring below the inactivity floor are burned out of the
// fund; the rest are buffered for ranking at finalize.
func (k Keeper) RebalanceTiersBatch(ctx context.Context, msg types.MsgRebalanceTiersBatch) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	scores, err := k.getScores(ctx)
	if err != nil {
		return err
	}

	sdkCtx, now := contextNow(ctx)

	buffered := make(map[string]bool, len(scores.Entries))
	for _, e := range scores.Entries {
		buffered[e.Owner] = true
	}

	for _, owner := range msg.UserKeys {
		if buffered[owner] {
			continue
		}
		stake, err := k.GetStake(ctx, owner)
		if err != nil || stake.IsEmpty() {
			continue
		}

		daysStaked := types.DaysBetween(stake.StakeTimestamp, now.Unix())
		score, err := types.ActivityScore(stake.Amount, daysStaked)
		if err != nil {
			return err
		}

		if score < types.InactivityScoreFloor {
			if err := k.burnInactiveStake(ctx, pool, stake, score); err != nil {
				return err
			}
			continue
		}

		if len(scores.Entries) >= types.MaxScoreEntries {
			return types.ErrScoreBufferFull.Wrapf("buffer holds %d entries", types.MaxScoreEntries)
		}
		scores.Entries = append(scores.Entries, types.TempScore{Owner: owner, Score: score})
		buffered[owner] = true
	}

	if err := k.setScores(ctx, *scores); err != nil {
		return err
	}
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	sdkCtx.Logger().Info("rebalance batch scored",
		"admin", msg.Admin,
		"batch", len(msg.UserKeys),
		"buffered", len(scores.Entries),
	)
	return nil
}

// burnInactiveStake zeroes an inactive user out of the fund: badges burned,
// record reset, pool aggregates decremented by the forfeited principal.
func (k Keeper) burnInactiveStake(ctx context.Context, pool *types.Pool, stake *types.UserStake, score uint64) error {
	sdkCtx, now := contextNow(ctx)

	if err := k.burnBadges(ctx, *stake); err != nil {
		return err
	}

	principal := stake.Amount
	stake.Reset()
	if err := k.setStake(ctx, *stake); err != nil {
		return err
	}

	var err error
	pool.TotalStaked, err = types.CheckedSub(pool.TotalStaked, principal)
	if err != nil {
		return err
	}
	pool.TotalUsers, err = types.CheckedSub(pool.TotalUsers, 1)
	if err != nil {
		return err
	}

	k.metrics.InactivityBurns.Inc()
	k.metrics.ActiveStakers.Dec()

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeInactivityBurn,
		sdk.NewAttribute(types.AttrKeyUser, stake.Owner),
		sdk.NewAttribute(types.AttrKeyScore, strconv.FormatUint(score, 10)),
		sdk.NewAttribute(types.AttrKeyAmount, strconv.FormatUint(principal, 10)),
		sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
	))
	return nil
}

// FinalizeRebalance ranks the buffered scores descending (stable, ties
// broken by insertion order) and assigns tiers: gold below rank 10, silver
// below rank 30, bronze otherwise. Clears the buffer and stamps the cycle.
func (k Keeper) FinalizeRebalance(ctx context.Context, msg types.MsgFinalizeRebalance) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	scores, err := k.getScores(ctx)
	if err != nil {
		return err
	}

	sdkCtx, now := contextNow(ctx)
	stopTimer := k.metrics.RebalanceRunTime.Time()

	ranked := make([]types.TempScore, len(scores.Entries))
	copy(ranked, scores.Entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	for rank, entry := range ranked {
		stake, err := k.GetStake(ctx, entry.Owner)
		if err != nil || stake.IsEmpty() {
			continue
		}
		newTier := types.TierForRank(rank)
		if newTier != stake.Tier {
			if err := k.swapTierBadge(ctx, entry.Owner, stake.Tier, newTier); err != nil {
				return err
			}
			stake.Tier = newTier
			if err := k.setStake(ctx, *stake); err != nil {
				return err
			}
			k.metrics.TiersReassigned.Inc()
		}

		emitEventIfPossible(sdkCtx, sdk.NewEvent(
			types.EventTypeTierRebalance,
			sdk.NewAttribute(types.AttrKeyUser, entry.Owner),
			sdk.NewAttribute(types.AttrKeyScore, strconv.FormatUint(entry.Score, 10)),
			sdk.NewAttribute(types.AttrKeyRank, strconv.Itoa(rank)),
			sdk.NewAttribute(types.AttrKeyTier, strconv.FormatUint(uint64(newTier), 10)),
		))
	}

	if err := k.Scores.Remove(ctx); err != nil {
		return err
	}
	pool.LastRebalanceUnix = now.Unix()
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	k.metrics.RebalanceCycles.Inc()
	stopTimer()

	run := k.metrics.RebalanceRunTime.Summary()
	sdkCtx.Logger().Info("rebalance finalized",
		"admin", msg.Admin,
		"ranked", len(ranked),
		"cycles", run.Count,
		"avg_run", run.Avg,
	)
	return nil
}

// swapTierBadge burns the old tier badge (if any) and mints the new one.
func (k Keeper) swapTierBadge(ctx context.Context, owner string, oldTier, newTier uint32) error {
	if k.tokenKeeper == nil {
		return nil
	}
	if denom := tierBadgeDenom(oldTier); denom != "" {
		if err := k.tokenKeeper.Burn(ctx, denom, owner, 1); err != nil {
			return types.ErrExternalCall.Wrapf("tier badge burn: %v", err)
		}
	}
	if denom := tierBadgeDenom(newTier); denom != "" {
		if err := k.tokenKeeper.Mint(ctx, denom, owner, 1); err != nil {
			return types.ErrExternalCall.Wrapf("tier badge mint: %v", err)
		}
	}
	return nil
}
