package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// Stake deposits into the fund. The whole operation runs under the
// reentrancy guard because custody transfers call out to the token program.
// Commitment days are immutable once set: a top-up must match the existing
// commitment, and every accepted stake restarts the stake and accrual
// clocks.
func (k Keeper) Stake(ctx context.Context, msg types.MsgStake) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	return k.withReentrancyGuard(ctx, func(pool *types.Pool) error {
		if err := requireOpen(pool); err != nil {
			k.metrics.StakesRejected.Inc()
			return err
		}

		sdkCtx, now := contextNow(ctx)

		if err := checkDeadline(now.Unix(), msg.DeadlineUnix); err != nil {
			k.metrics.GuardRejections.Inc()
			return err
		}
		if err := checkMEVCooldown(pool, msg.Amount, sdkCtx.BlockHeight()); err != nil {
			k.metrics.GuardRejections.Inc()
			return err
		}
		if _, err := k.requireFreshOraclePrice(ctx, pool); err != nil {
			k.metrics.OracleRejections.Inc()
			return err
		}

		if msg.Amount < pool.MinStakeAmount {
			k.metrics.StakesRejected.Inc()
			return types.ErrAmountTooSmall.Wrapf("amount %d below minimum %d", msg.Amount, pool.MinStakeAmount)
		}
		if msg.Amount > pool.MaxStakeAmount {
			k.metrics.StakesRejected.Inc()
			return types.ErrAmountTooLarge.Wrapf("amount %d above maximum %d", msg.Amount, pool.MaxStakeAmount)
		}
		if msg.CommittedDays < pool.MinCommitmentDays || msg.CommittedDays > pool.MaxCommitmentDays {
			k.metrics.StakesRejected.Inc()
			return types.ErrInvalidCommitmentDays.Wrapf(
				"committed days %d outside [%d, %d]",
				msg.CommittedDays, pool.MinCommitmentDays, pool.MaxCommitmentDays,
			)
		}

		stake, err := k.GetStake(ctx, msg.Staker)
		if err != nil {
			stake = &types.UserStake{Owner: msg.Staker}
		}

		if err := applyRateLimit(&stake.StakeWindow, types.MaxStakeAttempts, now.Unix()); err != nil {
			k.metrics.RateLimitRejections.Inc()
			// The recorded attempt must survive the rejection path, so the
			// stake record is persisted before returning.
			if setErr := k.setStake(ctx, *stake); setErr != nil {
				return setErr
			}
			return err
		}

		firstStake := stake.IsEmpty()
		if !firstStake && stake.CommittedDays != msg.CommittedDays {
			k.metrics.StakesRejected.Inc()
			return types.ErrInvalidCommitmentDays.Wrapf(
				"existing commitment is %d days, top-up requested %d",
				stake.CommittedDays, msg.CommittedDays,
			)
		}

		netAmount, feeAmount, err := types.NetAfterFee(msg.Amount, pool.DepositFeeBps)
		if err != nil {
			return err
		}
		if err := checkSlippage(netAmount, msg.MinExpectedAmount, pool.MaxSlippageBps); err != nil {
			k.metrics.GuardRejections.Inc()
			return err
		}

		newUserTotal, err := types.CheckedAdd(stake.Amount, netAmount)
		if err != nil {
			return err
		}
		if newUserTotal > pool.MaxDepositPerUser {
			k.metrics.StakesRejected.Inc()
			return types.ErrDepositCapExceeded.Wrapf("user total %d exceeds cap %d", newUserTotal, pool.MaxDepositPerUser)
		}
		newPoolTotal, err := types.CheckedAdd(pool.TotalStaked, netAmount)
		if err != nil {
			return err
		}
		if newPoolTotal > pool.MaxTotalStaked {
			k.metrics.StakesRejected.Inc()
			return types.ErrPoolCapExceeded.Wrapf("pool total %d exceeds cap %d", newPoolTotal, pool.MaxTotalStaked)
		}

		// External custody moves. Any failure aborts before local writes.
		if k.tokenKeeper != nil {
			if err := k.tokenKeeper.Transfer(ctx, StakeDenom, msg.Staker, types.VaultModuleName, netAmount); err != nil {
				return types.ErrExternalCall.Wrapf("custody transfer: %v", err)
			}
			if feeAmount > 0 {
				if err := k.tokenKeeper.Transfer(ctx, StakeDenom, msg.Staker, types.FeeModuleName, feeAmount); err != nil {
					return types.ErrExternalCall.Wrapf("fee transfer: %v", err)
				}
			}
			if firstStake {
				if err := k.tokenKeeper.Mint(ctx, StakeBadgeDenom, msg.Staker, 1); err != nil {
					return types.ErrExternalCall.Wrapf("stake badge mint: %v", err)
				}
			}
		}

		stake.Amount = newUserTotal
		stake.CommittedDays = msg.CommittedDays
		stake.StakeTimestamp = now.Unix()
		stake.LastClaimTimestamp = now.Unix()
		stake.AutoReinvestPct = msg.AutoReinvestPct
		stake.LifetimeStaked, err = types.CheckedAdd(stake.LifetimeStaked, netAmount)
		if err != nil {
			return err
		}

		if firstStake && msg.Referrer != "" {
			stake.Referrer = msg.Referrer
			stake.ReferralExpiresUnix = now.Unix() + types.ReferralValiditySeconds
			emitEventIfPossible(sdkCtx, sdk.NewEvent(
				types.EventTypeReferral,
				sdk.NewAttribute(types.AttrKeyUser, msg.Staker),
				sdk.NewAttribute(types.AttrKeyReferrer, msg.Referrer),
				sdk.NewAttribute(types.AttrKeyAmount, strconv.FormatUint(netAmount, 10)),
				sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
			))
		}

		if err := k.setStake(ctx, *stake); err != nil {
			return err
		}

		pool.TotalStaked = newPoolTotal
		pool.TotalFeesCollected, err = types.CheckedAdd(pool.TotalFeesCollected, feeAmount)
		if err != nil {
			return err
		}
		if firstStake {
			pool.TotalUsers, err = types.CheckedAdd(pool.TotalUsers, 1)
			if err != nil {
				return err
			}
			k.metrics.ActiveStakers.Inc()
		}
		recordLargeOp(pool, msg.Amount, sdkCtx.BlockHeight())
		pool.UpdatedAtUnix = now.Unix()

		k.metrics.StakesAccepted.Inc()
		k.metrics.FeesCollected.Add(int64(feeAmount))

		emitEventIfPossible(sdkCtx, sdk.NewEvent(
			types.EventTypeStake,
			sdk.NewAttribute(types.AttrKeyUser, msg.Staker),
			sdk.NewAttribute(types.AttrKeyAmount, strconv.FormatUint(netAmount, 10)),
			sdk.NewAttribute(types.AttrKeyFee, strconv.FormatUint(feeAmount, 10)),
			sdk.NewAttribute(types.AttrKeyCommittedDays, strconv.FormatUint(msg.CommittedDays, 10)),
			sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
		))
		sdkCtx.Logger().Info("stake accepted",
			"user", msg.Staker,
			"net", netAmount,
			"fee", feeAmount,
			"committed_days", msg.CommittedDays,
		)
		return nil
	})
}

// accruedYield computes the yield owed since the last claim (or since stake
// for a never-claimed position).
func accruedYield(pool *types.Pool, stake *types.UserStake, nowUnix int64) (uint64, error) {
	days := types.DaysBetween(stake.LastClaimTimestamp, nowUnix)
	return types.YieldAmount(stake.Amount, pool.ApyBps, days)
}

// ClaimYields pays accrued yield. Claims open once the committed period has
// elapsed; a configured auto-reinvest percentage compounds part of the yield
// back into the principal instead of paying it out.
func (k Keeper) ClaimYields(ctx context.Context, msg types.MsgClaimYields) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	return k.withReentrancyGuard(ctx, func(pool *types.Pool) error {
		if err := requireOpen(pool); err != nil {
			return err
		}

		sdkCtx, now := contextNow(ctx)

		stake, err := k.GetStake(ctx, msg.Staker)
		if err != nil {
			return err
		}
		if stake.IsEmpty() {
			return types.ErrNoStake.Wrapf("no active stake for %s", msg.Staker)
		}

		daysStaked := types.DaysBetween(stake.StakeTimestamp, now.Unix())
		if daysStaked < stake.CommittedDays {
			return types.ErrCommitmentNotMet.Wrapf(
				"staked %d days of %d committed",
				daysStaked, stake.CommittedDays,
			)
		}

		if err := applyRateLimit(&stake.ClaimWindow, types.MaxClaimAttempts, now.Unix()); err != nil {
			k.metrics.RateLimitRejections.Inc()
			if setErr := k.setStake(ctx, *stake); setErr != nil {
				return setErr
			}
			return err
		}

		yield, err := accruedYield(pool, stake, now.Unix())
		if err != nil {
			return err
		}
		if yield == 0 {
			return types.ErrNoYieldToClaim
		}

		if k.tokenKeeper != nil {
			balance, err := k.tokenKeeper.Balance(ctx, StakeDenom, types.VaultModuleName)
			if err != nil {
				return types.ErrExternalCall.Wrapf("custody balance: %v", err)
			}
			if balance < yield {
				return types.ErrInsufficientFunds.Wrapf("custody holds %d, yield owed %d", balance, yield)
			}
		}

		// Reinvested share stays in custody and compounds; the remainder is
		// paid out. Reinvestment is skipped when it would breach the pool cap
		// or the per-user deposit cap.
		reinvested, err := types.FeeBps(yield, stake.AutoReinvestPct*100)
		if err != nil {
			return err
		}
		if reinvested > 0 {
			grownUser, err := types.CheckedAdd(stake.Amount, reinvested)
			if err != nil || grownUser > pool.MaxDepositPerUser {
				reinvested = 0
			}
		}
		if reinvested > 0 {
			grown, err := types.CheckedAdd(pool.TotalStaked, reinvested)
			if err != nil || grown > pool.MaxTotalStaked {
				reinvested = 0
			}
		}
		payout, err := types.CheckedSub(yield, reinvested)
		if err != nil {
			return err
		}

		if payout > 0 && k.tokenKeeper != nil {
			if err := k.tokenKeeper.Transfer(ctx, StakeDenom, types.VaultModuleName, msg.Staker, payout); err != nil {
				return types.ErrExternalCall.Wrapf("yield payout: %v", err)
			}
		}

		stake.LastClaimTimestamp = now.Unix()
		stake.TotalClaimed, err = types.CheckedAdd(stake.TotalClaimed, yield)
		if err != nil {
			return err
		}
		if reinvested > 0 {
			stake.Amount, err = types.CheckedAdd(stake.Amount, reinvested)
			if err != nil {
				return err
			}
			pool.TotalStaked, err = types.CheckedAdd(pool.TotalStaked, reinvested)
			if err != nil {
				return err
			}
		}
		if err := k.setStake(ctx, *stake); err != nil {
			return err
		}

		pool.TotalYieldsPaid, err = types.CheckedAdd(pool.TotalYieldsPaid, yield)
		if err != nil {
			return err
		}
		pool.UpdatedAtUnix = now.Unix()

		k.metrics.ClaimsProcessed.Inc()
		k.metrics.YieldsPaid.Add(int64(payout))
		k.metrics.YieldReinvested.Add(int64(reinvested))

		emitEventIfPossible(sdkCtx, sdk.NewEvent(
			types.EventTypeClaim,
			sdk.NewAttribute(types.AttrKeyUser, msg.Staker),
			sdk.NewAttribute(types.AttrKeyYield, strconv.FormatUint(yield, 10)),
			sdk.NewAttribute(types.AttrKeyReinvested, strconv.FormatUint(reinvested, 10)),
			sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
		))
		sdkCtx.Logger().Info("yield claimed",
			"user", msg.Staker,
			"yield", yield,
			"reinvested", reinvested,
		)
		return nil
	})
}

// Unstake exits the fund. Before the committed period elapses a 5% penalty
// is withheld and no yield is paid; afterwards the full principal plus
// accrued yield is returned. The record resets to the empty state either
// way; rate-limit windows survive the reset.
func (k Keeper) Unstake(ctx context.Context, msg types.MsgUnstake) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	return k.withReentrancyGuard(ctx, func(pool *types.Pool) error {
		if err := requireOpen(pool); err != nil {
			return err
		}

		sdkCtx, now := contextNow(ctx)

		stake, err := k.GetStake(ctx, msg.Staker)
		if err != nil {
			return err
		}
		if stake.IsEmpty() {
			return types.ErrNoStake.Wrapf("no active stake for %s", msg.Staker)
		}

		principal := stake.Amount
		daysStaked := types.DaysBetween(stake.StakeTimestamp, now.Unix())
		commitmentMet := daysStaked >= stake.CommittedDays

		var payout, penalty, yield uint64
		if commitmentMet {
			yield, err = accruedYield(pool, stake, now.Unix())
			if err != nil {
				return err
			}
			payout, err = types.CheckedAdd(principal, yield)
			if err != nil {
				return err
			}
		} else {
			penalty, err = types.EarlyExitPenalty(principal)
			if err != nil {
				return err
			}
			payout, err = types.CheckedSub(principal, penalty)
			if err != nil {
				return err
			}
		}

		if err := checkMEVCooldown(pool, principal, sdkCtx.BlockHeight()); err != nil {
			k.metrics.GuardRejections.Inc()
			return err
		}

		if k.tokenKeeper != nil {
			if payout > 0 {
				if err := k.tokenKeeper.Transfer(ctx, StakeDenom, types.VaultModuleName, msg.Staker, payout); err != nil {
					return types.ErrExternalCall.Wrapf("unstake payout: %v", err)
				}
			}
			if err := k.burnBadges(ctx, *stake); err != nil {
				return err
			}
		}

		stake.Reset()
		if err := k.setStake(ctx, *stake); err != nil {
			return err
		}

		pool.TotalStaked, err = types.CheckedSub(pool.TotalStaked, principal)
		if err != nil {
			return err
		}
		pool.TotalUsers, err = types.CheckedSub(pool.TotalUsers, 1)
		if err != nil {
			return err
		}
		if yield > 0 {
			pool.TotalYieldsPaid, err = types.CheckedAdd(pool.TotalYieldsPaid, yield)
			if err != nil {
				return err
			}
		}
		recordLargeOp(pool, principal, sdkCtx.BlockHeight())
		pool.UpdatedAtUnix = now.Unix()

		if commitmentMet {
			k.metrics.UnstakesComplete.Inc()
		} else {
			k.metrics.UnstakesEarly.Inc()
			k.metrics.PenaltiesAssessed.Add(int64(penalty))
		}
		k.metrics.ActiveStakers.Dec()

		emitEventIfPossible(sdkCtx, sdk.NewEvent(
			types.EventTypeUnstake,
			sdk.NewAttribute(types.AttrKeyUser, msg.Staker),
			sdk.NewAttribute(types.AttrKeyAmount, strconv.FormatUint(payout, 10)),
			sdk.NewAttribute(types.AttrKeyPenalty, strconv.FormatUint(penalty, 10)),
			sdk.NewAttribute(types.AttrKeyYield, strconv.FormatUint(yield, 10)),
			sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
		))
		sdkCtx.Logger().Info("unstake processed",
			"user", msg.Staker,
			"payout", payout,
			"penalty", penalty,
			"days_staked", daysStaked,
		)
		return nil
	})
}

// burnBadges removes the stake badge and any tier badge held by the user.
func (k Keeper) burnBadges(ctx context.Context, stake types.UserStake) error {
	if k.tokenKeeper == nil {
		return nil
	}
	if err := k.tokenKeeper.Burn(ctx, StakeBadgeDenom, stake.Owner, 1); err != nil {
		return types.ErrExternalCall.Wrapf("stake badge burn: %v", err)
	}
	if denom := tierBadgeDenom(stake.Tier); denom != "" {
		if err := k.tokenKeeper.Burn(ctx, denom, stake.Owner, 1); err != nil {
			return types.ErrExternalCall.Wrapf("tier badge burn: %v", err)
		}
	}
	return nil
}

func tierBadgeDenom(tier uint32) string {
	switch tier {
	case types.TierBronze:
		return BronzeBadgeDenom
	case types.TierSilver:
		return SilverBadgeDenom
	case types.TierGold:
		return GoldBadgeDenom
	default:
		return ""
	}
}
