package keeper

import (
	"context"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// InitializePool creates the singleton pool with the caller as admin and
// sole multisig signer.
func (k Keeper) InitializePool(ctx context.Context, msg types.MsgInitializePool) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if k.HasPool(ctx) {
		return types.ErrPoolExists
	}

	sdkCtx, now := contextNow(ctx)
	pool := types.NewPool(msg.Admin, msg.ApyBps, msg.MinCommitmentDays, msg.MaxCommitmentDays, msg.OracleFeed, now.Unix())
	if err := pool.Validate(); err != nil {
		return err
	}
	if err := k.setPool(ctx, pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypePoolInitialized,
		sdk.NewAttribute(types.AttrKeyAdmin, msg.Admin),
		sdk.NewAttribute("apy_bps", strconv.FormatUint(msg.ApyBps, 10)),
		sdk.NewAttribute("min_commitment_days", strconv.FormatUint(msg.MinCommitmentDays, 10)),
		sdk.NewAttribute("max_commitment_days", strconv.FormatUint(msg.MaxCommitmentDays, 10)),
		sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
	))

	sdkCtx.Logger().Info("trust fund pool initialized",
		"admin", msg.Admin,
		"apy_bps", msg.ApyBps,
	)
	return nil
}

// requireAdmin loads the pool and checks the caller is its admin.
func (k Keeper) requireAdmin(ctx context.Context, caller string) (*types.Pool, error) {
	pool, err := k.GetPool(ctx)
	if err != nil {
		return nil, err
	}
	if caller != pool.Admin {
		return nil, types.ErrUnauthorized.Wrapf("caller %s is not pool admin", caller)
	}
	return pool, nil
}

// requireOpen checks the pool accepts user operations.
func requireOpen(pool *types.Pool) error {
	if !pool.Active {
		return types.ErrPoolNotActive
	}
	if pool.Paused {
		return types.ErrPoolPaused
	}
	return nil
}

// EmergencyPause halts stake/claim/unstake. Admin operations stay available
// while paused.
func (k Keeper) EmergencyPause(ctx context.Context, msg types.MsgEmergencyPause) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	return k.pausePool(ctx, pool, msg.Admin, msg.Reason)
}

func (k Keeper) pausePool(ctx context.Context, pool *types.Pool, actor, reason string) error {
	sdkCtx, now := contextNow(ctx)
	pool.Paused = true
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeEmergencyPause,
		sdk.NewAttribute(types.AttrKeyAdmin, actor),
		sdk.NewAttribute(types.AttrKeyReason, reason),
		sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
	))
	sdkCtx.Logger().Info("trust fund pool paused", "actor", actor, "reason", reason)
	return nil
}

// EmergencyUnpause resumes user operations.
func (k Keeper) EmergencyUnpause(ctx context.Context, msg types.MsgEmergencyUnpause) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	return k.unpausePool(ctx, pool, msg.Admin)
}

func (k Keeper) unpausePool(ctx context.Context, pool *types.Pool, actor string) error {
	sdkCtx, now := contextNow(ctx)
	pool.Paused = false
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeEmergencyUnpause,
		sdk.NewAttribute(types.AttrKeyAdmin, actor),
		sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
	))
	return nil
}

// UpdateApy directly updates the yield rate. Admin-only; the multisig flow
// routes through the same application helper.
func (k Keeper) UpdateApy(ctx context.Context, msg types.MsgUpdateApy) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	return k.applyApyUpdate(ctx, pool, msg.Admin, msg.ApyBps)
}

func (k Keeper) applyApyUpdate(ctx context.Context, pool *types.Pool, actor string, apyBps uint64) error {
	if apyBps == 0 || apyBps > types.MaxApyBps {
		return types.ErrInvalidApy.Wrapf("apy must be in (0, %d] bps, got %d", types.MaxApyBps, apyBps)
	}
	old := pool.ApyBps
	pool.ApyBps = apyBps
	return k.commitParamUpdate(ctx, pool, actor, "apy_bps", old, apyBps)
}

// UpdateDepositFee directly updates the deposit fee. Admin-only.
func (k Keeper) UpdateDepositFee(ctx context.Context, msg types.MsgUpdateDepositFee) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	return k.applyFeeUpdate(ctx, pool, msg.Admin, msg.FeeBps)
}

func (k Keeper) applyFeeUpdate(ctx context.Context, pool *types.Pool, actor string, feeBps uint64) error {
	if feeBps > types.MaxDepositFeeBps {
		return types.ErrInvalidFee.Wrapf("fee must be <= %d bps, got %d", types.MaxDepositFeeBps, feeBps)
	}
	old := pool.DepositFeeBps
	pool.DepositFeeBps = feeBps
	return k.commitParamUpdate(ctx, pool, actor, "deposit_fee_bps", old, feeBps)
}

func (k Keeper) commitParamUpdate(ctx context.Context, pool *types.Pool, actor, parameter string, oldValue, newValue uint64) error {
	sdkCtx, now := contextNow(ctx)
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeParameterUpdate,
		sdk.NewAttribute(types.AttrKeyAdmin, actor),
		sdk.NewAttribute(types.AttrKeyParameter, parameter),
		sdk.NewAttribute(types.AttrKeyOldValue, strconv.FormatUint(oldValue, 10)),
		sdk.NewAttribute(types.AttrKeyNewValue, strconv.FormatUint(newValue, 10)),
		sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
	))
	sdkCtx.Logger().Info("trust fund parameter updated",
		"actor", actor,
		"parameter", parameter,
		"old", oldValue,
		"new", newValue,
	)
	return nil
}

// UpdatePoolLimits updates stake/deposit caps. Zero fields leave the current
// value unchanged; the merged result must still satisfy the limit ordering
// and keep max_total_staked above the current total.
func (k Keeper) UpdatePoolLimits(ctx context.Context, msg types.MsgUpdatePoolLimits) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	return k.applyLimitUpdate(ctx, pool, msg.Admin, msg.MinStakeAmount, msg.MaxStakeAmount, msg.MaxDepositPerUser, msg.MaxTotalStaked)
}

func (k Keeper) applyLimitUpdate(ctx context.Context, pool *types.Pool, actor string, minStake, maxStake, maxPerUser, maxTotal uint64) error {
	merged := *pool
	if minStake != 0 {
		merged.MinStakeAmount = minStake
	}
	if maxStake != 0 {
		merged.MaxStakeAmount = maxStake
	}
	if maxPerUser != 0 {
		merged.MaxDepositPerUser = maxPerUser
	}
	if maxTotal != 0 {
		merged.MaxTotalStaked = maxTotal
	}

	if merged.MaxStakeAmount < merged.MinStakeAmount {
		return types.ErrInvalidAmount.Wrapf("max stake %d below min stake %d", merged.MaxStakeAmount, merged.MinStakeAmount)
	}
	if merged.MaxDepositPerUser < merged.MaxStakeAmount {
		return types.ErrInvalidAmount.Wrapf("max deposit per user %d below max stake %d", merged.MaxDepositPerUser, merged.MaxStakeAmount)
	}
	if merged.MaxTotalStaked <= merged.TotalStaked {
		return types.ErrInvalidAmount.Wrapf("max total staked %d must exceed current total %d", merged.MaxTotalStaked, merged.TotalStaked)
	}

	*pool = merged
	return k.commitParamUpdate(ctx, pool, actor, "pool_limits", 0, merged.MaxTotalStaked)
}

// WithdrawFees moves collected deposit fees from the fee account to the
// admin. The aggregate counter is decremented only after the transfer
// succeeds.
func (k Keeper) WithdrawFees(ctx context.Context, msg types.MsgWithdrawFees) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	return k.applyFeeWithdrawal(ctx, pool, msg.Admin, msg.Amount)
}

func (k Keeper) applyFeeWithdrawal(ctx context.Context, pool *types.Pool, destination string, amount uint64) error {
	if amount == 0 {
		return types.ErrInvalidAmount.Wrap("withdraw amount must be positive")
	}
	if pool.TotalFeesCollected < amount {
		return types.ErrInsufficientFunds.Wrapf("fees collected %d below withdrawal %d", pool.TotalFeesCollected, amount)
	}

	if k.tokenKeeper != nil {
		if err := k.tokenKeeper.Transfer(ctx, StakeDenom, types.FeeModuleName, destination, amount); err != nil {
			return types.ErrExternalCall.Wrapf("fee transfer: %v", err)
		}
	}

	sdkCtx, now := contextNow(ctx)
	remaining, err := types.CheckedSub(pool.TotalFeesCollected, amount)
	if err != nil {
		return err
	}
	pool.TotalFeesCollected = remaining
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeFeesWithdrawn,
		sdk.NewAttribute(types.AttrKeyAdmin, destination),
		sdk.NewAttribute(types.AttrKeyAmount, strconv.FormatUint(amount, 10)),
		sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
	))
	return nil
}

// AddMultisigSigner grows the signer set, bounded at MaxMultisigSigners
// unique entries. Admin-gated, separate from the proposal flow.
func (k Keeper) AddMultisigSigner(ctx context.Context, msg types.MsgAddMultisigSigner) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	if pool.IsSigner(msg.Signer) {
		return types.ErrAlreadySigned.Wrapf("%s is already a signer", msg.Signer)
	}
	if len(pool.MultisigSigners) >= types.MaxMultisigSigners {
		return types.ErrTooManySigners.Wrapf("signer set already holds %d", types.MaxMultisigSigners)
	}

	sdkCtx, now := contextNow(ctx)
	pool.MultisigSigners = append(pool.MultisigSigners, msg.Signer)
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeSignerAdded,
		sdk.NewAttribute(types.AttrKeyAdmin, msg.Admin),
		sdk.NewAttribute(types.AttrKeySigner, msg.Signer),
		sdk.NewAttribute(types.AttrKeySignatures, fmt.Sprintf("%d", len(pool.MultisigSigners))),
	))
	return nil
}

// UpdateMultisigThreshold sets the signature threshold within
// [1, len(signers)]. Admin-gated.
func (k Keeper) UpdateMultisigThreshold(ctx context.Context, msg types.MsgUpdateMultisigThreshold) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.requireAdmin(ctx, msg.Admin)
	if err != nil {
		return err
	}
	if msg.Threshold > uint64(len(pool.MultisigSigners)) {
		return types.ErrInvalidThreshold.Wrapf("threshold %d exceeds signer count %d", msg.Threshold, len(pool.MultisigSigners))
	}

	sdkCtx, now := contextNow(ctx)
	old := pool.MultisigThreshold
	pool.MultisigThreshold = msg.Threshold
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeThresholdUpdated,
		sdk.NewAttribute(types.AttrKeyAdmin, msg.Admin),
		sdk.NewAttribute(types.AttrKeyOldValue, strconv.FormatUint(old, 10)),
		sdk.NewAttribute(types.AttrKeyThreshold, strconv.FormatUint(msg.Threshold, 10)),
	))
	return nil
}
