package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// ProposeAdminAction opens a timelocked privileged action. The proposer must
// be in the multisig signer set and counts as the first signature. Only one
// action can be pending at a time.
func (k Keeper) ProposeAdminAction(ctx context.Context, msg types.MsgProposeAdminAction) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return err
	}
	if !pool.IsSigner(msg.Proposer) {
		return types.ErrUnknownSigner.Wrapf("%s is not a multisig signer", msg.Proposer)
	}
	if pool.PendingAction != nil {
		return types.ErrPendingActionExists.Wrapf(
			"action %s proposed by %s is pending",
			pool.PendingAction.Action, pool.PendingAction.Proposer,
		)
	}

	sdkCtx, now := contextNow(ctx)
	action := types.PendingAction{
		Action:           msg.Action,
		Proposer:         msg.Proposer,
		Signatures:       []string{msg.Proposer},
		ProposedAtUnix:   now.Unix(),
		ExecutableAtUnix: now.Unix() + types.TimelockDelaySeconds,
		NewValue:         msg.NewValue,
		AuxValue:         msg.AuxValue,
		Reason:           msg.Reason,
	}
	if err := action.Validate(); err != nil {
		return err
	}

	pool.PendingAction = &action
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	k.metrics.ActionsProposed.Inc()

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeActionProposed,
		sdk.NewAttribute(types.AttrKeyProposer, msg.Proposer),
		sdk.NewAttribute(types.AttrKeyAction, string(msg.Action)),
		sdk.NewAttribute(types.AttrKeyNewValue, strconv.FormatUint(msg.NewValue, 10)),
		sdk.NewAttribute(types.AttrKeyExecutableAt, strconv.FormatInt(action.ExecutableAtUnix, 10)),
	))
	sdkCtx.Logger().Info("admin action proposed",
		"proposer", msg.Proposer,
		"action", msg.Action,
		"executable_at", action.ExecutableAtUnix,
	)
	return nil
}

// SignAdminAction appends a signature to the pending action. Double-signing
// is rejected with ErrAlreadySigned, keeping the signer set strictly unique.
func (k Keeper) SignAdminAction(ctx context.Context, msg types.MsgSignAdminAction) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return err
	}
	if !pool.IsSigner(msg.Signer) {
		return types.ErrUnknownSigner.Wrapf("%s is not a multisig signer", msg.Signer)
	}
	if pool.PendingAction == nil {
		return types.ErrNoPendingAction
	}
	if pool.PendingAction.HasSigned(msg.Signer) {
		return types.ErrAlreadySigned.Wrapf("%s already signed", msg.Signer)
	}

	sdkCtx, now := contextNow(ctx)
	pool.PendingAction.Signatures = append(pool.PendingAction.Signatures, msg.Signer)
	pool.UpdatedAtUnix = now.Unix()
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeActionSigned,
		sdk.NewAttribute(types.AttrKeySigner, msg.Signer),
		sdk.NewAttribute(types.AttrKeyAction, string(pool.PendingAction.Action)),
		sdk.NewAttribute(types.AttrKeySignatures, strconv.Itoa(len(pool.PendingAction.Signatures))),
	))
	return nil
}

// ExecuteAdminAction executes the pending action once the timelock has
// expired and the signature threshold is met, then clears it. Execution is
// open to any multisig signer.
func (k Keeper) ExecuteAdminAction(ctx context.Context, msg types.MsgExecuteAdminAction) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return err
	}
	if !pool.IsSigner(msg.Executor) {
		return types.ErrUnknownSigner.Wrapf("%s is not a multisig signer", msg.Executor)
	}
	if pool.PendingAction == nil {
		return types.ErrNoPendingAction
	}

	sdkCtx, now := contextNow(ctx)
	action := *pool.PendingAction

	if now.Unix() < action.ExecutableAtUnix {
		return types.ErrTimelockNotExpired.Wrapf(
			"executable at %d, now %d",
			action.ExecutableAtUnix, now.Unix(),
		)
	}
	if uint64(len(action.Signatures)) < pool.MultisigThreshold {
		return types.ErrInsufficientSignatures.Wrapf(
			"have %d of %d required",
			len(action.Signatures), pool.MultisigThreshold,
		)
	}

	// The action is consumed before dispatch so a dispatch error cannot
	// leave a half-executed action pending.
	pool.PendingAction = nil
	if err := k.dispatchAction(ctx, pool, action); err != nil {
		return err
	}

	k.metrics.ActionsExecuted.Inc()

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeActionExecuted,
		sdk.NewAttribute(types.AttrKeyAction, string(action.Action)),
		sdk.NewAttribute(types.AttrKeyProposer, action.Proposer),
		sdk.NewAttribute(types.AttrKeySignatures, strconv.Itoa(len(action.Signatures))),
		sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
	))
	sdkCtx.Logger().Info("admin action executed",
		"action", action.Action,
		"executor", msg.Executor,
	)
	return nil
}

// dispatchAction applies an executed action through the same helpers the
// direct admin entry points use. Each helper persists the pool.
func (k Keeper) dispatchAction(ctx context.Context, pool *types.Pool, action types.PendingAction) error {
	switch action.Action {
	case types.ActionUpdateApy:
		return k.applyApyUpdate(ctx, pool, action.Proposer, action.NewValue)
	case types.ActionUpdateFee:
		return k.applyFeeUpdate(ctx, pool, action.Proposer, action.NewValue)
	case types.ActionPause:
		return k.pausePool(ctx, pool, action.Proposer, action.Reason)
	case types.ActionUnpause:
		return k.unpausePool(ctx, pool, action.Proposer)
	case types.ActionWithdrawFees:
		return k.applyFeeWithdrawal(ctx, pool, pool.Admin, action.NewValue)
	case types.ActionUpdateLimits:
		return k.applyLimitUpdate(ctx, pool, action.Proposer, action.NewValue, action.AuxValue, 0, 0)
	default:
		return types.ErrNoPendingAction.Wrapf("unknown action type %q", action.Action)
	}
}
