package keeper

import (
	"context"
	"encoding/json"
	"strconv"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// GetVaultPosition loads the external vault position record. A missing
// record is the empty position, not an error.
func (k Keeper) GetVaultPosition(ctx context.Context) (types.VaultPosition, error) {
	raw, err := k.VaultPosition.Get(ctx)
	if err != nil {
		return types.VaultPosition{}, nil
	}
	var pos types.VaultPosition
	if err := json.Unmarshal([]byte(raw), &pos); err != nil {
		return types.VaultPosition{}, types.ErrExternalCall.Wrapf("decode vault position: %v", err)
	}
	return pos, nil
}

// VaultValue reports the external vault's current valuation of the deployed
// position. Zero when no vault is wired.
func (k Keeper) VaultValue(ctx context.Context) (sdkmath.Int, error) {
	if k.vault == nil {
		return sdkmath.ZeroInt(), nil
	}
	value, err := k.vault.GetVaultValue(ctx)
	if err != nil {
		return sdkmath.ZeroInt(), types.ErrExternalCall.Wrapf("vault value: %v", err)
	}
	if value.IsNil() {
		value = sdkmath.ZeroInt()
	}
	return value, nil
}

func (k Keeper) setVaultPosition(ctx context.Context, pos types.VaultPosition) error {
	raw, err := json.Marshal(pos)
	if err != nil {
		return err
	}
	return k.VaultPosition.Set(ctx, string(raw))
}

// DeployToVault routes idle custody through the swap router into the
// external leverage vault. The routed output must clear both the router
// minimum-output floor (1% of input) and the pool slippage tolerance.
// Admin-only, reentrancy-guarded.
func (k Keeper) DeployToVault(ctx context.Context, msg types.MsgDeployToVault) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if k.swapRouter == nil || k.vault == nil {
		return types.ErrExternalCall.Wrap("swap router and leverage vault are not wired")
	}

	return k.withReentrancyGuard(ctx, func(pool *types.Pool) error {
		if msg.Admin != pool.Admin {
			return types.ErrUnauthorized.Wrapf("caller %s is not pool admin", msg.Admin)
		}
		if pool.Paused {
			return types.ErrPoolPaused
		}
		if _, err := k.requireFreshOraclePrice(ctx, pool); err != nil {
			k.metrics.OracleRejections.Inc()
			return err
		}

		sdkCtx, now := contextNow(ctx)

		pos, err := k.GetVaultPosition(ctx)
		if err != nil {
			return err
		}

		quoted, route, err := k.swapRouter.Quote(ctx, StakeDenom, msg.Asset, msg.Amount, pool.MaxSlippageBps)
		if err != nil {
			return types.ErrExternalCall.Wrapf("quote: %v", err)
		}
		if quoted < msg.Amount/100 {
			return types.ErrSlippageExceeded.Wrapf("quoted output %d below minimum %d", quoted, msg.Amount/100)
		}

		received, err := k.swapRouter.Swap(ctx, route, msg.Amount)
		if err != nil {
			return types.ErrExternalCall.Wrapf("swap: %v", err)
		}
		if err := checkSlippage(received, quoted, pool.MaxSlippageBps); err != nil {
			k.metrics.GuardRejections.Inc()
			return err
		}

		positionID, err := k.vault.DepositToVault(ctx, msg.Asset, received, msg.Leverage)
		if err != nil {
			return types.ErrExternalCall.Wrapf("vault deposit: %v", err)
		}

		pos.Asset = msg.Asset
		pos.PositionID = positionID
		pos.Leverage = msg.Leverage
		pos.DeployedAmount, err = types.CheckedAdd(pos.DeployedAmount, msg.Amount)
		if err != nil {
			return err
		}
		if pos.DeployedAtUnix == 0 {
			pos.DeployedAtUnix = now.Unix()
		}
		pos.UpdatedAtUnix = now.Unix()
		if err := k.setVaultPosition(ctx, pos); err != nil {
			return err
		}

		pool.UpdatedAtUnix = now.Unix()

		emitEventIfPossible(sdkCtx, sdk.NewEvent(
			types.EventTypeVaultDeploy,
			sdk.NewAttribute(types.AttrKeyAdmin, msg.Admin),
			sdk.NewAttribute(types.AttrKeyAmount, strconv.FormatUint(msg.Amount, 10)),
			sdk.NewAttribute(types.AttrKeyPosition, positionID),
			sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
		))
		sdkCtx.Logger().Info("custody deployed to vault",
			"asset", msg.Asset,
			"amount", msg.Amount,
			"received", received,
			"leverage", msg.Leverage,
		)
		return nil
	})
}

// RecallFromVault reduces the external position back into custody.
// Admin-only, reentrancy-guarded.
func (k Keeper) RecallFromVault(ctx context.Context, msg types.MsgRecallFromVault) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if k.vault == nil {
		return types.ErrExternalCall.Wrap("leverage vault is not wired")
	}

	return k.withReentrancyGuard(ctx, func(pool *types.Pool) error {
		if msg.Admin != pool.Admin {
			return types.ErrUnauthorized.Wrapf("caller %s is not pool admin", msg.Admin)
		}

		pos, err := k.GetVaultPosition(ctx)
		if err != nil {
			return err
		}
		if pos.DeployedAmount == 0 {
			return types.ErrInsufficientFunds.Wrap("no open vault position")
		}
		if msg.Amount > pos.DeployedAmount {
			return types.ErrInsufficientFunds.Wrapf("position holds %d, recall requested %d", pos.DeployedAmount, msg.Amount)
		}

		paid, err := k.vault.ReducePosition(ctx, msg.Amount, types.VaultModuleName)
		if err != nil {
			return types.ErrExternalCall.Wrapf("reduce position: %v", err)
		}
		if err := checkSlippage(paid, msg.Amount, pool.MaxSlippageBps); err != nil {
			k.metrics.GuardRejections.Inc()
			return err
		}
		remaining, err := k.VaultValue(ctx)
		if err != nil {
			return err
		}

		sdkCtx, now := contextNow(ctx)

		pos.DeployedAmount, err = types.CheckedSub(pos.DeployedAmount, msg.Amount)
		if err != nil {
			return err
		}
		if pos.DeployedAmount == 0 {
			pos = types.VaultPosition{}
		} else {
			pos.UpdatedAtUnix = now.Unix()
		}
		if err := k.setVaultPosition(ctx, pos); err != nil {
			return err
		}

		pool.UpdatedAtUnix = now.Unix()

		emitEventIfPossible(sdkCtx, sdk.NewEvent(
			types.EventTypeVaultRecall,
			sdk.NewAttribute(types.AttrKeyAdmin, msg.Admin),
			sdk.NewAttribute(types.AttrKeyAmount, strconv.FormatUint(paid, 10)),
			sdk.NewAttribute(types.AttrKeyVaultValue, remaining.String()),
			sdk.NewAttribute(types.AttrKeyTimestamp, strconv.FormatInt(now.Unix(), 10)),
		))
		sdkCtx.Logger().Info("vault position reduced",
			"requested", msg.Amount,
			"paid", paid,
			"vault_value", remaining.String(),
		)
		return nil
	})
}
