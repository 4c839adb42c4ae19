package keeper

import (
	"context"
	"fmt"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// CheckInvariants verifies the aggregate accounting the keeper maintains:
// the pool totals must equal the walked sums over all stake records, and
// every empty record must be fully zeroed. Intended for tests and crisis
// checks; returns nil when no pool exists yet.
func (k Keeper) CheckInvariants(ctx context.Context) error {
	if !k.HasPool(ctx) {
		return nil
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return err
	}

	var totalStaked, totalUsers uint64
	err = k.WalkStakes(ctx, func(stake types.UserStake) (bool, error) {
		if stake.IsEmpty() {
			if stake.CommittedDays != 0 || stake.StakeTimestamp != 0 || stake.TotalClaimed != 0 || stake.Tier != types.TierNone {
				return true, fmt.Errorf("empty stake for %s carries residual state", stake.Owner)
			}
			return false, nil
		}
		var addErr error
		totalStaked, addErr = types.CheckedAdd(totalStaked, stake.Amount)
		if addErr != nil {
			return true, addErr
		}
		totalUsers++
		return false, nil
	})
	if err != nil {
		return err
	}

	if totalStaked != pool.TotalStaked {
		return fmt.Errorf("pool total_staked %d does not match stake sum %d", pool.TotalStaked, totalStaked)
	}
	if totalUsers != pool.TotalUsers {
		return fmt.Errorf("pool total_users %d does not match active stake count %d", pool.TotalUsers, totalUsers)
	}

	if pool.PendingAction != nil {
		if err := pool.PendingAction.Validate(); err != nil {
			return fmt.Errorf("pending action invalid: %w", err)
		}
		if uint64(len(pool.PendingAction.Signatures)) > uint64(len(pool.MultisigSigners)) {
			return fmt.Errorf("pending action holds %d signatures with only %d signers",
				len(pool.PendingAction.Signatures), len(pool.MultisigSigners))
		}
	}

	if scores, err := k.getScores(ctx); err == nil {
		if len(scores.Entries) > types.MaxScoreEntries {
			return fmt.Errorf("score buffer %d exceeds %d", len(scores.Entries), types.MaxScoreEntries)
		}
	}
	return nil
}
