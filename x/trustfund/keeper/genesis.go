package keeper

import (
	"context"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// InitGenesis loads module state from genesis.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if gs.Pool != nil {
		if err := k.setPool(ctx, *gs.Pool); err != nil {
			return err
		}
	}
	for _, stake := range gs.Stakes {
		if err := k.setStake(ctx, stake); err != nil {
			return err
		}
	}
	if gs.Scores != nil {
		if err := k.setScores(ctx, *gs.Scores); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis dumps module state for export.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()

	if k.HasPool(ctx) {
		pool, err := k.GetPool(ctx)
		if err != nil {
			return nil, err
		}
		gs.Pool = pool
	}

	err := k.WalkStakes(ctx, func(stake types.UserStake) (bool, error) {
		gs.Stakes = append(gs.Stakes, stake)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	if scores, err := k.getScores(ctx); err == nil {
		gs.Scores = scores
	}
	return gs, nil
}
