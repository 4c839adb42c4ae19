package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

func TestGenesisExportImportRoundTrip(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)
	tk := fundedStaker(t, &k, ctx, 10_000_000_000)
	tk.fund("utrust", "trust1bob", 5_000_000_000)

	require.NoError(t, k.Stake(ctx, types.MsgStake{
		Staker:        testStaker,
		Amount:        10_000_000_000,
		CommittedDays: 90,
	}))
	require.NoError(t, k.Stake(ctx, types.MsgStake{
		Staker:        "trust1bob",
		Amount:        5_000_000_000,
		CommittedDays: 30,
	}))
	ctx = advance(ctx, time.Hour)
	require.NoError(t, k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin}))
	require.NoError(t, k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
		Admin:    testAdmin,
		UserKeys: []string{testStaker},
	}))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NotNil(t, exported.Pool)
	require.Len(t, exported.Stakes, 2)
	require.NotNil(t, exported.Scores)
	require.Len(t, exported.Scores.Entries, 1)
	require.NoError(t, exported.Validate())

	// Reload into a fresh keeper and compare.
	k2, ctx2 := setupKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	reexported, err := k2.ExportGenesis(ctx2)
	require.NoError(t, err)
	require.Equal(t, exported, reexported)
	require.NoError(t, k2.CheckInvariants(ctx2))
}

func TestGenesisRejectsMismatchedAggregates(t *testing.T) {
	k, ctx := setupKeeper(t)

	now := ctx.BlockTime().Unix()
	pool := types.NewPool(testAdmin, 1200, 1, 365, "", now)
	pool.TotalStaked = 999 // does not match the stake sum below
	pool.TotalUsers = 1

	err := k.InitGenesis(ctx, types.GenesisState{
		Pool: &pool,
		Stakes: []types.UserStake{{
			Owner:          "trust1bob",
			Amount:         1_000_000_000,
			CommittedDays:  30,
			StakeTimestamp: now,
		}},
	})
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestDefaultGenesisIsEmptyAndValid(t *testing.T) {
	k, ctx := setupKeeper(t)

	gs := types.DefaultGenesis()
	require.NoError(t, gs.Validate())
	require.NoError(t, k.InitGenesis(ctx, *gs))
	require.False(t, k.HasPool(ctx))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Nil(t, exported.Pool)
	require.Empty(t, exported.Stakes)
}
