package keeper_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/keeper"
	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

func rebalanceStaker(i int) string {
	return fmt.Sprintf("trust1user%02d", i)
}

// seedStakers stakes descending amounts for n users so that user 0 scores
// highest and user n-1 lowest.
func seedStakers(t *testing.T, k keeper.Keeper, ctx sdk.Context, tk *mockTokenKeeper, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		owner := rebalanceStaker(i)
		amount := uint64(n-i) * 1_000_000_000
		tk.fund(keeper.StakeDenom, owner, amount)
		require.NoError(t, k.Stake(ctx, types.MsgStake{
			Staker:        owner,
			Amount:        amount,
			CommittedDays: 30,
		}))
	}
}

func TestRebalanceAssignsTiersByRank(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)
	tk := newMockTokenKeeper()
	k.SetTokenKeeper(tk)

	const users = 31
	seedStakers(t, k, ctx, tk, users)

	ctx = advance(ctx, 40*24*time.Hour)
	require.NoError(t, k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin}))

	// Two batches: the per-call cap is 25 users.
	var keys []string
	for i := 0; i < users; i++ {
		keys = append(keys, rebalanceStaker(i))
	}
	require.NoError(t, k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
		Admin:    testAdmin,
		UserKeys: keys[:types.MaxRebalanceBatch],
	}))
	require.NoError(t, k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
		Admin:    testAdmin,
		UserKeys: keys[types.MaxRebalanceBatch:],
	}))

	require.NoError(t, k.FinalizeRebalance(ctx, types.MsgFinalizeRebalance{Admin: testAdmin}))

	for i := 0; i < users; i++ {
		stake, err := k.GetStake(ctx, rebalanceStaker(i))
		require.NoError(t, err)
		switch {
		case i < types.GoldRankCutoff:
			require.Equal(t, types.TierGold, stake.Tier, "rank %d", i)
		case i < types.SilverRankCutoff:
			require.Equal(t, types.TierSilver, stake.Tier, "rank %d", i)
		default:
			require.Equal(t, types.TierBronze, stake.Tier, "rank %d", i)
		}
	}

	// Tier badges follow the assignment.
	goldBadge, _ := tk.Balance(ctx, keeper.GoldBadgeDenom, rebalanceStaker(0))
	require.Equal(t, uint64(1), goldBadge)
	bronzeBadge, _ := tk.Balance(ctx, keeper.BronzeBadgeDenom, rebalanceStaker(30))
	require.Equal(t, uint64(1), bronzeBadge)

	pool, err := k.GetPool(ctx)
	require.NoError(t, err)
	require.Equal(t, ctx.BlockTime().Unix(), pool.LastRebalanceUnix)
	require.NoError(t, k.CheckInvariants(ctx))
}

func TestRebalanceThirtyDayGate(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)
	tk := newMockTokenKeeper()
	k.SetTokenKeeper(tk)
	seedStakers(t, k, ctx, tk, 2)

	require.NoError(t, k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin}))
	require.NoError(t, k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
		Admin:    testAdmin,
		UserKeys: []string{rebalanceStaker(0), rebalanceStaker(1)},
	}))
	require.NoError(t, k.FinalizeRebalance(ctx, types.MsgFinalizeRebalance{Admin: testAdmin}))

	// 29 days later the next cycle is still gated.
	ctx = advance(ctx, 29*24*time.Hour)
	err := k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin})
	require.ErrorIs(t, err, types.ErrRebalanceTooSoon)

	ctx = advance(ctx, 2*24*time.Hour)
	require.NoError(t, k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin}))
}

func TestRebalanceBatchWithoutCycleFails(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)

	err := k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
		Admin:    testAdmin,
		UserKeys: []string{rebalanceStaker(0)},
	})
	require.ErrorIs(t, err, types.ErrNoRebalanceCycle)

	err = k.FinalizeRebalance(ctx, types.MsgFinalizeRebalance{Admin: testAdmin})
	require.ErrorIs(t, err, types.ErrNoRebalanceCycle)
}

func TestRebalanceBatchSizeLimit(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)
	require.NoError(t, k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin}))

	keys := make([]string, types.MaxRebalanceBatch+1)
	for i := range keys {
		keys[i] = rebalanceStaker(i)
	}
	err := k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{Admin: testAdmin, UserKeys: keys})
	require.ErrorIs(t, err, types.ErrBatchTooLarge)
}

func TestRebalanceScoreBufferCapacity(t *testing.T) {
	k, ctx := setupKeeper(t)

	// Seed one more staker than the buffer holds through genesis; uniform
	// amounts keep every stake below the large-operation threshold.
	const users = types.MaxScoreEntries + 1
	now := ctx.BlockTime().Unix()
	pool := types.NewPool(testAdmin, 1200, 1, 365, "", now)
	stakes := make([]types.UserStake, users)
	for i := range stakes {
		stakes[i] = types.UserStake{
			Owner:          rebalanceStaker(i),
			Amount:         1_000_000_000,
			CommittedDays:  30,
			StakeTimestamp: now,
			LifetimeStaked: 1_000_000_000,
		}
		pool.TotalStaked += 1_000_000_000
		pool.TotalUsers++
	}
	require.NoError(t, k.InitGenesis(ctx, types.GenesisState{Pool: &pool, Stakes: stakes}))
	k.SetTokenKeeper(newMockTokenKeeper())

	require.NoError(t, k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin}))
	for start := 0; start < types.MaxScoreEntries; start += types.MaxRebalanceBatch {
		keys := make([]string, 0, types.MaxRebalanceBatch)
		for i := start; i < start+types.MaxRebalanceBatch; i++ {
			keys = append(keys, rebalanceStaker(i))
		}
		require.NoError(t, k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
			Admin:    testAdmin,
			UserKeys: keys,
		}))
	}

	// The 101st entry does not fit.
	err := k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
		Admin:    testAdmin,
		UserKeys: []string{rebalanceStaker(types.MaxScoreEntries)},
	})
	require.ErrorIs(t, err, types.ErrScoreBufferFull)

	// The open cycle survives the failed batch: the buffer still holds
	// exactly the cap and finalize ranks it.
	raw, err := k.Scores.Get(ctx)
	require.NoError(t, err)
	var scores types.TempScores
	require.NoError(t, json.Unmarshal([]byte(raw), &scores))
	require.Len(t, scores.Entries, types.MaxScoreEntries)

	require.NoError(t, k.FinalizeRebalance(ctx, types.MsgFinalizeRebalance{Admin: testAdmin}))

	// Equal scores rank by insertion order; the unbuffered user keeps no tier.
	first, err := k.GetStake(ctx, rebalanceStaker(0))
	require.NoError(t, err)
	require.Equal(t, types.TierGold, first.Tier)
	overflow, err := k.GetStake(ctx, rebalanceStaker(types.MaxScoreEntries))
	require.NoError(t, err)
	require.Equal(t, types.TierNone, overflow.Tier)
	require.NoError(t, k.CheckInvariants(ctx))
}

func TestRebalanceBurnsInactiveStakes(t *testing.T) {
	k, ctx := setupKeeper(t)

	// Seed a dust-sized stake through genesis; a real stake cannot go below
	// the pool minimum, but imported state can carry legacy dust.
	now := ctx.BlockTime().Unix()
	pool := types.NewPool(testAdmin, 1200, 1, 365, "", now)
	pool.TotalStaked = 1
	pool.TotalUsers = 1
	require.NoError(t, k.InitGenesis(ctx, types.GenesisState{
		Pool: &pool,
		Stakes: []types.UserStake{{
			Owner:          "trust1dust",
			Amount:         1,
			CommittedDays:  1,
			StakeTimestamp: now,
			LifetimeStaked: 1,
		}},
	}))

	tk := newMockTokenKeeper()
	tk.fund(keeper.StakeBadgeDenom, "trust1dust", 1)
	k.SetTokenKeeper(tk)

	// score = floor((5*1 + 5*0) * 1.0) = 5, below the floor of 6.
	require.NoError(t, k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: testAdmin}))
	require.NoError(t, k.RebalanceTiersBatch(ctx, types.MsgRebalanceTiersBatch{
		Admin:    testAdmin,
		UserKeys: []string{"trust1dust"},
	}))

	stake, err := k.GetStake(ctx, "trust1dust")
	require.NoError(t, err)
	require.True(t, stake.IsEmpty())

	badge, _ := tk.Balance(ctx, keeper.StakeBadgeDenom, "trust1dust")
	require.Zero(t, badge)

	updated, err := k.GetPool(ctx)
	require.NoError(t, err)
	require.Zero(t, updated.TotalStaked)
	require.Zero(t, updated.TotalUsers)

	require.NoError(t, k.FinalizeRebalance(ctx, types.MsgFinalizeRebalance{Admin: testAdmin}))
	require.NoError(t, k.CheckInvariants(ctx))
}

func TestRebalanceRequiresAdmin(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)

	err := k.TriggerRebalance(ctx, types.MsgTriggerRebalance{Admin: "trust1outsider"})
	require.ErrorIs(t, err, types.ErrUnauthorized)
}
