package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/keeper"
	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

func TestModuleMetricsTrackStakeLifecycle(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)
	fundedStaker(t, &k, ctx, 10_000_000_000)

	require.NoError(t, k.Stake(ctx, types.MsgStake{
		Staker:        testStaker,
		Amount:        10_000_000_000,
		CommittedDays: 90,
	}))

	m := k.Metrics()
	require.EqualValues(t, 1, m.StakesAccepted.Get())
	require.EqualValues(t, 50_000_000, m.FeesCollected.Get())
	require.EqualValues(t, 1, m.ActiveStakers.Get())

	ctx = advance(ctx, 10*24*time.Hour)
	require.NoError(t, k.Unstake(ctx, types.MsgUnstake{Staker: testStaker}))

	require.EqualValues(t, 1, m.UnstakesEarly.Get())
	require.EqualValues(t, 497_500_000, m.PenaltiesAssessed.Get())
	require.EqualValues(t, 0, m.ActiveStakers.Get())
}

func TestEndBlockerEmitsMetricsSnapshot(t *testing.T) {
	k, ctx := setupKeeper(t)
	initPool(t, k, ctx)
	fundedStaker(t, &k, ctx, 10_000_000_000)

	require.NoError(t, k.Stake(ctx, types.MsgStake{
		Staker:        testStaker,
		Amount:        1_000_000_000,
		CommittedDays: 30,
	}))
	require.NoError(t, k.EndBlocker(ctx))

	var found bool
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type != "trustfund_module_metrics" {
			continue
		}
		found = true
		attrs := make(map[string]string, len(ev.Attributes))
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = attr.Value
		}
		require.Equal(t, "1", attrs["stakes_accepted"])
		require.Equal(t, "1", attrs["active_stakers"])
		require.Equal(t, "5000000", attrs["fees_collected_utrust"])
	}
	require.True(t, found)
}

func TestTimingHistogramSummaryPercentiles(t *testing.T) {
	h := keeper.NewTimingHistogram(8)
	for _, ms := range []int{7, 2, 9, 4, 1, 8, 3, 5} {
		h.Record(time.Duration(ms) * time.Millisecond)
	}

	s := h.Summary()
	require.EqualValues(t, 8, s.Count)
	require.Equal(t, 1*time.Millisecond, s.Min)
	require.Equal(t, 9*time.Millisecond, s.Max)
	require.Equal(t, 4_875_000*time.Nanosecond, s.Avg)
	require.Equal(t, 5*time.Millisecond, s.P50)
	require.Equal(t, 9*time.Millisecond, s.P95)
}

func TestTimingHistogramEmptySummary(t *testing.T) {
	s := keeper.NewTimingHistogram(4).Summary()
	require.Zero(t, s.Count)
	require.Zero(t, s.Min)
	require.Zero(t, s.Max)
}

func TestTimingHistogramTimer(t *testing.T) {
	h := keeper.NewTimingHistogram(4)
	stop := h.Time()
	stop()
	require.EqualValues(t, 1, h.Count())
}
