package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

func TestMsgStakeValidateBasic(t *testing.T) {
	valid := types.MsgStake{Staker: "trust1alice", Amount: 1_000_000_000, CommittedDays: 30}
	require.NoError(t, valid.ValidateBasic())

	cases := []struct {
		name string
		msg  types.MsgStake
	}{
		{"empty staker", types.MsgStake{Amount: 1, CommittedDays: 30}},
		{"zero amount", types.MsgStake{Staker: "trust1alice", CommittedDays: 30}},
		{"zero days", types.MsgStake{Staker: "trust1alice", Amount: 1}},
		{"reinvest above 100", types.MsgStake{Staker: "trust1alice", Amount: 1, CommittedDays: 30, AutoReinvestPct: 101}},
		{"self referral", types.MsgStake{Staker: "trust1alice", Amount: 1, CommittedDays: 30, Referrer: "trust1alice"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.msg.ValidateBasic())
		})
	}
}

func TestMsgInitializePoolValidateBasic(t *testing.T) {
	valid := types.MsgInitializePool{Admin: "trust1admin", ApyBps: 1200, MinCommitmentDays: 1, MaxCommitmentDays: 365}
	require.NoError(t, valid.ValidateBasic())

	apyTooHigh := valid
	apyTooHigh.ApyBps = types.MaxApyBps + 1
	require.ErrorIs(t, apyTooHigh.ValidateBasic(), types.ErrInvalidApy)

	daysInverted := valid
	daysInverted.MinCommitmentDays = 100
	daysInverted.MaxCommitmentDays = 10
	require.ErrorIs(t, daysInverted.ValidateBasic(), types.ErrInvalidCommitmentDays)
}

func TestMsgProposeAdminActionValidateBasic(t *testing.T) {
	require.NoError(t, types.MsgProposeAdminAction{
		Proposer: "trust1admin",
		Action:   types.ActionUpdateApy,
		NewValue: 2000,
	}.ValidateBasic())

	require.ErrorIs(t, types.MsgProposeAdminAction{
		Proposer: "trust1admin",
		Action:   types.ActionType("demolish"),
	}.ValidateBasic(), types.ErrNoPendingAction)

	require.ErrorIs(t, types.MsgProposeAdminAction{
		Proposer: "trust1admin",
		Action:   types.ActionUpdateFee,
		NewValue: types.MaxDepositFeeBps + 1,
	}.ValidateBasic(), types.ErrInvalidFee)

	longReason := types.MsgProposeAdminAction{
		Proposer: "trust1admin",
		Action:   types.ActionPause,
		Reason:   strings.Repeat("x", types.MaxPauseReasonLen+1),
	}
	require.ErrorIs(t, longReason.ValidateBasic(), types.ErrInvalidReason)
}

func TestMsgRebalanceBatchValidateBasic(t *testing.T) {
	keys := make([]string, types.MaxRebalanceBatch)
	for i := range keys {
		keys[i] = "trust1user"
	}
	require.NoError(t, types.MsgRebalanceTiersBatch{Admin: "trust1admin", UserKeys: keys}.ValidateBasic())

	tooMany := append(keys, "trust1more")
	require.ErrorIs(t,
		types.MsgRebalanceTiersBatch{Admin: "trust1admin", UserKeys: tooMany}.ValidateBasic(),
		types.ErrBatchTooLarge,
	)

	require.Error(t, types.MsgRebalanceTiersBatch{Admin: "trust1admin"}.ValidateBasic())
}

func TestPoolValidate(t *testing.T) {
	pool := types.NewPool("trust1admin", 1200, 1, 365, "", 1_770_000_000)
	require.NoError(t, pool.Validate())

	broken := pool
	broken.MultisigThreshold = 2 // exceeds the single-signer set
	require.ErrorIs(t, broken.Validate(), types.ErrInvalidThreshold)

	broken = pool
	broken.TotalStaked = broken.MaxTotalStaked
	require.ErrorIs(t, broken.Validate(), types.ErrInvalidAmount)
}

func TestUserStakeResetKeepsRateWindows(t *testing.T) {
	stake := types.UserStake{
		Owner:          "trust1alice",
		Amount:         1_000,
		CommittedDays:  30,
		StakeTimestamp: 1_770_000_000,
		TotalClaimed:   5,
		LifetimeStaked: 1_000,
		Tier:           types.TierGold,
		Referrer:       "trust1bob",
		StakeWindow:    types.RateWindow{WindowStartUnix: 1_770_000_000, Attempts: 3, LastAttemptUnix: 1_770_000_100},
	}

	stake.Reset()
	require.True(t, stake.IsEmpty())
	require.Zero(t, stake.CommittedDays)
	require.Zero(t, stake.TotalClaimed)
	require.Equal(t, types.TierNone, stake.Tier)
	require.Empty(t, stake.Referrer)

	// Lifetime totals and rate windows survive so churn cannot launder limits.
	require.Equal(t, uint64(1_000), stake.LifetimeStaked)
	require.Equal(t, uint64(3), stake.StakeWindow.Attempts)
}
