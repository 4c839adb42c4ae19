package types

import (
	"strings"
)

// Messages are plain structs validated with ValidateBasic before the keeper
// touches state. Stateless checks only; anything needing pool state belongs
// in the keeper.

// MsgInitializePool creates the singleton pool.
type MsgInitializePool struct {
	Admin             string `json:"admin"`
	ApyBps            uint64 `json:"apy_bps"`
	MinCommitmentDays uint64 `json:"min_commitment_days"`
	MaxCommitmentDays uint64 `json:"max_commitment_days"`
	OracleFeed        string `json:"oracle_feed,omitempty"`
}

func (m MsgInitializePool) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if m.ApyBps == 0 || m.ApyBps > MaxApyBps {
		return ErrInvalidApy.Wrapf("apy must be in (0, %d] bps, got %d", MaxApyBps, m.ApyBps)
	}
	if m.MinCommitmentDays == 0 {
		return ErrInvalidCommitmentDays.Wrap("min commitment days must be positive")
	}
	if m.MaxCommitmentDays < m.MinCommitmentDays || m.MaxCommitmentDays > MaxCommitmentDaysBound {
		return ErrInvalidCommitmentDays.Wrapf(
			"max commitment days must be in [%d, %d], got %d",
			m.MinCommitmentDays, MaxCommitmentDaysBound, m.MaxCommitmentDays,
		)
	}
	return nil
}

// MsgStake deposits into the fund. MinExpectedAmount and DeadlineUnix are
// optional protective parameters: zero disables the corresponding guard.
type MsgStake struct {
	Staker            string `json:"staker"`
	Amount            uint64 `json:"amount"`
	CommittedDays     uint64 `json:"committed_days"`
	MinExpectedAmount uint64 `json:"min_expected_amount,omitempty"`
	DeadlineUnix      int64  `json:"deadline_unix,omitempty"`
	Referrer          string `json:"referrer,omitempty"`
	AutoReinvestPct   uint64 `json:"auto_reinvest_pct,omitempty"`
}

func (m MsgStake) ValidateBasic() error {
	if strings.TrimSpace(m.Staker) == "" {
		return ErrUnauthorized.Wrap("staker cannot be empty")
	}
	if m.Amount == 0 {
		return ErrInvalidAmount.Wrap("stake amount must be positive")
	}
	if m.CommittedDays == 0 {
		return ErrInvalidCommitmentDays.Wrap("committed days must be positive")
	}
	if m.AutoReinvestPct > 100 {
		return ErrInvalidAmount.Wrapf("auto-reinvest percentage %d exceeds 100", m.AutoReinvestPct)
	}
	if m.Referrer == m.Staker && m.Referrer != "" {
		return ErrInvalidAmount.Wrap("self-referral is not allowed")
	}
	return nil
}

// MsgClaimYields claims accrued yield for the caller's stake.
type MsgClaimYields struct {
	Staker string `json:"staker"`
}

func (m MsgClaimYields) ValidateBasic() error {
	if strings.TrimSpace(m.Staker) == "" {
		return ErrUnauthorized.Wrap("staker cannot be empty")
	}
	return nil
}

// MsgUnstake exits the fund, with a 5% penalty before commitment elapses.
type MsgUnstake struct {
	Staker string `json:"staker"`
}

func (m MsgUnstake) ValidateBasic() error {
	if strings.TrimSpace(m.Staker) == "" {
		return ErrUnauthorized.Wrap("staker cannot be empty")
	}
	return nil
}

// MsgEmergencyPause halts stake/claim/unstake. Admin-only.
type MsgEmergencyPause struct {
	Admin  string `json:"admin"`
	Reason string `json:"reason"`
}

func (m MsgEmergencyPause) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if len(m.Reason) > MaxPauseReasonLen {
		return ErrInvalidReason.Wrapf("reason exceeds %d characters", MaxPauseReasonLen)
	}
	return nil
}

// MsgEmergencyUnpause resumes operations. Admin-only.
type MsgEmergencyUnpause struct {
	Admin string `json:"admin"`
}

func (m MsgEmergencyUnpause) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	return nil
}

// MsgUpdateApy directly updates the pool APY. Admin-only.
type MsgUpdateApy struct {
	Admin  string `json:"admin"`
	ApyBps uint64 `json:"apy_bps"`
}

func (m MsgUpdateApy) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if m.ApyBps == 0 || m.ApyBps > MaxApyBps {
		return ErrInvalidApy.Wrapf("apy must be in (0, %d] bps, got %d", MaxApyBps, m.ApyBps)
	}
	return nil
}

// MsgUpdateDepositFee directly updates the deposit fee. Admin-only.
type MsgUpdateDepositFee struct {
	Admin  string `json:"admin"`
	FeeBps uint64 `json:"fee_bps"`
}

func (m MsgUpdateDepositFee) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if m.FeeBps > MaxDepositFeeBps {
		return ErrInvalidFee.Wrapf("fee must be <= %d bps, got %d", MaxDepositFeeBps, m.FeeBps)
	}
	return nil
}

// MsgUpdatePoolLimits updates stake/deposit caps. Admin-only. Zero fields
// mean "leave unchanged".
type MsgUpdatePoolLimits struct {
	Admin             string `json:"admin"`
	MinStakeAmount    uint64 `json:"min_stake_amount,omitempty"`
	MaxStakeAmount    uint64 `json:"max_stake_amount,omitempty"`
	MaxDepositPerUser uint64 `json:"max_deposit_per_user,omitempty"`
	MaxTotalStaked    uint64 `json:"max_total_staked,omitempty"`
}

func (m MsgUpdatePoolLimits) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if m.MinStakeAmount == 0 && m.MaxStakeAmount == 0 && m.MaxDepositPerUser == 0 && m.MaxTotalStaked == 0 {
		return ErrInvalidAmount.Wrap("at least one limit must be provided")
	}
	return nil
}

// MsgWithdrawFees moves collected fees to the admin. Admin-only.
type MsgWithdrawFees struct {
	Admin  string `json:"admin"`
	Amount uint64 `json:"amount"`
}

func (m MsgWithdrawFees) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if m.Amount == 0 {
		return ErrInvalidAmount.Wrap("withdraw amount must be positive")
	}
	return nil
}

// MsgProposeAdminAction opens a timelocked multisig action.
type MsgProposeAdminAction struct {
	Proposer string     `json:"proposer"`
	Action   ActionType `json:"action"`
	NewValue uint64     `json:"new_value,omitempty"`
	AuxValue uint64     `json:"aux_value,omitempty"`
	Reason   string     `json:"reason,omitempty"`
}

func (m MsgProposeAdminAction) ValidateBasic() error {
	if strings.TrimSpace(m.Proposer) == "" {
		return ErrUnauthorized.Wrap("proposer cannot be empty")
	}
	if !ValidActionType(m.Action) {
		return ErrNoPendingAction.Wrapf("unknown action type %q", m.Action)
	}
	if len(m.Reason) > MaxPauseReasonLen {
		return ErrInvalidReason.Wrapf("reason exceeds %d characters", MaxPauseReasonLen)
	}
	switch m.Action {
	case ActionUpdateApy:
		if m.NewValue == 0 || m.NewValue > MaxApyBps {
			return ErrInvalidApy.Wrapf("apy must be in (0, %d] bps, got %d", MaxApyBps, m.NewValue)
		}
	case ActionUpdateFee:
		if m.NewValue > MaxDepositFeeBps {
			return ErrInvalidFee.Wrapf("fee must be <= %d bps, got %d", MaxDepositFeeBps, m.NewValue)
		}
	case ActionWithdrawFees:
		if m.NewValue == 0 {
			return ErrInvalidAmount.Wrap("withdraw amount must be positive")
		}
	case ActionUpdateLimits:
		if m.NewValue == 0 || m.AuxValue < m.NewValue {
			return ErrInvalidAmount.Wrapf("limit payload (min=%d, max=%d) invalid", m.NewValue, m.AuxValue)
		}
	}
	return nil
}

// MsgSignAdminAction appends a signature to the pending action.
type MsgSignAdminAction struct {
	Signer string `json:"signer"`
}

func (m MsgSignAdminAction) ValidateBasic() error {
	if strings.TrimSpace(m.Signer) == "" {
		return ErrUnauthorized.Wrap("signer cannot be empty")
	}
	return nil
}

// MsgExecuteAdminAction executes the pending action after the timelock.
type MsgExecuteAdminAction struct {
	Executor string `json:"executor"`
}

func (m MsgExecuteAdminAction) ValidateBasic() error {
	if strings.TrimSpace(m.Executor) == "" {
		return ErrUnauthorized.Wrap("executor cannot be empty")
	}
	return nil
}

// MsgAddMultisigSigner grows the signer set. Admin-only.
type MsgAddMultisigSigner struct {
	Admin  string `json:"admin"`
	Signer string `json:"signer"`
}

func (m MsgAddMultisigSigner) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" || strings.TrimSpace(m.Signer) == "" {
		return ErrUnauthorized.Wrap("admin and signer cannot be empty")
	}
	return nil
}

// MsgUpdateMultisigThreshold updates the signature threshold. Admin-only.
type MsgUpdateMultisigThreshold struct {
	Admin     string `json:"admin"`
	Threshold uint64 `json:"threshold"`
}

func (m MsgUpdateMultisigThreshold) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if m.Threshold == 0 {
		return ErrInvalidThreshold.Wrap("threshold must be positive")
	}
	return nil
}

// MsgTriggerRebalance opens a tier rebalance cycle. Admin-only crank.
type MsgTriggerRebalance struct {
	Admin string `json:"admin"`
}

func (m MsgTriggerRebalance) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	return nil
}

// MsgRebalanceTiersBatch scores up to MaxRebalanceBatch users in the open
// cycle. Each key loads and mutates its own distinct stake record.
type MsgRebalanceTiersBatch struct {
	Admin    string   `json:"admin"`
	UserKeys []string `json:"user_keys"`
}

func (m MsgRebalanceTiersBatch) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if len(m.UserKeys) == 0 {
		return ErrInvalidAmount.Wrap("batch cannot be empty")
	}
	if len(m.UserKeys) > MaxRebalanceBatch {
		return ErrBatchTooLarge.Wrapf("batch of %d exceeds %d", len(m.UserKeys), MaxRebalanceBatch)
	}
	return nil
}

// MsgFinalizeRebalance ranks the buffered scores and assigns tiers.
type MsgFinalizeRebalance struct {
	Admin string `json:"admin"`
}

func (m MsgFinalizeRebalance) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	return nil
}

// MsgDeployToVault routes idle custody through the swap router into the
// external leverage vault. Admin-only.
type MsgDeployToVault struct {
	Admin    string `json:"admin"`
	Asset    string `json:"asset"`
	Amount   uint64 `json:"amount"`
	Leverage uint64 `json:"leverage"`
}

func (m MsgDeployToVault) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if strings.TrimSpace(m.Asset) == "" {
		return ErrInvalidAmount.Wrap("asset cannot be empty")
	}
	if m.Amount == 0 {
		return ErrInvalidAmount.Wrap("deploy amount must be positive")
	}
	if m.Leverage == 0 || m.Leverage > 3 {
		return ErrInvalidAmount.Wrapf("leverage must be in [1,3], got %d", m.Leverage)
	}
	return nil
}

// MsgRecallFromVault reduces the external vault position back into custody.
// Admin-only.
type MsgRecallFromVault struct {
	Admin  string `json:"admin"`
	Amount uint64 `json:"amount"`
}

func (m MsgRecallFromVault) ValidateBasic() error {
	if strings.TrimSpace(m.Admin) == "" {
		return ErrUnauthorized.Wrap("admin cannot be empty")
	}
	if m.Amount == 0 {
		return ErrInvalidAmount.Wrap("recall amount must be positive")
	}
	return nil
}
