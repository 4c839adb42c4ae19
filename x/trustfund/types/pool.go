package types

import (
	"strings"
)

// Default pool configuration, denominated in base units (1e9 base units per
// whole token).
const (
	DefaultDepositFeeBps      uint64 = 50                    // 0.5%
	DefaultMinStakeAmount     uint64 = 100_000_000           // 0.1 token
	DefaultMaxStakeAmount     uint64 = 1_000_000_000_000     // 1,000 tokens
	DefaultMaxDepositPerUser  uint64 = 2_000_000_000_000     // 2,000 tokens
	DefaultMaxTotalStaked     uint64 = 1_000_000_000_000_000 // 1,000,000 tokens
	DefaultMaxSlippageBps     uint64 = 300                   // 3%
	DefaultDeadlineSeconds    int64  = 120
	DefaultMEVLargeThreshold  uint64 = 100_000_000_000 // 100 tokens
	DefaultMEVCooldownSlots   int64  = 10
	DefaultOracleStalenessSec int64  = 60

	// MaxCommitmentDaysBound is the hard upper bound on commitment periods.
	MaxCommitmentDaysBound uint64 = 365

	// MaxPauseReasonLen bounds the emergency-pause reason string.
	MaxPauseReasonLen = 200

	// MaxMultisigSigners bounds the governance signer set.
	MaxMultisigSigners = 10

	// RebalanceIntervalSeconds is the minimum spacing between rebalance
	// cycles (30 days).
	RebalanceIntervalSeconds int64 = 30 * 24 * 3600

	// TimelockDelaySeconds is the mandatory delay between proposing and
	// executing a privileged action (24h).
	TimelockDelaySeconds int64 = 24 * 3600
)

// Pool is the singleton fund configuration and aggregate state. It is the
// exclusive property of the module; every mutation flows through the keeper.
type Pool struct {
	Admin             string `json:"admin"`
	ApyBps            uint64 `json:"apy_bps"`
	DepositFeeBps     uint64 `json:"deposit_fee_bps"`
	MinCommitmentDays uint64 `json:"min_commitment_days"`
	MaxCommitmentDays uint64 `json:"max_commitment_days"`
	MinStakeAmount    uint64 `json:"min_stake_amount"`
	MaxStakeAmount    uint64 `json:"max_stake_amount"`
	MaxDepositPerUser uint64 `json:"max_deposit_per_user"`
	MaxTotalStaked    uint64 `json:"max_total_staked"`

	TotalStaked        uint64 `json:"total_staked"`
	TotalUsers         uint64 `json:"total_users"`
	TotalFeesCollected uint64 `json:"total_fees_collected"`
	TotalYieldsPaid    uint64 `json:"total_yields_paid"`

	Active bool `json:"active"`
	Paused bool `json:"paused"`

	OracleFeed          string `json:"oracle_feed,omitempty"`
	OracleStalenessSecs int64  `json:"oracle_staleness_secs"`

	MultisigSigners   []string       `json:"multisig_signers"`
	MultisigThreshold uint64         `json:"multisig_threshold"`
	PendingAction     *PendingAction `json:"pending_action,omitempty"`

	// ReentrancyLock is set for the duration of any operation that calls
	// out to external programs while holding mutable pool state.
	ReentrancyLock bool `json:"reentrancy_lock"`

	MaxSlippageBps    uint64 `json:"max_slippage_bps"`
	DeadlineSeconds   int64  `json:"deadline_seconds"`
	MEVLargeThreshold uint64 `json:"mev_large_threshold"`
	MEVCooldownSlots  int64  `json:"mev_cooldown_slots"`
	LastLargeOpSlot   int64  `json:"last_large_op_slot"`

	LastRebalanceUnix int64 `json:"last_rebalance_unix"`
	CreatedAtUnix     int64 `json:"created_at_unix"`
	UpdatedAtUnix     int64 `json:"updated_at_unix"`
}

// NewPool builds an active pool with default limits and the admin as the sole
// multisig signer at threshold 1.
func NewPool(admin string, apyBps, minDays, maxDays uint64, oracleFeed string, nowUnix int64) Pool {
	return Pool{
		Admin:               admin,
		ApyBps:              apyBps,
		DepositFeeBps:       DefaultDepositFeeBps,
		MinCommitmentDays:   minDays,
		MaxCommitmentDays:   maxDays,
		MinStakeAmount:      DefaultMinStakeAmount,
		MaxStakeAmount:      DefaultMaxStakeAmount,
		MaxDepositPerUser:   DefaultMaxDepositPerUser,
		MaxTotalStaked:      DefaultMaxTotalStaked,
		Active:              true,
		OracleFeed:          strings.TrimSpace(oracleFeed),
		OracleStalenessSecs: DefaultOracleStalenessSec,
		MultisigSigners:     []string{admin},
		MultisigThreshold:   1,
		MaxSlippageBps:      DefaultMaxSlippageBps,
		DeadlineSeconds:     DefaultDeadlineSeconds,
		MEVLargeThreshold:   DefaultMEVLargeThreshold,
		MEVCooldownSlots:    DefaultMEVCooldownSlots,
		CreatedAtUnix:       nowUnix,
		UpdatedAtUnix:       nowUnix,
	}
}

// Validate checks pool configuration bounds. Aggregate totals are covered by
// the keeper invariants, not here.
func (p Pool) Validate() error {
	if strings.TrimSpace(p.Admin) == "" {
		return ErrUnauthorized.Wrap("pool admin cannot be empty")
	}
	if p.ApyBps == 0 || p.ApyBps > MaxApyBps {
		return ErrInvalidApy.Wrapf("apy must be in (0, %d] bps, got %d", MaxApyBps, p.ApyBps)
	}
	if p.DepositFeeBps > MaxDepositFeeBps {
		return ErrInvalidFee.Wrapf("deposit fee must be <= %d bps, got %d", MaxDepositFeeBps, p.DepositFeeBps)
	}
	if p.MinCommitmentDays == 0 {
		return ErrInvalidCommitmentDays.Wrap("min commitment days must be positive")
	}
	if p.MaxCommitmentDays < p.MinCommitmentDays {
		return ErrInvalidCommitmentDays.Wrapf("max commitment days %d below min %d", p.MaxCommitmentDays, p.MinCommitmentDays)
	}
	if p.MaxCommitmentDays > MaxCommitmentDaysBound {
		return ErrInvalidCommitmentDays.Wrapf("max commitment days %d exceeds %d", p.MaxCommitmentDays, MaxCommitmentDaysBound)
	}
	if p.MinStakeAmount == 0 {
		return ErrInvalidAmount.Wrap("min stake amount must be positive")
	}
	if p.MaxStakeAmount < p.MinStakeAmount {
		return ErrInvalidAmount.Wrapf("max stake %d below min stake %d", p.MaxStakeAmount, p.MinStakeAmount)
	}
	if p.MaxDepositPerUser < p.MaxStakeAmount {
		return ErrInvalidAmount.Wrapf("max deposit per user %d below max stake %d", p.MaxDepositPerUser, p.MaxStakeAmount)
	}
	if p.MaxTotalStaked <= p.TotalStaked {
		return ErrInvalidAmount.Wrapf("max total staked %d must exceed current total %d", p.MaxTotalStaked, p.TotalStaked)
	}
	if len(p.MultisigSigners) == 0 || len(p.MultisigSigners) > MaxMultisigSigners {
		return ErrInvalidThreshold.Wrapf("multisig signer count %d out of range [1,%d]", len(p.MultisigSigners), MaxMultisigSigners)
	}
	if p.MultisigThreshold == 0 || p.MultisigThreshold > uint64(len(p.MultisigSigners)) {
		return ErrInvalidThreshold.Wrapf("threshold %d out of range [1,%d]", p.MultisigThreshold, len(p.MultisigSigners))
	}
	return nil
}

// IsSigner reports whether addr is in the multisig signer set.
func (p Pool) IsSigner(addr string) bool {
	for _, s := range p.MultisigSigners {
		if s == addr {
			return true
		}
	}
	return false
}
