package types

// Rate limiting constants: a sliding window per operation class with a hard
// minimum cooldown between consecutive attempts of the same class.
const (
	RateLimitWindowSeconds int64  = 3600
	RateLimitCooldownSecs  int64  = 300
	MaxStakeAttempts       uint64 = 5
	MaxClaimAttempts       uint64 = 10

	// ReferralValiditySeconds is how long a recorded referral stays
	// eligible for rewards (365 days).
	ReferralValiditySeconds int64 = 365 * 24 * 3600
)

// Tier levels assigned by the rebalance engine.
const (
	TierNone   uint32 = 0
	TierBronze uint32 = 1
	TierSilver uint32 = 2
	TierGold   uint32 = 3
)

// RateWindow tracks attempts of one operation class inside the sliding
// rate-limit window.
type RateWindow struct {
	WindowStartUnix int64  `json:"window_start_unix,omitempty"`
	Attempts        uint64 `json:"attempts,omitempty"`
	LastAttemptUnix int64  `json:"last_attempt_unix,omitempty"`
}

// UserStake is the per-(user, fund) stake record. An amount of zero means the
// fully-unstaked state: all derived counters must also be zero.
type UserStake struct {
	Owner         string `json:"owner"`
	Amount        uint64 `json:"amount"`
	CommittedDays uint64 `json:"committed_days"`

	StakeTimestamp     int64 `json:"stake_timestamp"`
	LastClaimTimestamp int64 `json:"last_claim_timestamp"`

	TotalClaimed   uint64 `json:"total_claimed"`
	LifetimeStaked uint64 `json:"lifetime_staked"`

	Tier uint32 `json:"tier"`

	Referrer            string `json:"referrer,omitempty"`
	ReferralExpiresUnix int64  `json:"referral_expires_unix,omitempty"`

	// AutoReinvestPct in [0,100]: share of each claimed yield compounded
	// back into the principal instead of paid out.
	AutoReinvestPct uint64 `json:"auto_reinvest_pct"`

	StakeWindow RateWindow `json:"stake_window"`
	ClaimWindow RateWindow `json:"claim_window"`
}

// Reset zeroes the record back to the fully-unstaked state. Rate-limit
// windows survive the reset so unstake/restake churn cannot launder limits.
func (s *UserStake) Reset() {
	s.Amount = 0
	s.CommittedDays = 0
	s.StakeTimestamp = 0
	s.LastClaimTimestamp = 0
	s.TotalClaimed = 0
	s.Tier = TierNone
	s.Referrer = ""
	s.ReferralExpiresUnix = 0
	s.AutoReinvestPct = 0
}

// IsEmpty reports whether the record is in the fully-unstaked state.
func (s UserStake) IsEmpty() bool {
	return s.Amount == 0
}
