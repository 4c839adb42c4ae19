package types

// Rebalance engine constants.
const (
	// MaxScoreEntries bounds the per-cycle score buffer.
	MaxScoreEntries = 100

	// MaxRebalanceBatch bounds users processed per batch call.
	MaxRebalanceBatch = 25

	// InactivityScoreFloor: users scoring below this are treated as
	// inactive and burned out of the fund.
	InactivityScoreFloor uint64 = 6

	// Tier rank cutoffs: rank < GoldRankCutoff gets gold, rank <
	// SilverRankCutoff gets silver, the rest bronze.
	GoldRankCutoff   = 10
	SilverRankCutoff = 30

	// Loyalty multiplier, in hundredths: 1.0 base, +0.2 per staked year,
	// capped at 2.0.
	LoyaltyBaseHundredths    uint64 = 100
	LoyaltyPerYearHundredths uint64 = 20
	LoyaltyCapHundredths     uint64 = 200
)

// TempScore is one buffered (user, score) pair for the current cycle.
type TempScore struct {
	Owner string `json:"owner"`
	Score uint64 `json:"score"`
}

// TempScores is the ephemeral per-cycle score buffer. Entries preserve
// insertion order; ranking ties are broken by that order.
type TempScores struct {
	CycleStartUnix int64       `json:"cycle_start_unix"`
	Entries        []TempScore `json:"entries,omitempty"`
}

// LoyaltyMultiplierHundredths returns min(100 + 20*yearsStaked, 200).
func LoyaltyMultiplierHundredths(daysStaked uint64) uint64 {
	years := daysStaked / DaysPerYear
	mult := LoyaltyBaseHundredths + LoyaltyPerYearHundredths*years
	if mult > LoyaltyCapHundredths {
		return LoyaltyCapHundredths
	}
	return mult
}

// ActivityScore computes floor((5*amount + 5*daysStaked) * loyalty) in
// checked arithmetic.
func ActivityScore(amount, daysStaked uint64) (uint64, error) {
	weightedAmount, err := CheckedMul(5, amount)
	if err != nil {
		return 0, err
	}
	weightedDays, err := CheckedMul(5, daysStaked)
	if err != nil {
		return 0, err
	}
	base, err := CheckedAdd(weightedAmount, weightedDays)
	if err != nil {
		return 0, err
	}
	scaled, err := CheckedMul(base, LoyaltyMultiplierHundredths(daysStaked))
	if err != nil {
		return 0, err
	}
	return scaled / 100, nil
}

// TierForRank maps a descending-score rank to a tier level.
func TierForRank(rank int) uint32 {
	switch {
	case rank < GoldRankCutoff:
		return TierGold
	case rank < SilverRankCutoff:
		return TierSilver
	default:
		return TierBronze
	}
}
