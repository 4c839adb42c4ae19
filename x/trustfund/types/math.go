package types

import (
	sdkmath "cosmossdk.io/math"
)

// All money-bearing arithmetic goes through the checked helpers below. The
// money path is integer-only: basis points are integers in [0,10000], division
// truncates toward zero, and truncation remainders are retained by the pool.
const (
	// BpsDenominator is the basis-point scale: 10000 bps = 100%.
	BpsDenominator uint64 = 10_000

	// DaysPerYear is the accrual year used by the yield formula.
	DaysPerYear uint64 = 365

	// SecondsPerDay converts timestamps to whole staked days.
	SecondsPerDay int64 = 86_400

	// EarlyExitPenaltyBps is the penalty applied to unstakes that leave
	// before the committed period has elapsed (5%).
	EarlyExitPenaltyBps uint64 = 500

	// MaxApyBps caps pool APY at 50%.
	MaxApyBps uint64 = 5_000

	// MaxDepositFeeBps caps the deposit fee at 10%.
	MaxDepositFeeBps uint64 = 1_000
)

// CheckedAdd returns a+b or ErrArithmeticOverflow on wraparound.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// CheckedSub returns a-b or ErrArithmeticOverflow on underflow.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrArithmeticOverflow
	}
	return a - b, nil
}

// CheckedMul returns a*b or ErrArithmeticOverflow on wraparound.
func CheckedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrArithmeticOverflow
	}
	return product, nil
}

// CheckedDiv returns a/b, truncating toward zero. Division by zero is an
// arithmetic error rather than a panic.
func CheckedDiv(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrArithmeticOverflow
	}
	return a / b, nil
}

// ValidateBps checks that a basis-point value is within [0,10000].
func ValidateBps(bps uint64) error {
	if bps > BpsDenominator {
		return ErrInvalidFee.Wrapf("basis points %d exceed %d", bps, BpsDenominator)
	}
	return nil
}

// FeeBps computes floor(amount * feeBps / 10000).
func FeeBps(amount, feeBps uint64) (uint64, error) {
	product, err := CheckedMul(amount, feeBps)
	if err != nil {
		return 0, err
	}
	return product / BpsDenominator, nil
}

// NetAfterFee splits amount into (net, fee) under the deposit fee. The
// identity net+fee == amount always holds.
func NetAfterFee(amount, feeBps uint64) (net, fee uint64, err error) {
	fee, err = FeeBps(amount, feeBps)
	if err != nil {
		return 0, 0, err
	}
	net, err = CheckedSub(amount, fee)
	if err != nil {
		return 0, 0, err
	}
	return net, fee, nil
}

// YieldAmount computes floor(amount * apyBps * days / (365 * 10000)).
//
// The intermediate product can exceed 64 bits for large stakes, so the
// computation runs through sdkmath.Int and fails with ErrArithmeticOverflow
// only if the final quotient does not fit back into uint64.
func YieldAmount(amount, apyBps, days uint64) (uint64, error) {
	if amount == 0 || apyBps == 0 || days == 0 {
		return 0, nil
	}
	result := sdkmath.NewIntFromUint64(amount).
		Mul(sdkmath.NewIntFromUint64(apyBps)).
		Mul(sdkmath.NewIntFromUint64(days)).
		Quo(sdkmath.NewIntFromUint64(DaysPerYear * BpsDenominator))
	if !result.IsUint64() {
		return 0, ErrArithmeticOverflow
	}
	return result.Uint64(), nil
}

// EarlyExitPenalty computes floor(amount * 500 / 10000), the 5% early-exit
// penalty withheld by the pool.
func EarlyExitPenalty(amount uint64) (uint64, error) {
	return FeeBps(amount, EarlyExitPenaltyBps)
}

// DaysBetween returns the number of whole days between two unix timestamps,
// truncating toward zero. Returns 0 when later precedes earlier.
func DaysBetween(earlier, later int64) uint64 {
	if later <= earlier {
		return 0
	}
	return uint64((later - earlier) / SecondsPerDay)
}
