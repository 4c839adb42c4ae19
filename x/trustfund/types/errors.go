package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error taxonomy. Codes are wire-stable: append only, never renumber.
var (
	// Validation errors
	ErrInvalidApy            = errorsmod.Register(ModuleName, 2, "invalid APY")
	ErrInvalidCommitmentDays = errorsmod.Register(ModuleName, 3, "invalid commitment days")
	ErrInvalidAmount         = errorsmod.Register(ModuleName, 4, "invalid amount")
	ErrInvalidFee            = errorsmod.Register(ModuleName, 5, "invalid fee")
	ErrInvalidReason         = errorsmod.Register(ModuleName, 6, "invalid reason")
	ErrAmountTooSmall        = errorsmod.Register(ModuleName, 7, "amount below minimum stake")
	ErrAmountTooLarge        = errorsmod.Register(ModuleName, 8, "amount above maximum stake")

	// Authorization errors
	ErrUnauthorized           = errorsmod.Register(ModuleName, 9, "unauthorized")
	ErrUnknownSigner          = errorsmod.Register(ModuleName, 10, "signer not in multisig set")
	ErrInsufficientSignatures = errorsmod.Register(ModuleName, 11, "insufficient signatures")

	// State errors
	ErrPoolExists         = errorsmod.Register(ModuleName, 12, "pool already initialized")
	ErrPoolNotFound       = errorsmod.Register(ModuleName, 13, "pool not initialized")
	ErrPoolPaused         = errorsmod.Register(ModuleName, 14, "pool is paused")
	ErrPoolNotActive      = errorsmod.Register(ModuleName, 15, "pool is not active")
	ErrNoStake            = errorsmod.Register(ModuleName, 16, "no stake found")
	ErrNoYieldToClaim     = errorsmod.Register(ModuleName, 17, "no yield to claim")
	ErrCommitmentNotMet   = errorsmod.Register(ModuleName, 18, "commitment period not met")
	ErrPendingActionExists = errorsmod.Register(ModuleName, 19, "a pending admin action already exists")
	ErrNoPendingAction    = errorsmod.Register(ModuleName, 20, "no pending admin action")
	ErrAlreadySigned      = errorsmod.Register(ModuleName, 21, "signer already signed pending action")
	ErrTimelockNotExpired = errorsmod.Register(ModuleName, 22, "timelock has not expired")
	ErrTooManySigners     = errorsmod.Register(ModuleName, 23, "multisig signer limit reached")
	ErrInvalidThreshold   = errorsmod.Register(ModuleName, 24, "invalid multisig threshold")
	ErrDepositCapExceeded = errorsmod.Register(ModuleName, 25, "per-user deposit cap exceeded")
	ErrPoolCapExceeded    = errorsmod.Register(ModuleName, 26, "pool total stake cap exceeded")
	ErrRebalanceTooSoon   = errorsmod.Register(ModuleName, 27, "rebalance period has not elapsed")
	ErrBatchTooLarge      = errorsmod.Register(ModuleName, 28, "rebalance batch exceeds limit")
	ErrScoreBufferFull    = errorsmod.Register(ModuleName, 29, "rebalance score buffer is full")
	ErrNoRebalanceCycle   = errorsmod.Register(ModuleName, 30, "no rebalance cycle in progress")

	// Arithmetic errors
	ErrArithmeticOverflow = errorsmod.Register(ModuleName, 31, "arithmetic overflow")

	// Protective-guard errors
	ErrReentrancyDetected  = errorsmod.Register(ModuleName, 32, "reentrancy detected")
	ErrRateLimitExceeded   = errorsmod.Register(ModuleName, 33, "rate limit exceeded")
	ErrSlippageExceeded    = errorsmod.Register(ModuleName, 34, "slippage tolerance exceeded")
	ErrTransactionExpired  = errorsmod.Register(ModuleName, 35, "transaction deadline expired")
	ErrMEVProtectionActive = errorsmod.Register(ModuleName, 36, "MEV protection cooldown active")

	// External-dependency errors
	ErrStaleOraclePrice  = errorsmod.Register(ModuleName, 37, "oracle price is stale")
	ErrInvalidOracle     = errorsmod.Register(ModuleName, 38, "invalid oracle feed")
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 39, "insufficient funds")
	ErrExternalCall      = errorsmod.Register(ModuleName, 40, "external program call failed")
)
