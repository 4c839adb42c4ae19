package keeper

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
)

// The fund depends on four external programs, modeled as narrow capability
// interfaces. Any non-nil error from a collaborator aborts the whole
// operation; the host's atomic commit reverts local writes.

// TokenKeeper is the external token program: custody transfers plus the
// soulbound badge mint/burn lifecycle.
type TokenKeeper interface {
	Mint(ctx context.Context, denom, destination string, amount uint64) error
	Burn(ctx context.Context, denom, source string, amount uint64) error
	Transfer(ctx context.Context, denom, source, destination string, amount uint64) error
	Balance(ctx context.Context, denom, account string) (uint64, error)
}

// PriceOracle exposes a published price feed. Callers must reject prices
// whose publish time is older than the pool staleness threshold.
type PriceOracle interface {
	GetPrice(ctx context.Context, feedID string) (price uint64, publishTime time.Time, err error)
}

// SwapRouter quotes and executes swaps through an external routing program.
type SwapRouter interface {
	Quote(ctx context.Context, inputDenom, outputDenom string, amount, maxSlippageBps uint64) (outputAmount uint64, route string, err error)
	Swap(ctx context.Context, route string, amount uint64) (outputAmount uint64, err error)
}

// LeverageVault is the external lending/leverage program the fund deploys
// idle custody into.
type LeverageVault interface {
	DepositToVault(ctx context.Context, asset string, amount, leverage uint64) (position string, err error)
	ReducePosition(ctx context.Context, amount uint64, destination string) (paidAmount uint64, err error)
	GetVaultValue(ctx context.Context) (sdkmath.Int, error)
}
