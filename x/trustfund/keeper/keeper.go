package keeper

import (
	"context"
	"encoding/json"
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

// Denoms used by the module: the staking denom held in custody and the
// non-transferable badge denoms minted per tier.
const (
	StakeDenom = "utrust"

	StakeBadgeDenom  = "trustfund/badge/stake"
	BronzeBadgeDenom = "trustfund/badge/bronze"
	SilverBadgeDenom = "trustfund/badge/silver"
	GoldBadgeDenom   = "trustfund/badge/gold"
)

// Keeper manages the trustfund module state: the singleton pool, per-user
// stake records, and the ephemeral rebalance score buffer.
type Keeper struct {
	cdc          codec.Codec
	storeService store.KVStoreService
	authority    string

	// External programs (capability interfaces). Nil collaborators are
	// tolerated in isolated unit tests: custody and oracle checks are
	// skipped when the corresponding interface is not wired.
	tokenKeeper TokenKeeper
	priceOracle PriceOracle
	swapRouter  SwapRouter
	vault       LeverageVault

	metrics *ModuleMetrics

	Pool          collections.Item[string]
	Stakes        collections.Map[string, string]
	Scores        collections.Item[string]
	VaultPosition collections.Item[string]
}

// NewKeeper creates a new trustfund keeper.
func NewKeeper(
	cdc codec.Codec,
	storeService store.KVStoreService,
	authority string,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	return Keeper{
		cdc:          cdc,
		storeService: storeService,
		authority:    authority,
		metrics:      NewModuleMetrics(),
		Pool: collections.NewItem(
			sb,
			collections.NewPrefix(types.PoolKey),
			"pool",
			collections.StringValue,
		),
		Stakes: collections.NewMap(
			sb,
			collections.NewPrefix(types.UserStakeKeyPrefix),
			"stakes",
			collections.StringKey,
			collections.StringValue,
		),
		Scores: collections.NewItem(
			sb,
			collections.NewPrefix(types.TempScoresKey),
			"temp_scores",
			collections.StringValue,
		),
		VaultPosition: collections.NewItem(
			sb,
			collections.NewPrefix(types.VaultPositionKey),
			"vault_position",
			collections.StringValue,
		),
	}
}

// SetTokenKeeper wires the external token program.
func (k *Keeper) SetTokenKeeper(tk TokenKeeper) { k.tokenKeeper = tk }

// SetPriceOracle wires the external price feed.
func (k *Keeper) SetPriceOracle(po PriceOracle) { k.priceOracle = po }

// SetSwapRouter wires the external swap router.
func (k *Keeper) SetSwapRouter(sr SwapRouter) { k.swapRouter = sr }

// SetLeverageVault wires the external leverage vault.
func (k *Keeper) SetLeverageVault(lv LeverageVault) { k.vault = lv }

// GetAuthority returns the keeper authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Metrics returns the in-process module metrics (may be nil in tests).
func (k Keeper) Metrics() *ModuleMetrics {
	return k.metrics
}

// GetPool loads the singleton pool record.
func (k Keeper) GetPool(ctx context.Context) (*types.Pool, error) {
	raw, err := k.Pool.Get(ctx)
	if err != nil {
		return nil, types.ErrPoolNotFound
	}
	var pool types.Pool
	if err := json.Unmarshal([]byte(raw), &pool); err != nil {
		return nil, types.ErrPoolNotFound.Wrapf("decode pool: %v", err)
	}
	return &pool, nil
}

func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	raw, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	return k.Pool.Set(ctx, string(raw))
}

// HasPool reports whether the pool has been initialized.
func (k Keeper) HasPool(ctx context.Context) bool {
	has, _ := k.Pool.Has(ctx)
	return has
}

// GetStake loads a user's stake record.
func (k Keeper) GetStake(ctx context.Context, owner string) (*types.UserStake, error) {
	raw, err := k.Stakes.Get(ctx, owner)
	if err != nil {
		return nil, types.ErrNoStake.Wrapf("no record for %s", owner)
	}
	var stake types.UserStake
	if err := json.Unmarshal([]byte(raw), &stake); err != nil {
		return nil, types.ErrNoStake.Wrapf("decode stake for %s: %v", owner, err)
	}
	return &stake, nil
}

func (k Keeper) setStake(ctx context.Context, stake types.UserStake) error {
	raw, err := json.Marshal(stake)
	if err != nil {
		return err
	}
	return k.Stakes.Set(ctx, stake.Owner, string(raw))
}

// WalkStakes iterates all stake records in key order. The callback returns
// true to stop early.
func (k Keeper) WalkStakes(ctx context.Context, fn func(stake types.UserStake) (stop bool, err error)) error {
	return k.Stakes.Walk(ctx, nil, func(_ string, raw string) (bool, error) {
		var stake types.UserStake
		if err := json.Unmarshal([]byte(raw), &stake); err != nil {
			return false, err
		}
		return fn(stake)
	})
}

func (k Keeper) getScores(ctx context.Context) (*types.TempScores, error) {
	raw, err := k.Scores.Get(ctx)
	if err != nil {
		return nil, types.ErrNoRebalanceCycle
	}
	var scores types.TempScores
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return nil, types.ErrNoRebalanceCycle.Wrapf("decode scores: %v", err)
	}
	return &scores, nil
}

func (k Keeper) setScores(ctx context.Context, scores types.TempScores) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return k.Scores.Set(ctx, string(raw))
}

func unwrapSDKContext(ctx context.Context) (sdk.Context, bool) {
	if ctx == nil {
		return sdk.Context{}, false
	}
	if sdkCtx, ok := ctx.(sdk.Context); ok {
		return sdkCtx, true
	}
	if val := ctx.Value(sdk.SdkContextKey); val != nil {
		if sdkCtx, ok := val.(sdk.Context); ok {
			return sdkCtx, true
		}
	}
	return sdk.Context{}, false
}

// contextNow resolves deterministic block time. Consensus paths must never
// read the wall clock, so a context without an sdk.Context is a wiring bug.
func contextNow(ctx context.Context) (sdk.Context, time.Time) {
	sdkCtx, ok := unwrapSDKContext(ctx)
	if !ok {
		panic("trustfund: context does not carry an sdk.Context")
	}
	return sdkCtx, sdkCtx.BlockTime()
}

func emitEventIfPossible(ctx sdk.Context, event sdk.Event) {
	if em := ctx.EventManager(); em != nil {
		em.EmitEvent(event)
	}
}
