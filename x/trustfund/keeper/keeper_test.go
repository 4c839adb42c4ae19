package keeper_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	storemetrics "cosmossdk.io/store/metrics"
	"cosmossdk.io/store/rootmulti"
	storetypes "cosmossdk.io/store/types"
	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/keeper"
	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

const (
	testAdmin  = "trust1admin"
	testStaker = "trust1alice"
	genesisAt  = int64(1_770_000_000)
)

// mockTokenKeeper records custody moves and tracks balances per
// (denom, account). A configured reenter hook runs on every transfer, which
// the reentrancy tests use to call back into the keeper mid-operation.
type mockTokenKeeper struct {
	balances  map[string]uint64
	transfers []string
	reenter   func(ctx context.Context) error
}

func newMockTokenKeeper() *mockTokenKeeper {
	return &mockTokenKeeper{balances: make(map[string]uint64)}
}

func (m *mockTokenKeeper) key(denom, account string) string { return denom + "/" + account }

func (m *mockTokenKeeper) fund(denom, account string, amount uint64) {
	m.balances[m.key(denom, account)] += amount
}

func (m *mockTokenKeeper) Mint(_ context.Context, denom, destination string, amount uint64) error {
	m.balances[m.key(denom, destination)] += amount
	return nil
}

func (m *mockTokenKeeper) Burn(_ context.Context, denom, source string, amount uint64) error {
	key := m.key(denom, source)
	if m.balances[key] < amount {
		return fmt.Errorf("burn exceeds balance of %s", key)
	}
	m.balances[key] -= amount
	return nil
}

func (m *mockTokenKeeper) Transfer(ctx context.Context, denom, source, destination string, amount uint64) error {
	if m.reenter != nil {
		if err := m.reenter(ctx); err != nil {
			return err
		}
	}
	srcKey := m.key(denom, source)
	if m.balances[srcKey] < amount {
		return fmt.Errorf("transfer exceeds balance of %s", srcKey)
	}
	m.balances[srcKey] -= amount
	m.balances[m.key(denom, destination)] += amount
	m.transfers = append(m.transfers, fmt.Sprintf("%s:%s->%s:%d", denom, source, destination, amount))
	return nil
}

func (m *mockTokenKeeper) Balance(_ context.Context, denom, account string) (uint64, error) {
	return m.balances[m.key(denom, account)], nil
}

type mockPriceOracle struct {
	price       uint64
	publishTime time.Time
	err         error
}

func (m mockPriceOracle) GetPrice(_ context.Context, _ string) (uint64, time.Time, error) {
	return m.price, m.publishTime, m.err
}

type mockSwapRouter struct {
	quoted   uint64
	received uint64
	err      error
}

func (m mockSwapRouter) Quote(_ context.Context, _, _ string, _, _ uint64) (uint64, string, error) {
	return m.quoted, "route-1", m.err
}

func (m mockSwapRouter) Swap(_ context.Context, _ string, _ uint64) (uint64, error) {
	return m.received, m.err
}

type mockLeverageVault struct {
	paid  uint64
	value sdkmath.Int
	err   error
}

func (m mockLeverageVault) DepositToVault(_ context.Context, _ string, _, _ uint64) (string, error) {
	return "position-1", m.err
}

func (m mockLeverageVault) ReducePosition(_ context.Context, amount uint64, _ string) (uint64, error) {
	if m.paid > 0 {
		return m.paid, m.err
	}
	return amount, m.err
}

func (m mockLeverageVault) GetVaultValue(_ context.Context) (sdkmath.Int, error) {
	return m.value, m.err
}

func setupKeeper(t *testing.T) (keeper.Keeper, sdk.Context) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	cms := rootmulti.NewStore(db, log.NewNopLogger(), storemetrics.NoOpMetrics{})
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	require.NoError(t, cms.LoadLatestVersion())

	header := tmproto.Header{
		ChainID: "trustfund-test-1",
		Height:  1,
		Time:    time.Unix(genesisAt, 0).UTC(),
	}
	ctx := sdk.NewContext(cms, header, false, log.NewNopLogger())

	reg := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(reg)
	cdc := codec.NewProtoCodec(reg)

	k := keeper.NewKeeper(
		cdc,
		runtime.NewKVStoreService(storeKey),
		"trust1gov",
	)

	return k, ctx
}

// initPool creates a pool with apy 1200 bps and commitment bounds [1, 365].
func initPool(t *testing.T, k keeper.Keeper, ctx sdk.Context) {
	t.Helper()
	require.NoError(t, k.InitializePool(ctx, types.MsgInitializePool{
		Admin:             testAdmin,
		ApyBps:            1200,
		MinCommitmentDays: 1,
		MaxCommitmentDays: 365,
	}))
}

// advance moves block time forward and bumps the height.
func advance(ctx sdk.Context, d time.Duration) sdk.Context {
	return ctx.
		WithBlockTime(ctx.BlockTime().Add(d)).
		WithBlockHeight(ctx.BlockHeight() + 1)
}

func fundedStaker(t *testing.T, k *keeper.Keeper, ctx sdk.Context, amount uint64) *mockTokenKeeper {
	t.Helper()
	tk := newMockTokenKeeper()
	tk.fund(keeper.StakeDenom, testStaker, amount)
	k.SetTokenKeeper(tk)
	return tk
}
