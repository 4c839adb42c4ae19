package types

const (
	// ModuleName defines the module name
	ModuleName = "trustfund"

	// VaultModuleName is the dedicated module account holding staked custody.
	VaultModuleName = "trustfund_vault"

	// FeeModuleName is the dedicated module account accumulating deposit fees.
	FeeModuleName = "trustfund_fees"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

var (
	// PoolKey is the key for the singleton pool record.
	PoolKey = []byte{0x01}

	// UserStakeKeyPrefix is the prefix for per-user stake records.
	UserStakeKeyPrefix = []byte{0x02}

	// TempScoresKey is the key for the ephemeral rebalance score buffer.
	TempScoresKey = []byte{0x03}

	// VaultPositionKey tracks the external leverage-vault position handle.
	VaultPositionKey = []byte{0x04}
)

// UserStakeKey returns the store key for a user's stake record.
func UserStakeKey(owner string) []byte {
	return append(UserStakeKeyPrefix, []byte(owner)...)
}
