package types

// VaultPosition tracks custody deployed into the external leverage vault.
// A zero DeployedAmount means no open position.
type VaultPosition struct {
	Asset          string `json:"asset,omitempty"`
	PositionID     string `json:"position_id,omitempty"`
	DeployedAmount uint64 `json:"deployed_amount"`
	Leverage       uint64 `json:"leverage,omitempty"`
	DeployedAtUnix int64  `json:"deployed_at_unix,omitempty"`
	UpdatedAtUnix  int64  `json:"updated_at_unix,omitempty"`
}
