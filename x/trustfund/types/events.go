package types

// Event types emitted by the trustfund module.
const (
	EventTypePoolInitialized  = "pool_initialized"
	EventTypeStake            = "stake"
	EventTypeUnstake          = "unstake"
	EventTypeClaim            = "claim_yields"
	EventTypeEmergencyPause   = "emergency_pause"
	EventTypeEmergencyUnpause = "emergency_unpause"
	EventTypeParameterUpdate  = "parameter_update"
	EventTypeFeesWithdrawn    = "fees_withdrawn"
	EventTypeTierRebalance    = "tier_rebalance"
	EventTypeInactivityBurn   = "inactivity_burn"
	EventTypeReferral         = "referral"
	EventTypeActionProposed   = "admin_action_proposed"
	EventTypeActionSigned     = "admin_action_signed"
	EventTypeActionExecuted   = "admin_action_executed"
	EventTypeSignerAdded      = "multisig_signer_added"
	EventTypeThresholdUpdated = "multisig_threshold_updated"
	EventTypeVaultDeploy      = "vault_deploy"
	EventTypeVaultRecall      = "vault_recall"
)

// Event attribute keys.
const (
	AttrKeyAdmin         = "admin"
	AttrKeyUser          = "user"
	AttrKeyAmount        = "amount"
	AttrKeyFee           = "fee"
	AttrKeyPenalty       = "penalty"
	AttrKeyYield         = "yield"
	AttrKeyReinvested    = "reinvested"
	AttrKeyCommittedDays = "committed_days"
	AttrKeyReason        = "reason"
	AttrKeyParameter     = "parameter"
	AttrKeyOldValue      = "old_value"
	AttrKeyNewValue      = "new_value"
	AttrKeyTier          = "tier"
	AttrKeyScore         = "score"
	AttrKeyRank          = "rank"
	AttrKeyReferrer      = "referrer"
	AttrKeyAction        = "action"
	AttrKeyProposer      = "proposer"
	AttrKeySigner        = "signer"
	AttrKeySignatures    = "signatures"
	AttrKeyThreshold     = "threshold"
	AttrKeyExecutableAt  = "executable_at"
	AttrKeyPosition      = "position"
	AttrKeyVaultValue    = "vault_value"
	AttrKeyTimestamp     = "timestamp"
)
