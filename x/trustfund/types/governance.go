package types

import (
	"strings"
)

// ActionType enumerates the privileged parameter changes executable through
// the multisig timelock flow.
type ActionType string

const (
	ActionUpdateApy       ActionType = "update_apy"
	ActionUpdateFee       ActionType = "update_fee"
	ActionPause           ActionType = "pause"
	ActionUnpause         ActionType = "unpause"
	ActionWithdrawFees    ActionType = "withdraw_fees"
	ActionUpdateLimits    ActionType = "update_limits"
)

// ValidActionType reports whether t is a known action type.
func ValidActionType(t ActionType) bool {
	switch t {
	case ActionUpdateApy, ActionUpdateFee, ActionPause, ActionUnpause,
		ActionWithdrawFees, ActionUpdateLimits:
		return true
	}
	return false
}

// PendingAction is the single in-flight timelocked admin action. It is
// created by propose, grows an append-only unique signer set through sign,
// and is consumed by execute.
type PendingAction struct {
	Action     ActionType `json:"action"`
	Proposer   string     `json:"proposer"`
	Signatures []string   `json:"signatures"`

	ProposedAtUnix   int64 `json:"proposed_at_unix"`
	ExecutableAtUnix int64 `json:"executable_at_unix"`

	// NewValue carries the primary numeric payload (APY bps, fee bps,
	// withdraw amount, or new min stake for limit updates).
	NewValue uint64 `json:"new_value,omitempty"`

	// AuxValue carries the secondary payload for limit updates (new max
	// stake).
	AuxValue uint64 `json:"aux_value,omitempty"`

	// Reason accompanies pause/unpause actions.
	Reason string `json:"reason,omitempty"`
}

// HasSigned reports whether addr already signed this action.
func (a PendingAction) HasSigned(addr string) bool {
	for _, s := range a.Signatures {
		if s == addr {
			return true
		}
	}
	return false
}

// Validate checks the structural integrity of a pending action.
func (a PendingAction) Validate() error {
	if !ValidActionType(a.Action) {
		return ErrNoPendingAction.Wrapf("unknown action type %q", a.Action)
	}
	if strings.TrimSpace(a.Proposer) == "" {
		return ErrUnauthorized.Wrap("proposer cannot be empty")
	}
	if len(a.Signatures) == 0 {
		return ErrInsufficientSignatures.Wrap("pending action must carry the proposer signature")
	}
	if a.ExecutableAtUnix <= a.ProposedAtUnix {
		return ErrTimelockNotExpired.Wrap("executable_at must follow proposed_at")
	}
	return nil
}
