package types

// GenesisState is the exported module state.
type GenesisState struct {
	Pool   *Pool       `json:"pool,omitempty"`
	Stakes []UserStake `json:"stakes,omitempty"`
	Scores *TempScores `json:"scores,omitempty"`
}

// DefaultGenesis returns an empty genesis: the pool is created at runtime by
// MsgInitializePool.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate performs structural genesis validation, including the aggregate
// invariants the keeper maintains at runtime.
func (gs GenesisState) Validate() error {
	if gs.Pool == nil {
		if len(gs.Stakes) > 0 {
			return ErrPoolNotFound.Wrap("stakes present without a pool")
		}
		return nil
	}
	if err := gs.Pool.Validate(); err != nil {
		return err
	}

	var totalStaked, totalUsers uint64
	seen := make(map[string]struct{}, len(gs.Stakes))
	for _, s := range gs.Stakes {
		if s.Owner == "" {
			return ErrNoStake.Wrap("stake record without owner")
		}
		if _, dup := seen[s.Owner]; dup {
			return ErrNoStake.Wrapf("duplicate stake record for %s", s.Owner)
		}
		seen[s.Owner] = struct{}{}

		if s.IsEmpty() {
			continue
		}
		var err error
		totalStaked, err = CheckedAdd(totalStaked, s.Amount)
		if err != nil {
			return err
		}
		totalUsers++
	}

	if totalStaked != gs.Pool.TotalStaked {
		return ErrInvalidAmount.Wrapf("pool total_staked %d does not match stake sum %d", gs.Pool.TotalStaked, totalStaked)
	}
	if totalUsers != gs.Pool.TotalUsers {
		return ErrInvalidAmount.Wrapf("pool total_users %d does not match active stake count %d", gs.Pool.TotalUsers, totalUsers)
	}

	if gs.Scores != nil && len(gs.Scores.Entries) > MaxScoreEntries {
		return ErrScoreBufferFull.Wrapf("score buffer %d exceeds %d", len(gs.Scores.Entries), MaxScoreEntries)
	}
	return nil
}
