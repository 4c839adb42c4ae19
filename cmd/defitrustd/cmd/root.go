package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for defitrustd.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "defitrustd",
		Short: "DeFi Trust Fund - operational tooling",
		Long: `defitrustd bundles operational tooling for the trust fund module:
genesis inspection and validation, and offline calculators for the
integer accounting the module enforces on-chain (deposit fees, yield
accrual, early-exit penalties, tier scores).`,
	}

	rootCmd.AddCommand(
		newGenesisCmd(),
		newCalcCmd(),
	)

	return rootCmd
}
