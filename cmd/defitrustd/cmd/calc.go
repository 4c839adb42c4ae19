package cmd

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/x/trustfund/types"
)

func newCalcCmd() *cobra.Command {
	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Offline calculators matching the on-chain integer accounting",
	}
	calcCmd.AddCommand(
		newCalcFeeCmd(),
		newCalcYieldCmd(),
		newCalcPenaltyCmd(),
		newCalcScoreCmd(),
	)
	return calcCmd
}

func uint64Arg(args []string, i int, name string) (uint64, error) {
	v, err := cast.ToUint64E(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	return v, nil
}

func newCalcFeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee [amount] [fee-bps]",
		Short: "Split a deposit into net and fee at the given basis points",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := uint64Arg(args, 0, "amount")
			if err != nil {
				return err
			}
			feeBps, err := uint64Arg(args, 1, "fee-bps")
			if err != nil {
				return err
			}
			if err := types.ValidateBps(feeBps); err != nil {
				return err
			}
			net, fee, err := types.NetAfterFee(amount, feeBps)
			if err != nil {
				return err
			}
			cmd.Printf("amount: %d\nfee:    %d\nnet:    %d\n", amount, fee, net)
			return nil
		},
	}
}

func newCalcYieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "yield [amount] [apy-bps] [days]",
		Short: "Compute accrued yield: floor(amount * apy_bps * days / (365 * 10000))",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := uint64Arg(args, 0, "amount")
			if err != nil {
				return err
			}
			apyBps, err := uint64Arg(args, 1, "apy-bps")
			if err != nil {
				return err
			}
			days, err := uint64Arg(args, 2, "days")
			if err != nil {
				return err
			}
			yield, err := types.YieldAmount(amount, apyBps, days)
			if err != nil {
				return err
			}
			cmd.Printf("yield: %d\n", yield)
			return nil
		},
	}
}

func newCalcPenaltyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "penalty [amount]",
		Short: "Compute the 5% early-exit penalty and the resulting payout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := uint64Arg(args, 0, "amount")
			if err != nil {
				return err
			}
			penalty, err := types.EarlyExitPenalty(amount)
			if err != nil {
				return err
			}
			cmd.Printf("penalty: %d\npayout:  %d\n", penalty, amount-penalty)
			return nil
		},
	}
}

func newCalcScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [amount] [days-staked]",
		Short: "Compute the rebalance activity score and loyalty multiplier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := uint64Arg(args, 0, "amount")
			if err != nil {
				return err
			}
			days, err := uint64Arg(args, 1, "days-staked")
			if err != nil {
				return err
			}
			score, err := types.ActivityScore(amount, days)
			if err != nil {
				return err
			}
			loyalty := types.LoyaltyMultiplierHundredths(days)
			cmd.Printf("loyalty: %d.%02dx\nscore:   %d\n", loyalty/100, loyalty%100, score)
			if score < types.InactivityScoreFloor {
				cmd.Printf("status:  inactive (below floor %d)\n", types.InactivityScoreFloor)
			}
			return nil
		},
	}
}
