package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"donationledger/internal/contract"
	"donationledger/internal/domain"
	"donationledger/internal/host"
)

var (
	initOwner        string
	initFeeCollector string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Store the owner and fee collector",
	Long:  `Stores the owner and the fee collector of the contract. Runs only once per ledger.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := domain.ParseAddress(initOwner)
		if err != nil {
			return fmt.Errorf("--owner: %w", err)
		}
		feeCollector, err := domain.ParseAddress(initFeeCollector)
		if err != nil {
			return fmt.Errorf("--fee-collector: %w", err)
		}
		return withHost(cmd, func(ctx context.Context, h *host.Host) error {
			resp, err := h.Instantiate(ctx, owner, contract.InstantiateMsg{Owner: owner, FeeCollector: feeCollector})
			if err != nil {
				return err
			}
			for _, a := range resp.Attributes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.Key, a.Value)
			}
			return nil
		})
	},
}

var totalsCmd = &cobra.Command{
	Use:   "totals <project>",
	Short: "Show the raw and net totals donated to a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := domain.ParseAddress(args[0])
		if err != nil {
			return err
		}
		return withHost(cmd, func(ctx context.Context, h *host.Host) error {
			total, err := h.DonationsSentToProject(ctx, project)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "project: %s\n", project)
			fmt.Fprintf(out, "raw:     %s\n", formatBag(total.RawAmount))
			fmt.Fprintf(out, "net:     %s\n", formatBag(total.NetAmount))
			return nil
		})
	},
}

var donationsCmd = &cobra.Command{
	Use:   "donations <project>",
	Short: "List the donations made to a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := domain.ParseAddress(args[0])
		if err != nil {
			return err
		}
		return withHost(cmd, func(ctx context.Context, h *host.Host) error {
			donations, err := h.Donations(ctx, project)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(donations) == 0 {
				fmt.Fprintln(out, "no donations")
				return nil
			}
			for i, d := range donations {
				fmt.Fprintf(out, "%d. %s raw=%s net=%s fee=%s\n", i+1, d.Donor,
					formatBag(d.RawAmount), formatBag(d.NetAmount()), formatBag(d.FeeAmount()))
			}
			return nil
		})
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show the funds held by an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := domain.ParseAddress(args[0])
		if err != nil {
			return err
		}
		return withHost(cmd, func(ctx context.Context, h *host.Host) error {
			balance, err := h.Balance(ctx, addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", addr, formatBag(balance))
			return nil
		})
	},
}

func init() {
	initCmd.Flags().StringVar(&initOwner, "owner", "", "address allowed to withdraw")
	initCmd.Flags().StringVar(&initFeeCollector, "fee-collector", "", "address receiving donation fees")
	_ = initCmd.MarkFlagRequired("owner")
	_ = initCmd.MarkFlagRequired("fee-collector")
}

// formatBag renders amounts with thousands separators, e.g. "10,000 uatom, 5 x".
func formatBag(bag domain.CoinBag) string {
	if bag.IsZero() {
		return "-"
	}
	coins := bag.Coins()
	parts := make([]string, len(coins))
	for i, c := range coins {
		parts[i] = humanize.BigComma(c.Amount.ToBig()) + " " + c.Denom
	}
	return strings.Join(parts, ", ")
}
