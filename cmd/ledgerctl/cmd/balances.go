package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/service"
)

func (a *app) balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <group>",
		Short: "Show what each member paid, owes and nets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.resolveGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			report := service.Balances(g)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "MEMBER\tPAID\tOWED\tBALANCE\t")
			for _, b := range report.Balances {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", b.Name,
					money.Format(b.TotalPaid, g.Currency),
					money.Format(b.TotalOwed, g.Currency),
					money.Format(b.Balance, g.Currency),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(report.Budgets) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				for _, s := range report.Budgets {
					flag := ""
					if s.OverBudget {
						flag = "  OVER"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s of %s (%s%%)%s\n", s.Budget.Name,
						money.Format(s.Spent, g.Currency),
						money.Format(s.Budget.Amount, g.Currency),
						s.PercentUsed.StringFixed(0), flag,
					)
				}
			}
			return nil
		},
	}
}

func (a *app) planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <group>",
		Short: "Suggest payments that settle every balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.resolveGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			report := service.Balances(g)
			if len(report.Plan) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All settled up.")
				return nil
			}
			for _, t := range report.Plan {
				fmt.Fprintf(cmd.OutOrStdout(), "%s pays %s %s\n", t.FromName, t.ToName, money.Format(t.Amount, g.Currency))
			}
			return nil
		},
	}
}
