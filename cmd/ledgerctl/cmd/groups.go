package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/service"
)

func (a *app) groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List groups, most recently active first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.svc.ListGroups(cmd.Context(), &service.ListGroupsRequest{})
			if err != nil {
				return err
			}
			if len(resp.Groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tMEMBERS\tEXPENSES\tTOTAL\tLAST ACTIVITY")
			for _, g := range resp.Groups {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					g.InviteCode, g.Name, g.MemberCount, g.ExpenseCount,
					money.Format(g.TotalExpenses, g.Currency),
					g.LastActivity.Format("2006-01-02 15:04"),
				)
			}
			return w.Flush()
		},
	}
}
