package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
	"github.com/mmynk/groupledger/internal/service"
)

func (a *app) settleCmd() *cobra.Command {
	var from, to, amount, notes string

	cmd := &cobra.Command{
		Use:   "settle <group>",
		Short: "Record a payment between two members",
		Long: `Record that one member paid another outside of any expense.
Members can be named by ID or by name.

Example:
  ledgerctl settle K7MQ2XPA --from Bob --to Alice --amount 12.50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.resolveGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fromID, err := memberRef(g, from)
			if err != nil {
				return err
			}
			toID, err := memberRef(g, to)
			if err != nil {
				return err
			}

			resp, err := a.svc.RecordSettlement(cmd.Context(), &service.RecordSettlementRequest{
				GroupID: g.ID,
				From:    fromID,
				To:      toID,
				Amount:  amount,
				Notes:   notes,
			})
			if err != nil {
				return err
			}
			s := resp.Settlement
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s paid %s %s\n", s.ID,
				g.MemberName(s.From), g.MemberName(s.To), money.Format(s.Amount, g.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "member who paid")
	cmd.Flags().StringVar(&to, "to", "", "member who was paid")
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid")
	cmd.Flags().StringVar(&notes, "notes", "", "optional note")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// memberRef resolves a member ID or case-insensitive name to an ID.
func memberRef(g *models.Group, ref string) (string, error) {
	if g.HasMember(ref) {
		return ref, nil
	}
	if m, ok := ledger.FindMemberByName(g, ref); ok {
		return m.ID, nil
	}
	return "", fmt.Errorf("member %q: %w", ref, models.ErrNotFound)
}
