package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/groupledger/internal/service"
)

func (a *app) exportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export <group>",
		Short: "Export a group's members and expenses as JSON or YAML",
		Long: `Export a group's members and expenses.

Writes to stdout unless --out is given. --out - writes to a file named
after the group in the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.resolveGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			resp, err := a.svc.ExportGroup(cmd.Context(), &service.ExportGroupRequest{GroupID: g.ID, Format: format})
			if err != nil {
				return err
			}

			switch out {
			case "":
				_, err = fmt.Fprint(cmd.OutOrStdout(), resp.Content)
				return err
			case "-":
				out = resp.FileName
			}
			if err := os.WriteFile(out, []byte(resp.Content), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}
