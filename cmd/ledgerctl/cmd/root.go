// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/groupledger/internal/config"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/service"
	"github.com/mmynk/groupledger/internal/storage"
	"github.com/mmynk/groupledger/internal/storage/sqlite"
	"github.com/mmynk/groupledger/pkg/logging"
)

// app carries the open store between PersistentPreRunE and the subcommands.
// Whoever executes the command tree must call close.
type app struct {
	envFile string
	dbPath  string
	debug   bool

	store storage.Store
	svc   *service.LedgerService
}

// newRootCmd builds the ledgerctl command tree.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect and settle shared-expense groups",
		Long: `ledgerctl reads the ledger database used by the server and reports
balances, suggested settlements and exports for each group.

Groups can be named by ID or invite code.

Example:
  ledgerctl groups
  ledgerctl balances K7MQ2XPA
  ledgerctl plan K7MQ2XPA
  ledgerctl settle K7MQ2XPA --from Bob --to Alice --amount 12.50
  ledgerctl export K7MQ2XPA --format yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.debug {
				level = slog.LevelDebug
			}
			logging.SetupWithLevel(level)

			if a.dbPath == "" {
				cfg, err := config.Load(a.envFile)
				if err != nil {
					return err
				}
				a.dbPath = cfg.DBPath
			}

			store, err := sqlite.New(a.dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			a.store = store
			a.svc = service.NewLedgerService(store, service.WithLogger(slog.Default()))
			slog.Debug("Opened database", "path", a.dbPath)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env", "", "env file (default is .env)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "path to the ledger database (default DB_PATH from the environment)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.groupsCmd(),
		a.balancesCmd(),
		a.planCmd(),
		a.settleCmd(),
		a.exportCmd(),
	)
	return root, a
}

// Execute runs the root command and closes the store whether or not the
// command succeeded.
func Execute() error {
	root, a := newRootCmd()
	defer a.close()
	return root.Execute()
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
	a.store = nil
}

// resolveGroup finds a group by ID, then by invite code.
func (a *app) resolveGroup(ctx context.Context, ref string) (*models.Group, error) {
	g, err := a.store.GetGroup(ctx, ref)
	if err == nil || !errors.Is(err, models.ErrNotFound) {
		return g, err
	}
	return a.store.FindGroupByInviteCode(ctx, strings.ToUpper(ref))
}
