package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"presstrack/internal/bootstrap"
	"presstrack/internal/bootstrap/logging"
	"presstrack/internal/errs"
	"presstrack/internal/infrastructure/fixture"
	sqliteuow "presstrack/internal/infrastructure/persistence/sqlite/uow"
	"presstrack/internal/usecase/reports"
)

// seedCmd loads a TOML fixture into the database, all rows in one
// transaction.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a TOML fixture into the database",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *reports.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		fixtureFile, _ := cmd.Flags().GetString("fixture")
		logging.Info(ctx, "start seed", slog.String("fixture", fixtureFile))

		f, err := fixture.Load(fixtureFile)
		if err != nil {
			return errs.Wrap(err, "load fixture")
		}

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		uow := sqliteuow.NewUnitOfWork(app.DB)
		if err := uow.WithTx(ctx, func(txCtx context.Context) error {
			return fixture.Apply(txCtx, app.DB, f)
		}); err != nil {
			logging.Error(ctx, "seed failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "apply fixture")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "fixture applied: %s\n", fixtureFile); err != nil {
			return errs.Wrap(err, "write seed output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("fixture", "fixtures/seed.toml", "Path to fixture TOML")
}
