package cmd

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"presstrack/internal/bootstrap"
	"presstrack/internal/bootstrap/logging"
	"presstrack/internal/errs"
	"presstrack/internal/usecase/reports"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reports HTTP API",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *reports.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		addr, _ := cmd.Flags().GetString("addr")
		addr = strings.TrimSpace(addr)
		if addr == "" {
			addr = app.Config.HTTP.Addr
		}

		server := &http.Server{
			Addr:    addr,
			Handler: newReportHandler(svc, ctx),
		}

		logging.Info(ctx, "reports server started", slog.String("addr", addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "reports server failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "serve reports api")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (defaults to http.addr from config)")
}
