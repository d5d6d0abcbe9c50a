package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsr4564/WepaAPP/internal/application"
)

func newWatchCmd(app *app) *cobra.Command {
	var intervalMinutes int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the printer on an interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if intervalMinutes <= 0 {
				return fmt.Errorf("interval must be positive, got %d", intervalMinutes)
			}

			monitor, err := app.monitor(cmd.Context())
			if err != nil {
				return err
			}
			printRecoveryWarning(cmd, monitor)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			interval := time.Duration(intervalMinutes) * time.Minute
			fmt.Fprintf(cmd.OutOrStdout(), "Watching printer status every %s (ctrl-c to stop)\n", interval)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				var result application.RefreshResult
				err := runRefreshSpinner(ctx, cmd.ErrOrStderr(), func(ctx context.Context) error {
					var refreshErr error
					result, refreshErr = monitor.Refresh(ctx)
					return refreshErr
				})
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					// Transient fetch failures should not kill the loop.
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+err.Error())
				} else {
					printRefreshResult(cmd, app, result)
				}

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().IntVar(&intervalMinutes, "interval", app.cfg.Monitor.IntervalMinutes, "Minutes between polls")

	return cmd
}
