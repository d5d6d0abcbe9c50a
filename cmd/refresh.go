package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsr4564/WepaAPP/internal/adapters/dashboard"
	"github.com/jsr4564/WepaAPP/internal/application"
	"github.com/jsr4564/WepaAPP/internal/domain"
)

func newRefreshCmd(app *app) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Poll the printer once and record condition changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			monitor, err := app.monitor(cmd.Context())
			if err != nil {
				return err
			}
			printRecoveryWarning(cmd, monitor)

			var result application.RefreshResult
			refresh := func(ctx context.Context) error {
				var refreshErr error
				if inputPath != "" {
					result, refreshErr = monitor.RefreshFrom(ctx, dashboard.NewFileSource(inputPath))
				} else {
					result, refreshErr = monitor.Refresh(ctx)
				}
				return refreshErr
			}

			if err := runRefreshSpinner(cmd.Context(), cmd.ErrOrStderr(), refresh); err != nil {
				return err
			}

			printRefreshResult(cmd, app, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Read a raw status JSON file instead of polling the dashboard")

	return cmd
}

func printRefreshResult(cmd *cobra.Command, app *app, result application.RefreshResult) {
	out := cmd.OutOrStdout()

	switch len(result.Events) {
	case 0:
		fmt.Fprintf(out, "Checked at %s: no condition changes\n", result.At.Format("2006-01-02 15:04:05"))
	case 1:
		fmt.Fprintf(out, "Checked at %s: 1 condition change\n", result.At.Format("2006-01-02 15:04:05"))
	default:
		fmt.Fprintf(out, "Checked at %s: %d condition changes\n", result.At.Format("2006-01-02 15:04:05"), len(result.Events))
	}

	registry := app.cfg.Registry()
	for _, event := range result.Events {
		fmt.Fprintln(out, "- "+eventLine(registry, event))
	}

	if result.Warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+result.Warning)
	}
}

func printRecoveryWarning(cmd *cobra.Command, monitor *application.Monitor) {
	if warning := monitor.RecoveryWarning(); warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+warning)
	}
}

func eventLine(registry domain.Registry, event domain.Event) string {
	label := string(event.Component)
	if component, ok := registry.Lookup(event.Component); ok {
		label = component.Label
	}
	return fmt.Sprintf("%s: %s -> %s", label, event.Previous, event.New)
}
