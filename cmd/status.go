package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/jsr4564/WepaAPP/internal/adapters/render/status"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current condition of every supply and tray",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			monitor, err := app.monitor(cmd.Context())
			if err != nil {
				return err
			}
			printRecoveryWarning(cmd, monitor)

			statuses := monitor.CurrentStatus()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}

			interval := time.Duration(app.cfg.Monitor.IntervalMinutes) * time.Minute
			rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
				Now:         app.now(),
				LastChecked: monitor.LastChecked(),
				StaleAfter:  2 * interval,
			})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
