package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded condition changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			monitor, err := app.monitor(cmd.Context())
			if err != nil {
				return err
			}
			printRecoveryWarning(cmd, monitor)

			events := monitor.History(limit)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(events)
			}

			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No condition changes recorded yet.")
				return nil
			}

			registry := app.cfg.Registry()
			for _, event := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					event.Timestamp.Format("2006-01-02 15:04:05"),
					eventLine(registry, event),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
