package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsr4564/WepaAPP/internal/domain"
)

func newMarkFilledCmd(app *app) *cobra.Command {
	var trayID string

	cmd := &cobra.Command{
		Use:   "mark-filled",
		Short: "Record that an empty tray was refilled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			monitor, err := app.monitor(cmd.Context())
			if err != nil {
				return err
			}
			printRecoveryWarning(cmd, monitor)

			event, err := monitor.MarkFilled(cmd.Context(), domain.ComponentID(trayID))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded at %s: %s\n",
				event.Timestamp.Format("2006-01-02 15:04:05"),
				eventLine(app.cfg.Registry(), event),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&trayID, "tray", "", "Tray ID to mark as refilled (e.g. tray_2)")
	_ = cmd.MarkFlagRequired("tray")

	return cmd
}
