package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsr4564/WepaAPP/internal/adapters/report"
	"github.com/jsr4564/WepaAPP/internal/application"
	"github.com/jsr4564/WepaAPP/internal/domain"
)

func newWorknoteCmd(app *app) *cobra.Command {
	var trayID string
	var mode string

	cmd := &cobra.Command{
		Use:   "worknote",
		Short: "Generate a copy-paste worknote for current conditions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			monitor, err := app.monitor(cmd.Context())
			if err != nil {
				return err
			}
			printRecoveryWarning(cmd, monitor)

			if trayID == "" {
				note := report.Worknote(attentionItems(monitor), app.now())
				_, err = fmt.Fprintln(cmd.OutOrStdout(), note)
				return err
			}

			worknoteMode := report.WorknoteMode(mode)
			if !worknoteMode.Valid() {
				return fmt.Errorf("invalid mode %q: must be %q or %q", mode, report.ModeDetected, report.ModeRefilled)
			}

			item, err := trayAttention(monitor, domain.ComponentID(trayID))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.TrayWorknote(item, worknoteMode, app.now()))
			return err
		},
	}

	cmd.Flags().StringVar(&trayID, "tray", "", "Tray ID for a single-tray ticket note (e.g. tray_2)")
	cmd.Flags().StringVar(&mode, "mode", string(report.ModeDetected), "Tray note template: detected or refilled")

	return cmd
}

func attentionItems(monitor *application.Monitor) []report.Attention {
	lastChecked := monitor.LastChecked()

	var items []report.Attention
	for _, status := range monitor.CurrentStatus() {
		if !status.NeedsAttention() {
			continue
		}
		items = append(items, report.Attention{
			Component: status.Component,
			Condition: status.Condition,
			Since:     status.Since,
			LastSeen:  lastChecked,
		})
	}
	return items
}

func trayAttention(monitor *application.Monitor, id domain.ComponentID) (report.Attention, error) {
	for _, status := range monitor.CurrentStatus() {
		if status.Component.ID != id {
			continue
		}
		if status.Component.Kind != domain.KindTray {
			return report.Attention{}, fmt.Errorf("component %s is not a tray", id)
		}
		return report.Attention{
			Component: status.Component,
			Condition: status.Condition,
			Since:     status.Since,
			LastSeen:  monitor.LastChecked(),
		}, nil
	}

	return report.Attention{}, fmt.Errorf("%w: %s", domain.ErrComponentNotFound, id)
}
