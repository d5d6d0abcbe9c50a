package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsr4564/WepaAPP/internal/adapters/report"
)

func newExportCmd(app *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full event history as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			monitor, err := app.monitor(cmd.Context())
			if err != nil {
				return err
			}
			printRecoveryWarning(cmd, monitor)

			csv, err := report.CSV(monitor.Events())
			if err != nil {
				return fmt.Errorf("build csv: %w", err)
			}

			if outPath == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), csv)
				return err
			}

			if err := os.WriteFile(outPath, []byte(csv), 0o644); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(monitor.Events()), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Destination file (default: stdout)")

	return cmd
}
