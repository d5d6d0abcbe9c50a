package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "printmon",
		Short:         "Printer supply and tray monitor",
		Long:          "printmon polls a printer fleet dashboard, tracks toner/drum/fuser levels and paper tray states, and keeps an append-only history of every condition change for worknotes and reports.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRefreshCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
		newExportCmd(app),
		newWorknoteCmd(app),
		newMarkFilledCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
