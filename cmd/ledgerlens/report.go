package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledgerlens/ledgerlens/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the full analytics report",
		Long: `Print every standard metric for the configured data file: totals,
per-client aggregates, compliance issue listings, and the top senders
and transactions.`,
		RunE: runReport,
	}

	// Flags
	cmd.Flags().String("sender", "Aunt Polly", "Client whose outgoing total is reported")
	cmd.Flags().String("client", "Tom Shelby", "Client whose compliance standing is reported")

	// Bind to viper
	_ = viper.BindPFlag("report.sender", cmd.Flags().Lookup("sender"))
	_ = viper.BindPFlag("report.client", cmd.Flags().Lookup("client"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	_, engine, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	return report.Render(cmd.OutOrStdout(), engine, report.Options{
		Sender: viper.GetString("report.sender"),
		Client: viper.GetString("report.client"),
	})
}
