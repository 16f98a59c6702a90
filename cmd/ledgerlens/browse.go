package main

import (
	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the dataset interactively",
		Long: `Open a terminal browser over the configured data file. Records can be
filtered to open compliance issues and sorted by amount, with aggregate
statistics visible in the footer.`,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	transactions, engine, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	return tui.Run(transactions, engine)
}
