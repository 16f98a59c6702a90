package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/cli"
)

func topCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Show the largest transactions and the top sender",
		RunE:  runTop,
	}
}

func runTop(cmd *cobra.Command, _ []string) error {
	_, engine, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString("Top 3 Transactions by Amount:\n")
	top := engine.Top3ByAmount()
	if len(top) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, txn := range top {
		fmt.Fprintf(&b, "  • %.2f from %s to %s\n", txn.Amount, partyName(txn.SenderFullName), partyName(txn.BeneficiaryFullName))
	}

	if sender, ok := engine.TopSender(); ok {
		fmt.Fprintf(&b, "Top Sender: %s", sender)
	} else {
		b.WriteString("Top Sender: No top sender found.")
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Top Movers", b.String()))
	return err
}
