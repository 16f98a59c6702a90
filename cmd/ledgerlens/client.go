package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/cli"
)

func clientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "client <full name>",
		Short: "Summarize a single client",
		Long: `Show the total a client has sent, the records they received, and whether
any transaction involving them still has an unresolved compliance issue.`,
		Args: cobra.ExactArgs(1),
		RunE: runClient,
	}
}

func runClient(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, engine, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total sent: %.2f\n", engine.TotalAmountSentBy(name))
	fmt.Fprintf(&b, "Open compliance issues: %t\n", engine.HasOpenComplianceIssue(name))

	b.WriteString("Received:")
	received := engine.TransactionsByBeneficiary()[name]
	if len(received) == 0 {
		b.WriteString(" (none)")
	}
	for _, txn := range received {
		fmt.Fprintf(&b, "\n  • %.2f from %s", txn.Amount, partyName(txn.SenderFullName))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(name, b.String()))
	return err
}
