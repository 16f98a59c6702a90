// Package report renders the standard analytics summary for a dataset.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/cli"
	"github.com/ledgerlens/ledgerlens/internal/query"
)

// Options select which clients the per-client report sections focus on.
type Options struct {
	// Sender is the client whose outgoing total is reported.
	Sender string
	// Client is the client whose compliance standing is reported.
	Client string
}

// Render writes the full report to w. Section order is fixed so reports
// stay diffable across datasets and runs.
func Render(w io.Writer, engine *query.Engine, opts Options) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Transaction Amount: %.2f\n", engine.TotalAmount())
	fmt.Fprintf(&b, "Total Transaction Amount Sent by %s: %.2f\n", opts.Sender, engine.TotalAmountSentBy(opts.Sender))
	fmt.Fprintf(&b, "Max Transaction Amount: %.2f\n", engine.MaxAmount())
	fmt.Fprintf(&b, "Count Unique Clients: %d\n", engine.CountUniqueClients())
	fmt.Fprintf(&b, "Has Open Compliance Issues for %s: %t\n", opts.Client, engine.HasOpenComplianceIssue(opts.Client))

	b.WriteString("Transactions by Beneficiary Name:\n")
	writeBeneficiaries(&b, engine)

	fmt.Fprintf(&b, "Unsolved Issue IDs: %s\n", formatIssueIDs(engine.UnsolvedIssueIDs()))

	b.WriteString("All Solved Issue Messages:\n")
	writeMessages(&b, engine.AllSolvedIssueMessages())

	b.WriteString("Top 3 Transactions by Amount:\n")
	writeTopTransactions(&b, engine)

	if top, ok := engine.TopSender(); ok {
		fmt.Fprintf(&b, "Top Sender: %s", top)
	} else {
		b.WriteString("Top Sender: No top sender found.")
	}

	_, err := fmt.Fprintln(w, cli.RenderBox("Transaction Compliance Report", b.String()))
	return err
}

// writeBeneficiaries lists each beneficiary with their transaction count and
// total, sorted by name so the output is deterministic.
func writeBeneficiaries(b *strings.Builder, engine *query.Engine) {
	groups := engine.TransactionsByBeneficiary()
	if len(groups) == 0 {
		b.WriteString("  (none)\n")
		return
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var total float64
		for _, txn := range groups[name] {
			total += txn.Amount
		}
		fmt.Fprintf(b, "  • %s: %d transactions totaling %.2f\n", name, len(groups[name]), total)
	}
}

func writeMessages(b *strings.Builder, messages []string) {
	if len(messages) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, msg := range messages {
		fmt.Fprintf(b, "  • %q\n", msg)
	}
}

func writeTopTransactions(b *strings.Builder, engine *query.Engine) {
	top := engine.Top3ByAmount()
	if len(top) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, txn := range top {
		fmt.Fprintf(b, "  • %.2f from %s to %s\n", txn.Amount, formatParty(txn.SenderFullName), formatParty(txn.BeneficiaryFullName))
	}
}

// formatIssueIDs renders unsolved ids in ascending order.
func formatIssueIDs(ids map[int64]bool) string {
	if len(ids) == 0 {
		return "none"
	}

	sorted := make([]int64, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}

func formatParty(name string) string {
	if name == "" {
		return "(unknown)"
	}
	return name
}
