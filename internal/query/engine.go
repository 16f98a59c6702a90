// Package query implements the read-only analytics queries over a loaded
// transaction dataset.
package query

import (
	"sort"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Engine answers aggregate queries over an ordered collection of transaction
// records. The collection is supplied once at construction and never mutated
// or reordered by any query; all operations are pure and deterministic for a
// fixed input order, so an Engine is safe for concurrent readers.
type Engine struct {
	transactions []model.Transaction
}

// NewEngine creates an engine over transactions. The engine keeps the slice
// it is given; callers must not mutate it afterwards.
func NewEngine(transactions []model.Transaction) *Engine {
	return &Engine{transactions: transactions}
}

// TotalAmount returns the sum of the amounts of all transactions. An empty
// collection sums to 0.
func (e *Engine) TotalAmount() float64 {
	var total float64
	for _, t := range e.transactions {
		total += t.Amount
	}
	return total
}

// TotalAmountSentBy returns the sum of the amounts of all transactions sent
// by the named client. Names match exactly; an empty name matches nothing.
func (e *Engine) TotalAmountSentBy(sender string) float64 {
	if sender == "" {
		return 0
	}
	var total float64
	for _, t := range e.transactions {
		if t.SenderFullName == sender {
			total += t.Amount
		}
	}
	return total
}

// MaxAmount returns the highest transaction amount, or 0 for an empty
// collection. The zero default is a documented convention, not an error.
func (e *Engine) MaxAmount() float64 {
	if len(e.transactions) == 0 {
		return 0
	}
	max := e.transactions[0].Amount
	for _, t := range e.transactions[1:] {
		if t.Amount > max {
			max = t.Amount
		}
	}
	return max
}

// CountUniqueClients returns the number of distinct clients that sent or
// received a transaction: the union of the sender-name set and the
// beneficiary-name set. Records with no name recorded for a role contribute
// nothing for that role.
func (e *Engine) CountUniqueClients() int {
	clients := make(map[string]bool)
	for _, t := range e.transactions {
		if t.SenderFullName != "" {
			clients[t.SenderFullName] = true
		}
	}
	for _, t := range e.transactions {
		if t.BeneficiaryFullName != "" {
			clients[t.BeneficiaryFullName] = true
		}
	}
	return len(clients)
}

// HasOpenComplianceIssue reports whether the named client, as sender or
// beneficiary, appears on at least one transaction whose compliance issue is
// not solved.
func (e *Engine) HasOpenComplianceIssue(client string) bool {
	for _, t := range e.transactions {
		if t.Involves(client) && t.HasOpenIssue() {
			return true
		}
	}
	return false
}

// TransactionsByBeneficiary groups all transactions by beneficiary name.
// Within a group, records keep their input order; the map's key order is
// unspecified. Records naming no beneficiary have no grouping key and are
// omitted.
func (e *Engine) TransactionsByBeneficiary() map[string][]model.Transaction {
	groups := make(map[string][]model.Transaction)
	for _, t := range e.transactions {
		if t.BeneficiaryFullName == "" {
			continue
		}
		groups[t.BeneficiaryFullName] = append(groups[t.BeneficiaryFullName], t)
	}
	return groups
}

// UnsolvedIssueIDs returns the distinct issue ids of all transactions whose
// compliance issue is not solved. The loader guarantees every unsolved record
// carries an id; a violated guarantee panics here rather than hiding bad
// data.
func (e *Engine) UnsolvedIssueIDs() map[int64]bool {
	ids := make(map[int64]bool)
	for _, t := range e.transactions {
		if t.HasOpenIssue() {
			ids[*t.IssueID] = true
		}
	}
	return ids
}

// AllSolvedIssueMessages returns the messages of all transactions whose
// compliance issue is solved, in input order, duplicates preserved. Records
// without a message contribute an empty string.
func (e *Engine) AllSolvedIssueMessages() []string {
	var messages []string
	for _, t := range e.transactions {
		if t.IssueSolved {
			messages = append(messages, t.IssueMessage)
		}
	}
	return messages
}

// Top3ByAmount returns up to three transactions with the highest amounts,
// descending. The sort is stable, so equal amounts keep their input order.
// Sorting happens on a copy; the stored collection is never reordered.
func (e *Engine) Top3ByAmount() []model.Transaction {
	sorted := make([]model.Transaction, len(e.transactions))
	copy(sorted, e.transactions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	return sorted
}

// TopSender returns the sender with the greatest total sent amount. The
// second return is false when no transaction names a sender. Equal totals
// resolve to the sender that appears first in the input, keeping the result
// deterministic for a fixed record order.
func (e *Engine) TopSender() (string, bool) {
	totals := make(map[string]float64)
	var order []string
	for _, t := range e.transactions {
		if t.SenderFullName == "" {
			continue
		}
		if _, seen := totals[t.SenderFullName]; !seen {
			order = append(order, t.SenderFullName)
		}
		totals[t.SenderFullName] += t.Amount
	}

	if len(order) == 0 {
		return "", false
	}

	top := order[0]
	for _, name := range order[1:] {
		if totals[name] > totals[top] {
			top = name
		}
	}
	return top, true
}
