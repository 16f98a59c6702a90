// Package model defines the transaction record shape shared by the loader,
// the query engine and the reporting surfaces.
package model

// Transaction represents a single transfer between two clients as it appears
// in the dataset. Records are immutable once loaded; every field is validated
// and normalized by the loader, so consumers never re-check types.
type Transaction struct {
	Amount              float64 `json:"amount"`
	SenderFullName      string  `json:"senderFullName"`      // empty when the record names no sender
	BeneficiaryFullName string  `json:"beneficiaryFullName"` // empty when the record names no beneficiary
	IssueID             *int64  `json:"issueId"`             // nil when the record carries no readable issue id
	IssueSolved         bool    `json:"issueSolved"`
	IssueMessage        string  `json:"issueMessage"`
}

// HasOpenIssue reports whether the record carries an unresolved compliance
// issue. A record that never declared issueSolved counts as unresolved.
func (t Transaction) HasOpenIssue() bool {
	return !t.IssueSolved
}

// Involves reports whether the named client is the sender or the beneficiary
// of this record. An empty name matches nothing, even against records with an
// absent party.
func (t Transaction) Involves(name string) bool {
	if name == "" {
		return false
	}
	return t.SenderFullName == name || t.BeneficiaryFullName == name
}
