// Package ofx converts bank statement exports into transaction records.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Parser converts OFX/QFX statement files into transaction records. The
// account holder is the sender of every debit and the beneficiary of every
// credit. FITIDs are remembered across calls so overlapping statement
// exports do not produce duplicate records.
type Parser struct {
	holder string
	seen   map[string]bool
}

// NewParser creates a parser for statements belonging to accountHolder.
func NewParser(accountHolder string) *Parser {
	return &Parser{
		holder: accountHolder,
		seen:   make(map[string]bool),
	}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files.
	// Pattern: <TAGNAME at end of line with no closing bracket
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns normalized transaction
// records. Records whose FITID was already seen by this parser are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var skipped int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			var n int
			transactions, n = p.appendTransactions(transactions, stmt.BankTranList.Transactions)
			skipped += n
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			var n int
			transactions, n = p.appendTransactions(transactions, stmt.BankTranList.Transactions)
			skipped += n
		}
	}

	slog.Info("Parsed OFX file",
		"account_holder", p.holder,
		"transactions", len(transactions),
		"duplicates_skipped", skipped)

	return transactions, nil
}

// appendTransactions converts statement entries, skipping FITIDs seen before.
// It returns the grown slice and the number of duplicates skipped.
func (p *Parser) appendTransactions(dst []model.Transaction, entries []ofxgo.Transaction) ([]model.Transaction, int) {
	skipped := 0
	for _, ofxTx := range entries {
		id := string(ofxTx.FiTID)
		if id != "" {
			if p.seen[id] {
				skipped++
				continue
			}
			p.seen[id] = true
		}
		dst = append(dst, p.convertTransaction(ofxTx))
	}
	return dst, skipped
}

// convertTransaction maps a statement entry onto the transaction record
// shape. OFX uses negative amounts for debits, so the sign decides which
// side of the transfer the account holder sits on. Statement imports never
// carry open compliance issues.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) model.Transaction {
	counterparty := extractCounterparty(ofxTx)

	amount, _ := ofxTx.TrnAmt.Float64()

	txn := model.Transaction{
		IssueSolved: true,
	}
	if amount < 0 {
		txn.Amount = -amount
		txn.SenderFullName = p.holder
		txn.BeneficiaryFullName = counterparty
	} else {
		txn.Amount = amount
		txn.SenderFullName = counterparty
		txn.BeneficiaryFullName = p.holder
	}

	return txn
}

// extractCounterparty tries to get a clean counterparty name from OFX data.
func extractCounterparty(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	// Fall back to NAME field
	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	// Remove common processor prefixes
	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD " at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic to be a
// useful counterparty name.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
