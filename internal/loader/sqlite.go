package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// readOnlyDSN builds the connection string for a read-only open. The file:
// prefix matters: without it the driver drops mode=ro and opens read-write.
func readOnlyDSN(path string) string {
	return "file:" + path + "?mode=ro&_busy_timeout=5000"
}

// loadSQLite reads every row of the transactions table in rowid order so the
// dataset keeps the order it was written in. The database is opened read-only.
func loadSQLite(ctx context.Context, path string) ([]model.Transaction, error) {
	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections

	rows, err := db.QueryContext(ctx, `
		SELECT amount, sender_full_name, beneficiary_full_name,
		       issue_id, issue_solved, issue_message
		FROM transactions
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	index := 0
	for rows.Next() {
		var (
			amount      sql.NullFloat64
			sender      sql.NullString
			beneficiary sql.NullString
			issueID     any
			solved      sql.NullBool
			message     sql.NullString
		)
		if err := rows.Scan(&amount, &sender, &beneficiary, &issueID, &solved, &message); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		raw := rawTransaction{
			SenderFullName:      sender.String,
			BeneficiaryFullName: beneficiary.String,
			IssueID:             issueID,
			IssueSolved:         solved.Valid && solved.Bool,
			IssueMessage:        message.String,
		}
		if amount.Valid {
			raw.Amount = &amount.Float64
		}

		txn, err := raw.validate()
		if err != nil {
			return nil, common.NewRecordError(index, err)
		}
		transactions = append(transactions, txn)
		index++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}
