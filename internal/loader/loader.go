// Package loader reads transaction datasets from disk into memory.
//
// Two on-disk representations are supported: the canonical JSON array and a
// read-only SQLite database with a transactions table. Records are validated
// and normalized while loading so the query engine only ever sees well-formed
// transactions.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Format selects the on-disk representation of a dataset.
type Format string

const (
	// FormatAuto picks a format based on the file extension.
	FormatAuto Format = "auto"
	// FormatJSON reads a JSON array of transaction records.
	FormatJSON Format = "json"
	// FormatSQLite reads the transactions table of a SQLite database.
	FormatSQLite Format = "sqlite"
)

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, s)
	}
}

// DetectFormat guesses the dataset format from the file extension.
// Anything that does not look like a SQLite database is treated as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Load reads every transaction record from path. A record that cannot be
// normalized fails the whole load with an error naming the record's position.
func Load(ctx context.Context, path string, format Format) ([]model.Transaction, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNoDataFile, path)
	}

	if format == FormatAuto {
		format = DetectFormat(path)
	}

	switch format {
	case FormatJSON:
		return loadJSON(path)
	case FormatSQLite:
		return loadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}
}

// rawTransaction is the wire shape of a record before validation. The issue
// id stays untyped because source files carry it as an integer, a float, or
// junk that only matters when the issue is still open.
type rawTransaction struct {
	Amount              *float64 `json:"amount"`
	IssueID             any      `json:"issueId"`
	SenderFullName      string   `json:"senderFullName"`
	BeneficiaryFullName string   `json:"beneficiaryFullName"`
	IssueMessage        string   `json:"issueMessage"`
	IssueSolved         bool     `json:"issueSolved"`
}

// validate normalizes a raw record into the model form. Unsolved records must
// carry a numeric issue id; solved records may carry anything because nothing
// downstream reads their id.
func (r rawTransaction) validate() (model.Transaction, error) {
	if r.Amount == nil {
		return model.Transaction{}, common.ErrMissingAmount
	}

	id, err := coerceIssueID(r.IssueID)
	if err != nil {
		if !r.IssueSolved {
			return model.Transaction{}, err
		}
		id = nil
	}
	if id == nil && !r.IssueSolved {
		return model.Transaction{}, fmt.Errorf("%w: unsolved issue without an id", common.ErrInvalidIssueID)
	}

	return model.Transaction{
		Amount:              *r.Amount,
		SenderFullName:      r.SenderFullName,
		BeneficiaryFullName: r.BeneficiaryFullName,
		IssueID:             id,
		IssueSolved:         r.IssueSolved,
		IssueMessage:        r.IssueMessage,
	}, nil
}

// coerceIssueID accepts the numeric encodings seen in the wild. Floats are
// truncated toward zero, so ids 2 and 2.9 both name issue 2.
func coerceIssueID(raw any) (*int64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return &n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %q", common.ErrInvalidIssueID, v.String())
		}
		n := int64(f)
		return &n, nil
	case int64:
		return &v, nil
	case float64:
		n := int64(v)
		return &n, nil
	case string:
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidIssueID, v)
	case []byte:
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidIssueID, string(v))
	default:
		return nil, fmt.Errorf("%w: %T", common.ErrInvalidIssueID, raw)
	}
}
