package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// loadJSON decodes a JSON array of transaction records. The decoder keeps
// numbers as json.Number so integer and float issue ids stay distinguishable
// until coercion.
func loadJSON(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var raws []rawTransaction
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	transactions := make([]model.Transaction, 0, len(raws))
	for i, raw := range raws {
		txn, err := raw.validate()
		if err != nil {
			return nil, common.NewRecordError(i, err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}
