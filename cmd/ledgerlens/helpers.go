package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/loader"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/query"
)

// loadDataset reads the configured data file and wraps it in a query engine.
func loadDataset(ctx context.Context) ([]model.Transaction, *query.Engine, error) {
	path := config.ExpandPath(viper.GetString("data.file"))

	format, err := loader.ParseFormat(viper.GetString("data.format"))
	if err != nil {
		return nil, nil, err
	}

	transactions, err := loader.Load(ctx, path, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	slog.Debug("Loaded dataset", "file", path, "records", len(transactions))

	return transactions, query.NewEngine(transactions), nil
}

// partyName labels parties that the record left unnamed.
func partyName(name string) string {
	if name == "" {
		return "(unknown)"
	}
	return name
}
