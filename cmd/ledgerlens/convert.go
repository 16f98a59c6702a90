package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/cli"
	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/ofx"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert OFX/QFX statements into a transaction data file",
		Long: `Convert OFX or QFX (Quicken) statement exports into the JSON dataset
format the other commands read. Debits record the account holder as the
sender, credits record them as the beneficiary.

Examples:
  # Convert a single statement
  ledgerlens convert --account-holder "Michael Gray" ~/Downloads/jan_2024.qfx

  # Merge several statements into one dataset
  ledgerlens convert --account-holder "Michael Gray" ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().String("account-holder", "", "Full name of the account's owner in the converted records")
	cmd.Flags().StringP("output", "o", "transactions.json", "Output data file")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview conversion without writing the output file")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	holder, _ := cmd.Flags().GetString("account-holder")
	output, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if holder == "" {
		return fmt.Errorf("--account-holder is required")
	}

	slog.Info(cli.FormatTitle("Converting statements into transaction records"))

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no statement files found to convert")
	}

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Converting statements..."),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		}),
	)

	parser := ofx.NewParser(holder)
	var transactions []model.Transaction

	for _, filePath := range allFiles {
		txns, err := convertFile(cmd.Context(), parser, filePath)
		if err != nil {
			slog.Error("Failed to convert statement", "file", filePath, "error", err)
			_ = bar.Add(1)
			continue
		}
		transactions = append(transactions, txns...)
		_ = bar.Add(1)
	}

	if len(transactions) == 0 {
		slog.Warn(cli.FormatWarning("No transactions found in any statement"))
		return nil
	}

	if dryRun {
		_, err := fmt.Fprintln(cmd.OutOrStdout(),
			cli.FormatInfo(fmt.Sprintf("Dry run: would write %d transactions to %s", len(transactions), output)))
		return err
	}

	data, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	if err := os.WriteFile(config.ExpandPath(output), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(),
		cli.FormatSuccess(fmt.Sprintf("Wrote %d transactions to %s", len(transactions), output)))
	return err
}

func convertFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(ctx, f)
}
