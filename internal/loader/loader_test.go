package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ledgerlens/ledgerlens/internal/common"
)

func writeDataFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "empty defaults to auto", input: "", want: FormatAuto},
		{name: "auto", input: "auto", want: FormatAuto},
		{name: "json", input: "json", want: FormatJSON},
		{name: "sqlite", input: "sqlite", want: FormatSQLite},
		{name: "sqlite3 alias", input: "sqlite3", want: FormatSQLite},
		{name: "db alias", input: "db", want: FormatSQLite},
		{name: "mixed case with spaces", input: " JSON ", want: FormatJSON},
		{name: "unknown format", input: "parquet", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, common.ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Format
	}{
		{name: "json extension", path: "transactions.json", want: FormatJSON},
		{name: "db extension", path: "/var/data/ledger.db", want: FormatSQLite},
		{name: "sqlite extension", path: "ledger.sqlite", want: FormatSQLite},
		{name: "sqlite3 extension", path: "LEDGER.SQLITE3", want: FormatSQLite},
		{name: "no extension falls back to json", path: "transactions", want: FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.path); got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), FormatAuto)
	if !errors.Is(err, common.ErrNoDataFile) {
		t.Errorf("Load on missing file error = %v, want ErrNoDataFile", err)
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	path := writeDataFile(t, "transactions.json", "[]")
	_, err := Load(context.Background(), path, Format("parquet"))
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Errorf("Load with unknown format error = %v, want ErrUnsupportedFormat", err)
	}
}
