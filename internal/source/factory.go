package source

import (
	"context"
	"fmt"
	"os"

	"github.com/example/transaction-analyzer/internal/config"
)

// FromConfig builds the source selected by cfg.Type.
func FromConfig(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case "excel", "":
		return &ExcelSource{Path: cfg.Path, Sheet: cfg.Sheet}, nil
	case "csv":
		return &CSVSource{Path: cfg.Path}, nil
	case "sheets":
		creds, err := sheetsCredentials(cfg)
		if err != nil {
			return nil, err
		}
		return NewSheetsSource(ctx, cfg.SpreadsheetID, cfg.Range, creds)
	default:
		return nil, fmt.Errorf("unsupported source type %q", cfg.Type)
	}
}

func sheetsCredentials(cfg config.SourceConfig) ([]byte, error) {
	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	}
	if v := os.Getenv(cfg.CredentialsEnv); v != "" {
		return []byte(v), nil
	}
	return nil, fmt.Errorf("missing service account credentials (set source.credentials_file or %s)", cfg.CredentialsEnv)
}
