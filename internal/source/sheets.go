package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

// SheetsSource reads a bank export kept in a Google spreadsheet.
type SheetsSource struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
}

var _ Source = (*SheetsSource)(nil)

// NewSheetsSource creates a read-only Sheets client. credentialsJSON may be
// empty when opts already carry authentication.
func NewSheetsSource(ctx context.Context, spreadsheetID, readRange string, credentialsJSON []byte, opts ...option.ClientOption) (*SheetsSource, error) {
	if spreadsheetID == "" {
		return nil, &transaction.InvalidInputError{Field: "spreadsheet id", Reason: "empty"}
	}
	if readRange == "" {
		readRange = "A:Z"
	}
	base := []option.ClientOption{option.WithScopes(gsheet.SpreadsheetsReadonlyScope)}
	if len(credentialsJSON) > 0 {
		base = append(base, option.WithCredentialsJSON(credentialsJSON))
	}
	svc, err := gsheet.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsSource{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

// Load fetches unformatted cell values and parses them. Dates stay formatted strings.
func (s *SheetsSource) Load(ctx context.Context) ([]transaction.Transaction, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return nil, &transaction.NotFoundError{What: "spreadsheet", Name: s.spreadsheetID, Err: err}
		}
		return nil, &transaction.UpstreamError{Service: "google sheets", Err: err}
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		rows = append(rows, toStrings(r))
	}
	return ParseRows(rows)
}
