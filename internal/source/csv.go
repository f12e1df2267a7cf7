package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

// CSVSource reads a bank export saved as CSV.
type CSVSource struct {
	Path  string
	Comma rune // ';' when zero, as banks export it
}

var _ Source = (*CSVSource)(nil)

// Load reads and parses the whole file.
func (s *CSVSource) Load(ctx context.Context) ([]transaction.Transaction, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &transaction.NotFoundError{What: "file", Name: s.Path, Err: err}
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	rows, err := s.read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseRows(rows)
}

func (s *CSVSource) read(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.Comma
	if reader.Comma == 0 {
		reader.Comma = ';'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}
