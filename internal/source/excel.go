package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/xuri/excelize/v2"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

// ExcelSource reads an .xlsx bank export.
type ExcelSource struct {
	Path  string
	Sheet string // first sheet when empty
}

var _ Source = (*ExcelSource)(nil)

// Load opens the workbook and parses its rows.
func (s *ExcelSource) Load(ctx context.Context) ([]transaction.Transaction, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &transaction.NotFoundError{What: "file", Name: s.Path, Err: err}
		}
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, &transaction.NotFoundError{What: "sheet", Name: sheet}
	}

	// raw values so number formats such as "#,##0.00" do not reach the amount parser
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseRows(rows)
}
