package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

// Source yields every transaction of a bank export.
type Source interface {
	Load(ctx context.Context) ([]transaction.Transaction, error)
}

// ParseRows converts a header row plus data rows into transactions.
// The date and amount columns are required; the others may be missing.
func ParseRows(rows [][]string) ([]transaction.Transaction, error) {
	if len(rows) == 0 {
		return nil, &transaction.NotFoundError{What: "header row", Name: "export"}
	}
	headers := rows[0]
	colDate := indexOf(headers, transaction.ColumnOperationDate)
	colAmount := indexOf(headers, transaction.ColumnAmount)
	if colDate == -1 {
		return nil, &transaction.NotFoundError{What: "column", Name: transaction.ColumnOperationDate}
	}
	if colAmount == -1 {
		return nil, &transaction.NotFoundError{What: "column", Name: transaction.ColumnAmount}
	}
	colCategory := indexOf(headers, transaction.ColumnCategory)
	colDescription := indexOf(headers, transaction.ColumnDescription)
	colCard := indexOf(headers, transaction.ColumnCardNumber)

	txs := make([]transaction.Transaction, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		date, err := parseDate(safeGet(row, colDate))
		if err != nil {
			var perr *transaction.ParseError
			if errors.As(err, &perr) {
				perr.Row = i + 1
			}
			return nil, err
		}
		amount, err := parseAmount(safeGet(row, colAmount))
		if err != nil {
			return nil, &transaction.ParseError{Value: safeGet(row, colAmount), Row: i + 1, Err: err}
		}
		txs = append(txs, transaction.Transaction{
			OperationDate: date,
			Amount:        amount,
			Category:      cell(row, colCategory),
			Description:   cell(row, colDescription),
			CardNumber:    cell(row, colCard),
		})
	}
	return txs, nil
}

// parseDate accepts the textual layouts and spreadsheet serial dates,
// which raw xlsx cells and unformatted Sheets values carry.
func parseDate(s string) (time.Time, error) {
	t, err := transaction.ParseDate(s)
	if err == nil {
		return t, nil
	}
	serial, serr := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if serr != nil || serial <= 0 {
		return time.Time{}, err
	}
	u, serr := excelize.ExcelDateToTime(serial, false)
	if serr != nil {
		return time.Time{}, err
	}
	u = u.Round(time.Second)
	// serial dates carry no zone; keep the wall clock in local time
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), 0, time.Local), nil
}

// parseAmount accepts "1 234,56", "1,234.56", "1.234,56", "1234.56" and "-1000";
// an empty cell is zero. A separator that repeats, or is followed by the other one,
// groups thousands; the remaining one is the decimal point.
func parseAmount(s string) (decimal.Decimal, error) {
	v := strings.NewReplacer(" ", "", "\u00a0", "").Replace(strings.TrimSpace(s))
	if v == "" {
		return decimal.Zero, nil
	}
	comma, dot := strings.LastIndex(v, ","), strings.LastIndex(v, ".")
	switch {
	case comma > dot:
		v = strings.ReplaceAll(v, ".", "")
		if strings.Count(v, ",") > 1 {
			v = strings.ReplaceAll(v, ",", "")
		} else {
			v = strings.Replace(v, ",", ".", 1)
		}
	case dot > comma:
		v = strings.ReplaceAll(v, ",", "")
		if strings.Count(v, ".") > 1 {
			v = strings.ReplaceAll(v, ".", "")
		}
	}
	return decimal.NewFromString(v)
}

// cell returns a trimmed text cell, treating spreadsheet NaN markers as absent.
func cell(row []string, col int) string {
	v := strings.TrimSpace(safeGet(row, col))
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func safeGet(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch n := v.(type) {
		case nil:
		case float64:
			out[i] = strconv.FormatFloat(n, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

// Snapshot loads a source once and hands out copies of the result.
// It is not safe for concurrent use.
type Snapshot struct {
	src    Source
	loaded bool
	list   []transaction.Transaction
	err    error
}

// NewSnapshot wraps src so it is read at most once.
func NewSnapshot(src Source) *Snapshot {
	return &Snapshot{src: src}
}

// Load returns a copy of the loaded transactions.
func (s *Snapshot) Load(ctx context.Context) ([]transaction.Transaction, error) {
	if !s.loaded {
		s.list, s.err = s.src.Load(ctx)
		s.loaded = true
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]transaction.Transaction, len(s.list))
	copy(out, s.list)
	return out, nil
}
