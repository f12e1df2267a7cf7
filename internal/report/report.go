package report

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

const (
	// DisplayDateLayout is used for dates shown on the dashboard.
	DisplayDateLayout = "02.01.2006"
	// ReportTimeLayout is used for timestamps in persisted reports.
	ReportTimeLayout = "2006-01-02 15:04:05"
)

// Record is one flat output row. Key order is irrelevant, list order is not.
type Record map[string]any

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Number renders d as a JSON number with exactly two decimals.
func Number(d decimal.Decimal) json.Number {
	return json.Number(Round2(d).StringFixed(2))
}

// EncodeJSON marshals v with 4-space indentation, leaving non-ASCII and HTML characters unescaped.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Cards shapes card summaries as {last_digits, total_spent, cashback}.
func Cards(summaries []transaction.CardSummary) []Record {
	out := make([]Record, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, Record{
			"last_digits": s.LastDigits,
			"total_spent": Number(s.TotalSpent),
			"cashback":    Number(s.Cashback),
		})
	}
	return out
}

// Top shapes ranked transactions as {date, amount, category, description}.
func Top(txs []transaction.Transaction) []Record {
	out := make([]Record, 0, len(txs))
	for _, t := range txs {
		out = append(out, Record{
			"date":        t.OperationDate.Format(DisplayDateLayout),
			"amount":      Number(t.Amount),
			"category":    optional(t.Category),
			"description": optional(t.Description),
		})
	}
	return out
}

// Transactions shapes transactions with the export's column labels.
// The operation date keeps the export's day-first layout.
func Transactions(txs []transaction.Transaction) []Record {
	return columns(txs, "02.01.2006 15:04:05")
}

// Spending shapes transactions for a persisted category report.
func Spending(txs []transaction.Transaction) []Record {
	return columns(txs, ReportTimeLayout)
}

// ErrorMarker is the single-element list returned when a report fails.
func ErrorMarker(err error) []Record {
	return []Record{{"error": err.Error()}}
}

func columns(txs []transaction.Transaction, dateLayout string) []Record {
	out := make([]Record, 0, len(txs))
	for _, t := range txs {
		out = append(out, Record{
			transaction.ColumnOperationDate: t.OperationDate.Format(dateLayout),
			transaction.ColumnAmount:        Number(t.Amount),
			transaction.ColumnCategory:      optional(t.Category),
			transaction.ColumnDescription:   optional(t.Description),
			transaction.ColumnCardNumber:    optional(t.CardNumber),
		})
	}
	return out
}

// optional maps an absent text cell to JSON null.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
