package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column labels of the bank export. Readers of the original files must match them exactly.
const (
	ColumnOperationDate = "Дата операции"
	ColumnCategory      = "Категория"
	ColumnDescription   = "Описание"
	ColumnAmount        = "Сумма операции с округлением"
	ColumnCardNumber    = "Номер карты"
)

// Transaction represents a single row of the bank export.
// Empty Category, Description and CardNumber mean the cell was absent.
type Transaction struct {
	OperationDate time.Time       `json:"operation_date"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	CardNumber    string          `json:"card_number,omitempty"`
}

// TransactionList holds a collection of transactions
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Source       string        `json:"source"`
	ProcessedAt  time.Time     `json:"processed_at"`
}

// NewTransactionList wraps a loaded batch
func NewTransactionList(source string, txs []Transaction, processedAt time.Time) *TransactionList {
	tl := &TransactionList{Source: source, ProcessedAt: processedAt}
	for _, t := range txs {
		tl.AddTransaction(t)
	}
	return tl
}

// AddTransaction appends a transaction to the list
func (tl *TransactionList) AddTransaction(t Transaction) {
	tl.Transactions = append(tl.Transactions, t)
	tl.Total = len(tl.Transactions)
}

// GetByCategory returns all transactions matching the given category
func (tl *TransactionList) GetByCategory(category string) []Transaction {
	return FilterByCategory(tl.Transactions, category)
}

// Snapshot returns a copy of the transactions so callers cannot mutate the list.
func (tl *TransactionList) Snapshot() []Transaction {
	out := make([]Transaction, len(tl.Transactions))
	copy(out, tl.Transactions)
	return out
}

// LastDigits returns the last four characters of the card number.
func (t Transaction) LastDigits() string {
	r := []rune(t.CardNumber)
	if len(r) <= 4 {
		return string(r)
	}
	return string(r[len(r)-4:])
}
