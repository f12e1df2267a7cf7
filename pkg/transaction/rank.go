package transaction

import (
	"slices"
	"time"
)

// TopTransactions returns up to n month-to-date transactions with the largest
// signed amounts. Equal amounts keep their original order.
func TopTransactions(txs []Transaction, at time.Time, n int) []Transaction {
	if n <= 0 {
		return nil
	}
	start, end := MonthToDate(at)
	ranked := FilterByWindow(txs, start, end)
	slices.SortStableFunc(ranked, func(a, b Transaction) int {
		return b.Amount.Cmp(a.Amount)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopFive is TopTransactions with n = 5.
func TopFive(txs []Transaction, at time.Time) []Transaction {
	return TopTransactions(txs, at, 5)
}
