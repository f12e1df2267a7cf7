package transaction

import "time"

// SpendingWindowDays is how many calendar days SpendingByCategory looks back from its reference date.
const SpendingWindowDays = 90

// FilterByCategory returns the transactions whose category equals category exactly.
// Transactions without a category never match.
func FilterByCategory(txs []Transaction, category string) []Transaction {
	var filtered []Transaction
	if category == "" {
		return filtered
	}
	for _, t := range txs {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByWindow returns the transactions dated within [start, end], both bounds included.
func FilterByWindow(txs []Transaction, start, end time.Time) []Transaction {
	var filtered []Transaction
	for _, t := range txs {
		if t.OperationDate.Before(start) || t.OperationDate.After(end) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// MonthToDate returns the window from midnight of the first day of t's month up to t.
func MonthToDate(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, t
}

// SpendingByCategory returns the category's transactions in the 90 calendar days up to asOf.
// The window start keeps asOf's wall clock across DST changes. A zero asOf means now.
func SpendingByCategory(txs []Transaction, category string, asOf time.Time) []Transaction {
	return (&TransactionList{Transactions: txs}).SpendingByCategory(category, asOf)
}

// SpendingByCategory is the list form of the package-level SpendingByCategory.
func (tl *TransactionList) SpendingByCategory(category string, asOf time.Time) []Transaction {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return FilterByWindow(tl.GetByCategory(category), asOf.AddDate(0, 0, -SpendingWindowDays), asOf)
}
