package transaction

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// CashbackRate is the flat share of each amount returned as cashback.
var CashbackRate = decimal.New(1, -2)

// CardSummary is the month-to-date spend of one card. Values are unrounded.
type CardSummary struct {
	CardNumber string
	LastDigits string
	TotalSpent decimal.Decimal
	Cashback   decimal.Decimal
}

// InformationForEachCard sums month-to-date amounts and cashback per card,
// ordered by total spent, largest first. Transactions without a card are skipped.
func InformationForEachCard(txs []Transaction, at time.Time) []CardSummary {
	start, end := MonthToDate(at)

	var summaries []CardSummary
	index := make(map[string]int)
	for _, t := range FilterByWindow(txs, start, end) {
		if t.CardNumber == "" {
			continue
		}
		i, ok := index[t.CardNumber]
		if !ok {
			i = len(summaries)
			index[t.CardNumber] = i
			summaries = append(summaries, CardSummary{
				CardNumber: t.CardNumber,
				LastDigits: t.LastDigits(),
			})
		}
		summaries[i].TotalSpent = summaries[i].TotalSpent.Add(t.Amount)
		summaries[i].Cashback = summaries[i].Cashback.Add(t.Amount.Mul(CashbackRate))
	}

	slices.SortStableFunc(summaries, func(a, b CardSummary) int {
		return b.TotalSpent.Cmp(a.TotalSpent)
	})
	return summaries
}
