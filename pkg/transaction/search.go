package transaction

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// QueryFromValue checks that a search query decoded from untyped input is text.
func QueryFromValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &InvalidInputError{Field: "search query", Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

// Search returns the transactions whose category or description contains query,
// ignoring case. An empty query matches nothing.
func Search(query string, txs []Transaction) []Transaction {
	var found []Transaction
	if query == "" {
		return found
	}
	fold := cases.Fold()
	needle := fold.String(query)
	for _, t := range txs {
		if containsFolded(fold, t.Category, needle) || containsFolded(fold, t.Description, needle) {
			found = append(found, t)
		}
	}
	return found
}

func containsFolded(fold cases.Caser, field, needle string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(fold.String(field), needle)
}
