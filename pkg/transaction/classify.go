package transaction

import "regexp"

// TransfersCategory is the export's label for money transfers.
const TransfersCategory = "Переводы"

// personNamePattern matches an abbreviated personal name such as "Иванов И.".
// Exports often put a non-breaking space before the initial.
var personNamePattern = regexp.MustCompile(`[А-Яа-яЁё]+[\s\x{00a0}][А-Яа-яЁё]\.`)

// IsPhysicalTransfer reports whether t is a transfer to a private person.
func IsPhysicalTransfer(t Transaction) bool {
	return t.Category == TransfersCategory && personNamePattern.MatchString(t.Description)
}

// FindPhysicalTransfers returns the transfers whose description names a person.
func FindPhysicalTransfers(txs []Transaction) []Transaction {
	var found []Transaction
	for _, t := range txs {
		if IsPhysicalTransfer(t) {
			found = append(found, t)
		}
	}
	return found
}
