package main

import "strings"

// InferDisplayType guesses a display type from a data-record key name. It is
// only consulted when a field or column is created from a segment mapping;
// manually created fields default to text. The checks run in a fixed
// priority order and the first match wins, so re-running on the same key is
// deterministic. This is a heuristic: it never fails and always returns one
// of the five display types.
func InferDisplayType(key string) string {
	k := strings.ToLower(key)

	if strings.Contains(k, "date") {
		return DisplayTypeDate
	}
	if strings.Contains(k, "amount") || strings.Contains(k, "price") ||
		strings.Contains(k, "total") || strings.Contains(k, "cost") {
		return DisplayTypeCurrency
	}
	// PO numbers are identifiers, not quantities, so "po_number" is carved
	// out of the "number" match.
	if strings.Contains(k, "quantity") || strings.Contains(k, "count") ||
		(strings.Contains(k, "number") && !strings.Contains(k, "po_number")) {
		return DisplayTypeNumber
	}
	if strings.Contains(k, "status") {
		return DisplayTypeStatus
	}
	return DisplayTypeText
}
