package prediction

import "strings"

const (
	SymptomTenderBreasts = "tender breasts"
	SymptomBloating      = "bloating"
)

// SymptomLogEntry is a single historical mood or symptom record.
type SymptomLogEntry struct {
	Label string
}

// AdjustmentDays returns how many days earlier every projected period start
// is expected. Tender breasts outrank bloating; adjustments never stack.
func AdjustmentDays(entries []SymptomLogEntry) int {
	hasBloating := false
	for _, entry := range entries {
		switch normalizeSymptomLabel(entry.Label) {
		case SymptomTenderBreasts:
			return 2
		case SymptomBloating:
			hasBloating = true
		}
	}
	if hasBloating {
		return 1
	}
	return 0
}

func EntriesFromLabels(labels []string) []SymptomLogEntry {
	entries := make([]SymptomLogEntry, 0, len(labels))
	for _, label := range labels {
		entries = append(entries, SymptomLogEntry{Label: label})
	}
	return entries
}

func normalizeSymptomLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
