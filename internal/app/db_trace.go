package app

import "strings"

// Keeps traced SQL readable without blowing up span payloads.
const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace runs to single spaces and
// truncates long statements before they land on a span.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
