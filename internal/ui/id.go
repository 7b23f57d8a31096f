package ui

// HighlightID returns an ID with its unique prefix highlighted.
func HighlightID(id string, prefixLen int) string {
	if id == "" {
		return id
	}
	if prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	if !ColorEnabled() {
		return id
	}
	return bold + fgCyan + id[:prefixLen] + reset + id[prefixLen:]
}

// ShortID cuts an ID for display, never shorter than its unique prefix.
func ShortID(id string, prefixLen, minLen int) string {
	n := max(prefixLen, minLen)
	if n <= 0 || n >= len(id) {
		return id
	}
	return id[:n]
}
