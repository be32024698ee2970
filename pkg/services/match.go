package services

import "strings"

// FindBestMatch returns the first candidate whose name matches the query by
// case-insensitive substring containment in either direction. First match
// wins; there is no ranking. Returns ("", false) when nothing matches.
//
// The model often passes a college name spelled slightly differently than
// what was stored at add-time ("stanford" vs "Stanford University"), so
// exact lookups fall back to this scan.
func FindBestMatch(query string, candidates []string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	for _, candidate := range candidates {
		c := strings.ToLower(strings.TrimSpace(candidate))
		if c == "" {
			continue
		}
		if strings.Contains(c, q) || strings.Contains(q, c) {
			return candidate, true
		}
	}

	return "", false
}
