package utils

import "strings"

// NormalizeTags trims whitespace, drops empty entries and removes duplicates
// while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma separated tag string into normalized tags, the
// format older clients send instead of a JSON array.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}
