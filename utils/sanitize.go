package utils

import "github.com/microcosm-cc/bluemonday"

var (
	// post bodies and descriptions keep basic formatting, links and images
	richText = bluemonday.UGCPolicy()
	// titles, quote text, tags and comments carry no markup at all
	plainText = bluemonday.StrictPolicy()
)

// Sanitize cleans rich HTML content down to the UGC policy.
func Sanitize(input string) string {
	return richText.Sanitize(input)
}

// SanitizePlain strips every tag, leaving text only.
func SanitizePlain(input string) string {
	return plainText.Sanitize(input)
}
