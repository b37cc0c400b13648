package utils

import "github.com/microcosm-cc/bluemonday"

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from client-supplied profile text such as
// nicknames before it is stored.
func SanitizeText(s string) string {
	return strictPolicy.Sanitize(s)
}
