package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// richTextPolicy allows basic formatting in free-text fields (client notes,
// case descriptions) while stripping scripts and event handlers.
var richTextPolicy = bluemonday.UGCPolicy()

// SanitizeRichText cleans user-supplied rich text before it is persisted.
func SanitizeRichText(input string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(input))
}
