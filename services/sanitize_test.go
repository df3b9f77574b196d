package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRichText(t *testing.T) {
	// Script tags are stripped, basic formatting survives
	out := SanitizeRichText(`<p>Hello</p><script>alert("x")</script>`)
	assert.Contains(t, out, "<p>Hello</p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")

	// Event handlers are stripped
	out = SanitizeRichText(`<a href="https://example.com" onclick="steal()">link</a>`)
	assert.NotContains(t, out, "onclick")

	assert.Equal(t, "plain notes", SanitizeRichText("  plain notes  "))
}
