package cms

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer reduces CMS text to plain text. Templates escape it again on
// output, so entities produced by the policy are decoded here.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with the strict policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text strips all markup from s.
func (s *Sanitizer) Text(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// Paragraphs strips markup line by line so paragraph breaks survive.
func (s *Sanitizer) Paragraphs(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = s.Text(line)
	}
	return strings.Join(lines, "\n")
}
