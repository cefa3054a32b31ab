// Package htmlsanitize strips unsafe markup from free-text fields before they
// are stored. Scraped descriptions often carry HTML fragments; plain text is
// passed through untouched so characters like "&" are not entity-escaped.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func ugc() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// Sanitize runs s through the user-generated-content policy: formatting,
// lists, tables and safe links survive; scripts, styles, iframes and event
// handlers do not.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc().Sanitize(s)
}

// IsPlainText reports whether s contains no markup at all.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<")
}

// Clean sanitizes s only when it carries markup.
func Clean(s string) string {
	if IsPlainText(s) {
		return s
	}
	return strings.TrimSpace(Sanitize(s))
}
