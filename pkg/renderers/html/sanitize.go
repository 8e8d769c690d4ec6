package html

import (
	stdhtml "html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessage strips markup from user facing messages, which may come from
// the submission endpoint. The entities bluemonday emits are decoded again
// because the template escapes on output.
func sanitizeMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(stdhtml.UnescapeString(messagePolicy.Sanitize(trimmed)))
}

func sanitizeMessages(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, message := range raw {
		if clean := sanitizeMessage(message); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
