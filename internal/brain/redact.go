package brain

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\- ()]{7,}\d`)
)

// redactPII masks email addresses and phone numbers so they never reach the
// AI provider. Short numbers like temperatures are left alone.
func redactPII(text string) string {
	text = emailRe.ReplaceAllString(text, "[redacted email]")
	text = phoneRe.ReplaceAllString(text, "[redacted phone]")
	return strings.TrimSpace(text)
}
