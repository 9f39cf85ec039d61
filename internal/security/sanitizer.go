// Package security implements regex-list based input sanitization and content
// filtering applied before and after model invocations.
package security

import (
	"log"
	"regexp"
	"strings"

	"ai-tutorial/internal/apperrors"
)

// MaxInputLength caps user input to prevent resource exhaustion.
const MaxInputLength = 2000

// Patterns that indicate potential prompt injection attempts.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)ignore\s+(previous|all)\s+(instructions?|prompts?)`),
	regexp.MustCompile(`(?is)forget\s+(everything|all|previous)`),
	regexp.MustCompile(`(?is)new\s+(instructions?|prompts?)\s*:`),
	regexp.MustCompile(`(?is)system\s*:\s*you\s+are`),
	regexp.MustCompile(`(?is)assistant\s*:\s*`),
	regexp.MustCompile(`(?is)user\s*:\s*`),
	regexp.MustCompile(`(?is)\[\s*system\s*\]`),
	regexp.MustCompile(`(?is)\{\{.*system.*\}\}`),
	regexp.MustCompile(`(?is)act\s+as\s+(a\s+)?different`),
	regexp.MustCompile(`(?is)pretend\s+(you\s+are|to\s+be)`),
	regexp.MustCompile(`(?is)jailbreak`),
	regexp.MustCompile(`(?is)roleplay\s+as`),
}

// Keywords that may indicate injection attempts even without a pattern match.
var suspiciousKeywords = []string{
	"jailbreak", "dan mode", "developer mode", "god mode", "admin mode",
	"root access", "bypass", "override", "unrestricted", "uncensored",
}

var (
	specialChars   = regexp.MustCompile(`[{}\[\]<>$#@]`)
	multiSpace     = regexp.MustCompile(`\s+`)
	multiLineBreak = regexp.MustCompile(`\n{3,}`)
)

// Sanitizer validates and normalizes user input before it reaches the model.
type Sanitizer struct {
	logger *log.Logger
}

func NewSanitizer(logger *log.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Sanitize rejects input matching injection patterns or suspicious keywords,
// strips special characters and normalizes whitespace. The returned error is
// a SecurityError so the HTTP layer masks the detail.
func (s *Sanitizer) Sanitize(input string) (string, error) {
	if len(input) > MaxInputLength {
		s.logger.Printf("input exceeds maximum length: %d > %d", len(input), MaxInputLength)
		return "", apperrors.NewSecurityError("input exceeds maximum allowed length")
	}

	for _, pattern := range injectionPatterns {
		if pattern.MatchString(input) {
			s.logger.Printf("potential prompt injection detected with pattern: %s", pattern.String())
			return "", apperrors.NewSecurityError("input contains potentially dangerous injection patterns")
		}
	}

	lower := strings.ToLower(input)
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(lower, keyword) {
			s.logger.Printf("suspicious keyword detected: %s", keyword)
			return "", apperrors.NewSecurityError("input contains suspicious keywords that are not allowed")
		}
	}

	sanitized := specialChars.ReplaceAllString(input, "")
	sanitized = multiSpace.ReplaceAllString(sanitized, " ")
	sanitized = multiLineBreak.ReplaceAllString(sanitized, "\n\n")
	sanitized = strings.TrimSpace(sanitized)

	if sanitized == "" {
		return "", apperrors.NewSecurityError("input cannot be empty after sanitization")
	}
	return sanitized, nil
}

// IsInputSafe performs a read-only safety check without modifying the input.
func (s *Sanitizer) IsInputSafe(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	if len(input) > MaxInputLength {
		return false
	}
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(input) {
			return false
		}
	}
	lower := strings.ToLower(input)
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	return true
}

// SafeLogString truncates input so sensitive content does not land in logs.
func (s *Sanitizer) SafeLogString(input string) string {
	if len(input) <= 50 {
		return input
	}
	return input[:47] + "..."
}
