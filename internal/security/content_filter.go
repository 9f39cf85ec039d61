package security

import (
	"log"
	"regexp"
	"strings"
)

// Violation categorizes why the content filter intervened.
type Violation string

const (
	ViolationNone         Violation = "none"
	ViolationProfanity    Violation = "profanity"
	ViolationHarmful      Violation = "harmful_content"
	ViolationPersonalInfo Violation = "personal_info"
	ViolationSpam         Violation = "spam"
)

var profanityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(damn|hell|crap|stupid|idiot|moron)\b`),
	regexp.MustCompile(`(?i)\b(hate|kill|die|murder|violence)\b`),
	regexp.MustCompile(`(?i)\b(sex|porn|adult|explicit)\b`),
}

var harmfulKeywords = []string{
	"bomb", "weapon", "drug", "illegal", "hack", "exploit", "virus",
	"malware", "scam", "fraud", "steal", "piracy", "terrorism",
}

// PII is redacted rather than blocked: SSN, credit card, email, phone.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
}

var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(buy now|click here|free money|get rich|lottery|winner)\b`),
	regexp.MustCompile(`(?i)\b(viagra|cialis)\b`),
	regexp.MustCompile(`(?i)\b(urgent|limited time|act now|don't wait)\b`),
}

// FilterResult carries the filtering decision and the processed content.
type FilterResult struct {
	Blocked         bool
	Reason          string
	FilteredContent string
	Violation       Violation
}

// ContentFilter screens requests and model responses for inappropriate
// material. Profanity, harmful keywords and spam block the content; personal
// information is redacted and allowed through.
type ContentFilter struct {
	logger *log.Logger
}

func NewContentFilter(logger *log.Logger) *ContentFilter {
	return &ContentFilter{logger: logger}
}

// Filter runs every check in order and returns the first blocking result.
func (f *ContentFilter) Filter(content string) FilterResult {
	if strings.TrimSpace(content) == "" {
		return FilterResult{Reason: "content is empty", FilteredContent: content, Violation: ViolationNone}
	}

	for _, pattern := range profanityPatterns {
		if pattern.MatchString(content) {
			f.logger.Println("profanity detected in content")
			return FilterResult{
				Blocked:         true,
				Reason:          "content contains inappropriate language",
				FilteredContent: pattern.ReplaceAllString(content, "***"),
				Violation:       ViolationProfanity,
			}
		}
	}

	lower := strings.ToLower(content)
	for _, keyword := range harmfulKeywords {
		if strings.Contains(lower, keyword) {
			f.logger.Printf("harmful content detected: %s", keyword)
			return FilterResult{
				Blocked:         true,
				Reason:          "content contains potentially harmful material: " + keyword,
				FilteredContent: content,
				Violation:       ViolationHarmful,
			}
		}
	}

	filtered := content
	foundPII := false
	for _, pattern := range piiPatterns {
		if pattern.MatchString(filtered) {
			filtered = pattern.ReplaceAllString(filtered, "[REDACTED]")
			foundPII = true
		}
	}
	if foundPII {
		f.logger.Println("personal information redacted from content")
		return FilterResult{
			Reason:          "personal information redacted from content",
			FilteredContent: filtered,
			Violation:       ViolationPersonalInfo,
		}
	}

	for _, pattern := range spamPatterns {
		if pattern.MatchString(content) {
			f.logger.Println("spam-like content detected")
			return FilterResult{
				Blocked:         true,
				Reason:          "content appears to be spam or promotional material",
				FilteredContent: content,
				Violation:       ViolationSpam,
			}
		}
	}

	return FilterResult{Reason: "content approved", FilteredContent: content, Violation: ViolationNone}
}

// IsContentSafe reports whether content passes the blocking checks. Redacted
// personal information still counts as safe.
func (f *ContentFilter) IsContentSafe(content string) bool {
	if strings.TrimSpace(content) == "" {
		return true
	}
	result := f.Filter(content)
	return !result.Blocked || result.Violation == ViolationPersonalInfo
}
