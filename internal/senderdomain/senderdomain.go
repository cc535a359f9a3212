package senderdomain

import (
	"regexp"
	"strings"

	"github.com/mikey/email-sentiment/internal/core"
	"go.uber.org/zap"
)

// domainPattern matches "@" followed by a dot-segmented hostname token
var domainPattern = regexp.MustCompile(`@([\w.-]+)`)

// Extract returns the sender domain of a From header value, keeping its case.
// Headers without a match yield core.UnknownDomain.
func Extract(from string) string {
	match := domainPattern.FindStringSubmatch(from)
	if match == nil {
		return core.UnknownDomain
	}
	return match[1]
}

// Normalize reduces an email address to its domain. Other input is only trimmed.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "@") {
		return input
	}
	if match := domainPattern.FindStringSubmatch(input); match != nil {
		return match[1]
	}
	return input
}

// Matcher resolves user input to one of the known snapshot domains
type Matcher struct {
	domains []string
	logger  *zap.Logger
}

// NewMatcher creates a matcher over the given domains
func NewMatcher(domains []string, logger *zap.Logger) *Matcher {
	trimmed := make([]string, 0, len(domains))
	for _, domain := range domains {
		trimmed = append(trimmed, strings.TrimSpace(domain))
	}

	return &Matcher{
		domains: trimmed,
		logger:  logger,
	}
}

// Resolve returns the known domain matching input, which may be a domain or an address.
// An exact match wins; otherwise the first case-insensitive match is used.
func (m *Matcher) Resolve(input string) (string, bool) {
	input = Normalize(input)
	if input == "" {
		return "", false
	}

	for _, domain := range m.domains {
		if domain == input {
			return domain, true
		}
	}

	for _, domain := range m.domains {
		if strings.EqualFold(domain, input) {
			if m.logger != nil {
				m.logger.Debug("Resolved domain case-insensitively",
					zap.String("input", input),
					zap.String("domain", domain))
			}
			return domain, true
		}
	}

	return "", false
}
