package analyzer

import (
	"net/url"
	"strings"

	"github.com/sitegrade/sitegrade/internal/core"
)

// Hosts rejected as analysis targets. Keeps the fetcher from being
// pointed at local services.
var blockedHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
}

// NormalizeURL validates and canonicalizes user input into a fetchable
// absolute URL. Inputs without a scheme get https:// prepended; the
// operation is idempotent.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &core.ValidationError{Reason: "url is required"}
	}

	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Hostname() == "" {
		return "", &core.ValidationError{Reason: "invalid URL, example: https://example.com"}
	}

	if blockedHosts[strings.ToLower(u.Hostname())] {
		return "", &core.ValidationError{Reason: "host not allowed"}
	}

	return u.String(), nil
}
