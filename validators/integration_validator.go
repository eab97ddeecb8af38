package validators

import (
	"regexp"
)

var integrationPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateIntegrationType validates the integration path segment of the cart and
// checkout pages, e.g. "dropin", "card" or "klarna_paynow".
func ValidateIntegrationType(integration string) bool {
	return integrationPattern.MatchString(integration)
}

// MaskSecret masks all but the last 4 characters of a key for logging.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
