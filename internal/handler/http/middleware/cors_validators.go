package middleware

import (
	"strings"
)

// WhitelistValidator allows an exact set of origins. Comparison is
// case-insensitive and ignores a trailing slash.
//
//	validator := NewWhitelistValidator([]string{"http://localhost:3000"})
//	validator.IsAllowed("http://localhost:3000") // true
//	validator.IsAllowed("http://malicious.com")  // false
type WhitelistValidator struct {
	allowed map[string]struct{}
}

// NewWhitelistValidator creates a WhitelistValidator. Empty entries are ignored.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin = normalizeOrigin(origin); origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	return &WhitelistValidator{allowed: allowed}
}

// IsAllowed implements OriginValidator.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	_, ok := v.allowed[origin]
	return ok
}

// AllowedOrigins returns the normalized whitelist in no particular order.
func (v *WhitelistValidator) AllowedOrigins() []string {
	out := make([]string, 0, len(v.allowed))
	for origin := range v.allowed {
		out = append(out, origin)
	}
	return out
}

// WildcardValidator allows every non-empty origin.
type WildcardValidator struct{}

// IsAllowed implements OriginValidator.
func (WildcardValidator) IsAllowed(origin string) bool {
	return origin != ""
}

// AllowsAll reports that "*" may be sent as the allowed origin.
func (WildcardValidator) AllowsAll() bool { return true }

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}
