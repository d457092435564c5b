package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Limits on a submitted filter selection.
const (
	MaxFilterValues = 200
	MaxValueLength  = 200
)

// ValidateFilterValues checks one filter's submitted values. field names the
// filter in the returned message.
func ValidateFilterValues(field string, values []string) (bool, string) {
	if len(values) > MaxFilterValues {
		return false, fmt.Sprintf("Too many %s values (max %d)", field, MaxFilterValues)
	}
	for _, v := range values {
		if len(v) > MaxValueLength {
			return false, fmt.Sprintf("%s value is too long (max %d bytes)", field, MaxValueLength)
		}
		if !utf8.ValidString(v) {
			return false, fmt.Sprintf("%s value is not valid UTF-8", field)
		}
	}
	return true, ""
}

// ValidateSelection checks both filters of a selection.
func ValidateSelection(activities, intensities []string) (bool, string) {
	if ok, msg := ValidateFilterValues("activity", activities); !ok {
		return false, msg
	}
	return ValidateFilterValues("intensity", intensities)
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// IsLocalPath reports whether target is a same-site path, safe to redirect
// to after login.
func IsLocalPath(target string) bool {
	if target == "" || !strings.HasPrefix(target, "/") {
		return false
	}
	// "//host" and "/\host" are treated as absolute by browsers.
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	return true
}
