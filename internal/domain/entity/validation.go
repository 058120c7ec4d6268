package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// Messages returned to clients for missing required fields.
const (
	MsgURLRequired  = "URL is required"
	MsgTextRequired = "Text is required"
)

// ValidateURLPresent reports a ValidationError when rawURL is empty.
func ValidateURLPresent(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: MsgURLRequired}
	}
	return nil
}

// ValidateURL validates the format of a URL.
// It checks that the URL is present, not overly long, well-formed, uses the
// http or https scheme and has a host. Network-level checks (private
// addresses, redirects) belong to the fetcher.
func ValidateURL(rawURL string) error {
	if err := ValidateURLPresent(rawURL); err != nil {
		return err
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "url is malformed"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// ValidateText reports a ValidationError when text is empty. Whitespace-only
// text is accepted and compresses to itself.
func ValidateText(text string) error {
	if text == "" {
		return &ValidationError{Field: "text", Message: MsgTextRequired}
	}
	return nil
}
