// Package analyze implements the page-analysis pipeline: fetch a page, pick
// the text to analyze, tokenize it, drop stopwords and short tokens, and rank
// the top 1-, 2- and 3-grams into a report.
package analyze

import "errors"

// Sentinel errors for page fetching. Fetcher implementations wrap these so
// callers can tell failure modes apart with errors.Is.
var (
	// ErrInvalidURL indicates the URL is malformed or uses a scheme other
	// than http or https.
	//
	// Example:
	//   - "not-a-url" → ErrInvalidURL
	//   - "file:///etc/passwd" → ErrInvalidURL
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a loopback, private or
	// link-local address (SSRF prevention).
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrUpstreamStatus indicates the page answered with a non-2xx status.
	ErrUpstreamStatus = errors.New("unexpected upstream status")

	// ErrExtractionFailed indicates the HTML could not be parsed or the
	// article text could not be extracted.
	ErrExtractionFailed = errors.New("content extraction failed")

	// ErrFetchFailed wraps every failure of Service.Analyze after input
	// validation. The HTTP layer maps it to a generic 500 message.
	ErrFetchFailed = errors.New("failed to analyze page")
)
