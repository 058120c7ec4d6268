// Package analyze provides the HTTP handler for page analysis.
package analyze

// Request is the body of POST /api/analyze.
type Request struct {
	URL  string `json:"url"`
	Mode string `json:"mode,omitempty"`
}
