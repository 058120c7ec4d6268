// Package pathutil maps request paths to bounded metric labels.
package pathutil

import (
	"strings"
)

// OtherPath is the label for any path that is not a registered route.
const OtherPath = "/other"

// knownPaths are the routes served by the API. Anything else, including
// scanner noise like /wp-login.php, collapses into OtherPath.
var knownPaths = map[string]struct{}{
	"/":             {},
	"/api/analyze":  {},
	"/api/compress": {},
	"/health":       {},
	"/live":         {},
	"/ready":        {},
	"/metrics":      {},
}

// NormalizePath returns the route label for path, keeping the metrics label
// set fixed regardless of what clients request.
//
//	NormalizePath("/api/analyze")         // "/api/analyze"
//	NormalizePath("/api/analyze/")        // "/api/analyze"
//	NormalizePath("/health?verbose=1")    // "/health"
//	NormalizePath("/API/Analyze")         // "/other"
//	NormalizePath("/articles/123")        // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if path == "" {
		path = "/"
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}
	return OtherPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath
// can produce.
func GetExpectedCardinality() int {
	return len(knownPaths) + 1
}
