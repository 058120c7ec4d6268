// Package compress provides the HTTP handler for text compression.
package compress

import "page-insight/internal/domain/entity"

// Request is the body of POST /api/compress. Level may be sent as a number
// or a numeric string.
type Request struct {
	Text  string                  `json:"text"`
	Level entity.CompressionLevel `json:"level"`
}
