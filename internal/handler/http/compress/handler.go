package compress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"page-insight/internal/domain/entity"
	"page-insight/internal/handler/http/respond"
)

// User-facing messages.
const (
	MsgCompressionFailed = "Compression failed"
	MsgInvalidJSON       = "Invalid JSON body"
	MsgBodyTooLarge      = "Request body too large"
)

// Compressor summarizes text at a compression level.
type Compressor interface {
	Compress(ctx context.Context, input string, level entity.CompressionLevel) (*entity.CompressionResult, error)
}

// Handler serves POST /api/compress.
type Handler struct{ Svc Compressor }

// ServeHTTP compresses the submitted text. Empty text is 400
// "Text is required"; any failure of the summarizer is 500
// "Compression failed".
//
// @Summary      Compress text
// @Description  Summarizes the text by extracting its highest scoring sentences at the requested level
// @Tags         compress
// @Accept       json
// @Produce      json
// @Param        request body Request true "Text to compress and optional level"
// @Success      200 {object} entity.CompressionResult
// @Header       200 {integer} X-RateLimit-Limit "Maximum burst of requests allowed per client"
// @Header       200 {integer} X-RateLimit-Remaining "Whole tokens left after this request"
// @Failure      400 {object} map[string]string "Text is required, or the body or level is invalid"
// @Failure      405 {object} map[string]string "Method not allowed"
// @Failure      413 {object} map[string]string "Request body too large"
// @Failure      429 {object} map[string]string "Too many requests - rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} map[string]string "Compression failed"
// @Router       /api/compress [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		respond.MethodNotAllowed(w, http.MethodPost, http.MethodOptions)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Message(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		respond.Message(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	result, err := h.Svc.Compress(r.Context(), req.Text, req.Level)
	if err != nil {
		if ve, ok := entity.IsValidation(err); ok {
			respond.Message(w, http.StatusBadRequest, ve.Message)
			return
		}
		respond.AppErrorResponse(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, MsgCompressionFailed, err))
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
