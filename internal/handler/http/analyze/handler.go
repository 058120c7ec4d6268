package analyze

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
	MsgAnalyzeFailed = "Failed to analyze URL. Please check the URL and try again."
	MsgInvalidJSON   = "Invalid JSON body"
	MsgBodyTooLarge  = "Request body too large"
)

// Analyzer runs the page-analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string, mode entity.AnalysisMode) (*entity.PageReport, error)
}

// Handler serves POST /api/analyze.
type Handler struct{ Svc Analyzer }

// ServeHTTP analyzes the requested page.
//
// A missing url (or an empty body) is 400 "URL is required" and an unknown
// mode is 400 as well. Any fetch or extraction failure is 500 with a generic
// message; the detail is only logged. OPTIONS is answered with 204 and any
// other method other than POST with 405.
//
// @Summary      Analyze a web page
// @Description  Fetches the page and reports its title, headings, word count, readability and top n-grams
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body Request true "URL to analyze and optional mode (body or article)"
// @Success      200 {object} entity.PageReport
// @Header       200 {integer} X-RateLimit-Limit "Maximum burst of requests allowed per client"
// @Header       200 {integer} X-RateLimit-Remaining "Whole tokens left after this request"
// @Failure      400 {object} map[string]string "URL is required, or the body or mode is invalid"
// @Failure      405 {object} map[string]string "Method not allowed"
// @Failure      413 {object} map[string]string "Request body too large"
// @Failure      429 {object} map[string]string "Too many requests - rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} map[string]string "Failed to analyze URL"
// @Router       /api/analyze [post]
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

	report, err := h.Svc.Analyze(r.Context(), req.URL, entity.AnalysisMode(req.Mode))
	if err != nil {
		if ve, ok := entity.IsValidation(err); ok {
			respond.Message(w, http.StatusBadRequest, ve.Message)
			return
		}
		respond.AppErrorResponse(w, r, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, MsgAnalyzeFailed, err))
		return
	}

	respond.JSON(w, http.StatusOK, report)
}
