package compress

import (
	"net/http"
	"time"

	httpx "page-insight/internal/handler/http"
)

// Path is the route of the compression endpoint.
const Path = "/api/compress"

// Register mounts the compression handler on mux. A positive timeout bounds
// each request.
func Register(mux *http.ServeMux, svc Compressor, timeout time.Duration) {
	var h http.Handler = Handler{Svc: svc}
	if timeout > 0 {
		h = httpx.Timeout(timeout)(h)
	}
	mux.Handle(Path, h)
}
