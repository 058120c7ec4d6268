package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"page-insight/internal/handler/http/respond"
)

// MsgRequestTimeout is the body message of a 504 written by Timeout.
const MsgRequestTimeout = "request timeout"

// Timeout returns middleware that bounds a request to duration. The handler
// runs in its own goroutine with a deadline-carrying context; if it has not
// finished when the deadline passes, 504 is written and later writes by the
// handler are discarded.
//
// Headers set by the handler are buffered until it writes, so the timeout
// response never races with them. A panic in the handler is re-raised on the
// serving goroutine so Recover still sees it.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			panicChan := make(chan any, 1)
			tw := &timeoutResponseWriter{
				w:      w,
				header: make(http.Header),
			}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicChan:
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				if !tw.wroteHeader {
					tw.flushHeader(http.StatusOK)
				}
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.wroteHeader {
					respond.Message(w, http.StatusGatewayTimeout, MsgRequestTimeout)
				}
			}
		})
	}
}

// timeoutResponseWriter serializes handler writes with the timeout response.
type timeoutResponseWriter struct {
	w      http.ResponseWriter
	header http.Header

	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
}

func (tw *timeoutResponseWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutResponseWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.flushHeader(statusCode)
}

func (tw *timeoutResponseWriter) Write(data []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.flushHeader(http.StatusOK)
	}
	return tw.w.Write(data)
}

// flushHeader copies buffered headers and sends the status. mu must be held.
func (tw *timeoutResponseWriter) flushHeader(statusCode int) {
	dst := tw.w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
	tw.wroteHeader = true
	tw.w.WriteHeader(statusCode)
}
