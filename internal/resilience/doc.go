// Package resilience groups the fault tolerance used around outbound page
// fetches.
//
//   - circuitbreaker: stops hammering a failing network once most recent
//     fetches have failed, and exposes its state to /health.
//   - retry: exponential backoff with jitter for transient failures
//     (timeouts, refused connections, 5xx, 408, 429).
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.PageFetchConfig())
//	err := retry.WithBackoff(ctx, retry.PageFetchConfig(), func(attempt int) error {
//	    _, err := cb.Execute(func() (any, error) {
//	        return fetchPage(ctx)
//	    })
//	    return err
//	})
package resilience
