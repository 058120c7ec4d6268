// Package fetcher downloads web pages for analysis and extracts their title,
// description, headings, body text and, on request, main article text.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"

	"page-insight/internal/domain/entity"
	"page-insight/internal/observability/metrics"
	"page-insight/internal/observability/tracing"
	"page-insight/internal/resilience/circuitbreaker"
	"page-insight/internal/resilience/retry"
	"page-insight/internal/usecase/analyze"
	"page-insight/internal/utils/text"
)

// PageFetcher implements analyze.PageFetcher over HTTP.
//
// Every request goes through URL validation (SSRF prevention), a retry loop
// with exponential backoff and a circuit breaker. Response bodies are capped
// at MaxBodySize. PageFetcher is safe for concurrent use.
type PageFetcher struct {
	client   *http.Client
	breaker  *circuitbreaker.CircuitBreaker
	retryCfg retry.Config
	config   PageFetchConfig
}

// download is the raw result of one successful HTTP exchange.
type download struct {
	body     []byte
	finalURL *url.URL
}

// NewPageFetcher creates a PageFetcher with the page-fetch breaker and retry
// presets.
func NewPageFetcher(cfg PageFetchConfig) *PageFetcher {
	return NewPageFetcherWithResilience(cfg, circuitbreaker.PageFetchConfig(), retry.PageFetchConfig())
}

// NewPageFetcherWithResilience creates a PageFetcher with explicit breaker
// and retry settings. Breaker state changes are exported as a metric.
//
// Failures that describe the target rather than the network (4xx status,
// oversized body, redirect loops, private addresses) do not count against
// the breaker.
func NewPageFetcherWithResilience(cfg PageFetchConfig, cbCfg circuitbreaker.Config, retryCfg retry.Config) *PageFetcher {
	cbCfg.IsSuccessful = func(err error) bool {
		return err == nil || isTargetError(err)
	}
	cbCfg.OnStateChange = func(name string, _, to gobreaker.State) {
		metrics.SetCircuitBreakerState(name, to)
	}

	f := &PageFetcher{
		breaker:  circuitbreaker.New(cbCfg),
		retryCfg: retryCfg,
		config:   cfg,
	}
	metrics.SetCircuitBreakerState(cbCfg.Name, gobreaker.StateClosed)

	f.client = &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", analyze.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.Context(), req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return f
}

// Breaker exposes the circuit breaker for health reporting.
func (f *PageFetcher) Breaker() *circuitbreaker.CircuitBreaker {
	return f.breaker
}

// Fetch downloads rawURL and extracts its page data. In entity.ModeArticle
// the readability article text is extracted as well; when that fails the
// page is still returned and analysis falls back to the body text.
//
// The URL only reaches logs and spans with its credentials and secret query
// parameters masked.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string, mode entity.AnalysisMode) (page *entity.Page, err error) {
	logURL := text.MaskSecrets(rawURL)
	ctx, span := tracing.StartSpan(ctx, "fetch.page",
		attribute.String("http.url", logURL),
		attribute.String("analyze.mode", string(mode)))
	defer span.End()

	start := time.Now()
	var size int
	defer func() {
		metrics.RecordPageFetch(time.Since(start), size, err == nil)
		tracing.RecordError(span, err)
	}()

	if err := validateURL(ctx, rawURL, f.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	var dl *download
	err = retry.WithBackoff(ctx, f.retryCfg, func(attempt int) error {
		span.SetAttributes(attribute.Int("fetch.attempt", attempt))
		result, cbErr := f.breaker.Execute(func() (any, error) {
			return f.doFetch(ctx, rawURL)
		})
		if cbErr != nil {
			if circuitbreaker.IsRejected(cbErr) {
				slog.WarnContext(ctx, "page fetch circuit breaker rejected request",
					slog.String("url", logURL),
					slog.String("state", f.breaker.State().String()))
			}
			return cbErr
		}
		dl = result.(*download)
		return nil
	})
	if err != nil {
		return nil, err
	}
	size = len(dl.body)
	span.SetAttributes(attribute.Int("http.response_content_length", size))

	page, err = ExtractPage(bytes.NewReader(dl.body), rawURL)
	if err != nil {
		return nil, err
	}

	if mode == entity.ModeArticle {
		article, artErr := ExtractArticle(bytes.NewReader(dl.body), dl.finalURL)
		if artErr != nil {
			slog.DebugContext(ctx, "article extraction failed, using body text",
				slog.String("url", logURL),
				slog.String("error", text.MaskError(artErr)))
		} else {
			page.ArticleText = article
		}
	}

	return page, nil
}

// doFetch performs one HTTP request and reads the capped body.
func (f *PageFetcher) doFetch(ctx context.Context, urlStr string) (*download, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", analyze.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		// only this attempt's deadline passed; the caller is still waiting
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %w: request exceeded %v",
				analyze.ErrTimeout, retry.ErrAttemptTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && isTargetError(urlErr.Err) {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", analyze.ErrUpstreamStatus, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response exceeds limit of %d bytes",
			analyze.ErrBodyTooLarge, f.config.MaxBodySize)
	}

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	return &download{body: body, finalURL: final}, nil
}

// isTargetError reports whether err describes the requested page rather
// than the health of the outbound network.
func isTargetError(err error) bool {
	if errors.Is(err, analyze.ErrInvalidURL) ||
		errors.Is(err, analyze.ErrPrivateIP) ||
		errors.Is(err, analyze.ErrTooManyRedirects) ||
		errors.Is(err, analyze.ErrBodyTooLarge) {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 && !httpErr.Retryable()
	}
	return false
}
