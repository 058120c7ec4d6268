package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"page-insight/internal/config"
	"page-insight/internal/domain/entity"
	"page-insight/internal/infra/fetcher"
	"page-insight/internal/usecase/analyze"
	"page-insight/internal/utils/text"
)

// analyzeOutput is one element of the JSON output of analyze.
type analyzeOutput struct {
	URL    string             `json:"url"`
	Report *entity.PageReport `json:"report,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func runAnalyze(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		mode         string
		parallel     int
		outputFormat string
		verbose      bool
	)
	fs.StringVar(&mode, "mode", string(entity.ModeBody), "Text to analyze: body or article")
	fs.IntVar(&parallel, "parallel", 0, "Maximum pages fetched at once (default PAGE_FETCH_PARALLELISM)")
	fs.StringVar(&outputFormat, "output", outputText, "Output format: text or json")
	fs.BoolVar(&verbose, "v", false, "Verbose logging to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	urls := fs.Args()
	if len(urls) == 0 {
		fmt.Fprintln(stderr, "Error: at least one URL is required")
		return exitUsage
	}
	for _, u := range urls {
		if err := entity.ValidateURL(u); err != nil {
			if vErr, ok := entity.IsValidation(err); ok {
				fmt.Fprintf(stderr, "Error: %s: %s\n", text.MaskSecrets(u), vErr.Message)
			}
			return exitUsage
		}
	}
	analysisMode, err := entity.ParseAnalysisMode(mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if !validOutput(outputFormat) {
		fmt.Fprintf(stderr, "Error: unsupported output format %q\n", outputFormat)
		return exitUsage
	}

	logger := newLogger(stderr, verbose)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load configuration: %v\n", err)
		return exitFailure
	}
	if parallel <= 0 {
		parallel = cfg.Fetch.Parallelism
	}

	svc := analyze.NewService(fetcher.NewPageFetcher(cfg.Fetch), parallel)

	logger.Debug("analyzing pages",
		slog.Int("urls", len(urls)),
		slog.String("mode", string(analysisMode)),
		slog.Int("parallel", parallel))

	results := svc.AnalyzeBatch(ctx, urls, analysisMode)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			logger.Debug("page analysis failed",
				slog.String("url", text.MaskSecrets(res.URL)),
				slog.String("error", text.MaskError(res.Err)))
		}
	}

	if outputFormat == outputJSON {
		out := make([]analyzeOutput, len(results))
		for i, res := range results {
			out[i] = analyzeOutput{URL: res.URL, Report: res.Report}
			if res.Err != nil {
				out[i].Error = res.Err.Error()
			}
		}
		if err := writeJSON(stdout, out); err != nil {
			fmt.Fprintf(stderr, "Error: failed to encode JSON: %v\n", err)
			return exitFailure
		}
	} else {
		r := newRenderer(stdout)
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			if res.Err != nil {
				r.failure(res.URL, res.Err)
				continue
			}
			r.report(res.Report)
		}
	}

	if failed > 0 {
		return exitFailure
	}
	return exitOK
}
