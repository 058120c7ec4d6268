// Package main provides the pageinsight command line tool.
//
// Usage:
//
//	pageinsight analyze [--mode body|article] [--parallel N] [--output text|json] URL...
//	pageinsight compress [--level N] [--output text|json] [FILE]
//
// compress reads standard input when FILE is omitted or "-".
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"page-insight/internal/observability/logging"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "analyze":
		return runAnalyze(ctx, args[1:], stdout, stderr)
	case "compress":
		return runCompress(ctx, args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pageinsight analyze [--mode body|article] [--parallel N] [--output text|json] URL...")
	fmt.Fprintln(w, "  pageinsight compress [--level N] [--output text|json] [FILE]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  pageinsight analyze https://go.dev/blog/")
	fmt.Fprintln(w, "  pageinsight analyze --mode article --output json https://a.example https://b.example")
	fmt.Fprintln(w, "  pageinsight compress --level 4 notes.txt")
	fmt.Fprintln(w, "  curl -s https://example.com/post.txt | pageinsight compress --level 3")
}

// newLogger returns a stderr logger. Only warnings are shown unless verbose.
func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: logging.FormatText,
		Output: stderr,
	})
}

func validOutput(format string) bool {
	return format == outputText || format == outputJSON
}
