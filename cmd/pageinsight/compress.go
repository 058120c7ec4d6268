package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"page-insight/internal/domain/entity"
	"page-insight/internal/textanalysis"
	"page-insight/internal/usecase/compress"
)

// maxInputBytes caps the text read by compress.
const maxInputBytes = 10 << 20

var errInputTooLarge = fmt.Errorf("input exceeds %d bytes", maxInputBytes)

func runCompress(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("compress", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		level        string
		outputFormat string
	)
	fs.StringVar(&level, "level", "1", "Compression level 1 (keep all) to 5 (keep ~10%)")
	fs.StringVar(&outputFormat, "output", outputText, "Output format: text or json")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "Error: at most one input file may be given")
		return exitUsage
	}
	if !validOutput(outputFormat) {
		fmt.Fprintf(stderr, "Error: unsupported output format %q\n", outputFormat)
		return exitUsage
	}

	input, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	lvl := entity.CompressionLevel(textanalysis.ParseLevel(level))
	svc := compress.NewService(textanalysis.FrequencySummarizer{})
	result, err := svc.Compress(ctx, input, lvl)
	if err != nil {
		if vErr, ok := entity.IsValidation(err); ok {
			fmt.Fprintf(stderr, "Error: %s\n", vErr.Message)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitFailure
	}

	if outputFormat == outputJSON {
		if err := writeJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, "Error: failed to encode JSON: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	newRenderer(stdout).compression(lvl, result)
	return exitOK
}

// readInput reads path, or r when path is empty or "-".
func readInput(path string, r io.Reader) (string, error) {
	if path != "" && path != "-" {
		// #nosec G304 -- path is a command line argument
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", errInputTooLarge
	}
	return string(data), nil
}
