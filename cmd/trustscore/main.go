package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dnishkina/trustscore/internal/adapters"
	"github.com/dnishkina/trustscore/internal/config"
	"github.com/dnishkina/trustscore/internal/monitoring"
	"github.com/dnishkina/trustscore/internal/output"
	"github.com/dnishkina/trustscore/internal/pipeline"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <url-file> | serve\n", os.Args[0])
		os.Exit(1)
	}

	// Missing credentials abort before any repository is processed.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger.Logger)

	metrics := monitoring.NewMetrics()
	github := adapters.NewGitHubClient(adapters.ClientConfig{
		BaseURL:           cfg.GitHubAPIBaseURL,
		Token:             cfg.GitHubToken,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		RetryAttempts:     cfg.MaxRetryAttempts,
	}, metrics, logger)
	registry := adapters.NewRegistryClient(cfg.NPMRegistryURL, cfg.RequestTimeout, metrics)
	runner := pipeline.NewRunner(github, registry, logger, metrics)

	if os.Args[1] == "serve" {
		if err := runServe(cfg, runner, metrics, logger); err != nil {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runBatch(os.Args[1], runner, logger); err != nil {
		logger.Error("Scoring run failed", "error", err)
		os.Exit(1)
	}
}

// runBatch scores every URL in the input file, writing NDJSON rows to a
// sibling output file as each repository completes.
func runBatch(urlFile string, runner *pipeline.Runner, logger *monitoring.Logger) error {
	urls, err := readURLFile(urlFile)
	if err != nil {
		return err
	}

	sink, err := output.NewFileSink(outputPath(urlFile))
	if err != nil {
		return err
	}
	defer sink.Close()

	logger.Info("Starting scoring run", "url_file", urlFile, "urls", len(urls))

	ctx := context.Background()
	start := time.Now()
	if err := runner.Run(ctx, urls, sink); err != nil {
		return err
	}

	logger.Info("Scoring run finished", "urls", len(urls), "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// readURLFile reads one repository URL per line; blank lines are ignored.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open url file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url file: %w", err)
	}

	return urls, nil
}

// outputPath derives the sibling NDJSON file the reports are appended to.
func outputPath(urlFile string) string {
	return urlFile + ".ndjson"
}

// buildLogger constructs the process logger, honoring LOG_FILE and
// LOG_LEVEL. The returned closer is a no-op when logging to stderr.
func buildLogger(cfg config.Config) (*monitoring.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeLog := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}

	return monitoring.NewLogger(w, cfg.LogLevel), closeLog, nil
}
