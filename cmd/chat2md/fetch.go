package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	chat2md "github.com/alnah/go-chat2md"
	"github.com/alnah/go-chat2md/internal/config"
	"github.com/alnah/go-chat2md/internal/fileutil"
)

// ErrInvalidURL is returned for a fetch argument that is not a page URL.
var ErrInvalidURL = errors.New("invalid page URL")

// browserPool abstracts the browser pool for testability.
type browserPool interface {
	Acquire() *chat2md.Browser
	Release(*chat2md.Browser)
}

// Compile-time interface implementation check.
var _ browserPool = (*chat2md.BrowserPool)(nil)

// runFetchCmd executes the fetch command and returns an exit code.
func runFetchCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFetchFlags(args, env)
	if err != nil {
		return flagError(err)
	}
	if err := runFetch(ctx, positional, flags, env); err != nil {
		return reportError(env, err)
	}
	return ExitSuccess
}

// runFetch exports live chat pages through headless Chrome.
func runFetch(ctx context.Context, urls []string, flags *exportFlags, env *Environment) error {
	if len(urls) == 0 {
		return fmt.Errorf("%w: fetch needs at least one URL", ErrNoInput)
	}
	for _, u := range urls {
		if !isPageURL(u) {
			return fmt.Errorf("%w: %q (want http://, https:// or file://)", ErrInvalidURL, u)
		}
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	p, err := buildParams(cfg, flags, env)
	if err != nil {
		return err
	}
	defer p.notifier.Dismiss()

	jobs := make([]exportJob, len(urls))
	for i, u := range urls {
		jobs[i] = exportJob{Input: u, OutputDir: cfg.Output.DefaultDir}
	}

	workers := workerCount(cfg, p, len(jobs))
	pool := chat2md.NewBrowserPool(workers, browserConfig(cfg))
	defer func() {
		if err := pool.Close(); err != nil {
			p.logger.Warn("closing browsers", slog.Any("error", err))
		}
	}()

	results := exportBatch(ctx, workers, jobs, func(ctx context.Context, j exportJob) ExportResult {
		return fetchPage(ctx, pool, j, p)
	})

	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	return batchError(results)
}

// fetchPage exports one live page on a pooled browser.
func fetchPage(ctx context.Context, pool browserPool, job exportJob, p *exportParams) ExportResult {
	b := pool.Acquire()
	defer pool.Release(b)

	src := &chat2md.LiveSource{Browser: b, URL: job.Input, Selectors: p.selectors}
	return exportOne(ctx, src, job, p)
}

// browserConfig maps the validated config to the library's browser settings.
func browserConfig(cfg *config.Config) chat2md.BrowserConfig {
	timeout, _ := cfg.Browser.TimeoutDuration() // validated by resolveConfig
	return chat2md.BrowserConfig{
		ControlURL: cfg.Browser.ControlURL,
		Bin:        cfg.Browser.Bin,
		NoSandbox:  cfg.Browser.NoSandbox,
		Timeout:    timeout,
	}
}

// isPageURL reports whether s is something a browser can open as a page.
func isPageURL(s string) bool {
	return fileutil.IsURL(s) || strings.HasPrefix(s, "file://")
}
