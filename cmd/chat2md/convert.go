package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	chat2md "github.com/alnah/go-chat2md"
	"github.com/alnah/go-chat2md/internal/config"
)

// ErrInvalidExtension is returned for an explicit input that is not a saved page.
var ErrInvalidExtension = errors.New("file must have .html or .htm extension")

// runConvertCmd executes the convert command and returns an exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env)
	if err != nil {
		return flagError(err)
	}
	if err := runConvert(ctx, positional, flags, env); err != nil {
		return reportError(env, err)
	}
	return ExitSuccess
}

// runConvert exports every saved page named by positional (files or
// directories) to Markdown.
func runConvert(ctx context.Context, positional []string, flags *exportFlags, env *Environment) error {
	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	inputs, err := resolveInputPaths(positional, cfg)
	if err != nil {
		return err
	}

	var jobs []exportJob
	for _, in := range inputs {
		found, err := discoverFiles(in, cfg.Output.DefaultDir)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		jobs = append(jobs, found...)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no .html files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}

	p, err := buildParams(cfg, flags, env)
	if err != nil {
		return err
	}
	defer p.notifier.Dismiss()

	results := exportBatch(ctx, workerCount(cfg, p, len(jobs)), jobs, func(ctx context.Context, j exportJob) ExportResult {
		return convertFile(ctx, j, p)
	})

	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	return batchError(results)
}

// convertFile exports one saved page.
func convertFile(ctx context.Context, job exportJob, p *exportParams) ExportResult {
	f, err := os.Open(job.Input) // #nosec G304 -- discovered path
	if err != nil {
		return ExportResult{Input: job.Input, Err: fmt.Errorf("%w: %w", ErrReadInput, err)}
	}
	defer func() { _ = f.Close() }()

	src := &chat2md.HTMLSource{Reader: f, Selectors: p.selectors}
	return exportOne(ctx, src, job, p)
}

// resolveInputPaths returns the positional inputs, or the configured
// default directory.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// discoverFiles finds the saved pages to convert under inputPath.
// Transcripts land next to their page unless outputDir is set, in which
// case a directory input's layout is mirrored under it.
func discoverFiles(inputPath, outputDir string) ([]exportJob, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !looksLikeHTML(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []exportJob{{Input: inputPath, OutputDir: resolveOutputDir(inputPath, outputDir, "")}}, nil
	}

	var jobs []exportJob
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !looksLikeHTML(path) {
			return nil
		}
		jobs = append(jobs, exportJob{Input: path, OutputDir: resolveOutputDir(path, outputDir, inputPath)})
		return nil
	})

	return jobs, err
}

// resolveOutputDir determines the directory a page's transcript goes to.
func resolveOutputDir(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return filepath.Dir(inputPath)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath))
		}
	}

	return outputDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > chat2md.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, chat2md.MaxPoolSize)
	}
	return nil
}
