package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	chat2md "github.com/alnah/go-chat2md"
	"github.com/alnah/go-chat2md/internal/config"
	"github.com/alnah/go-chat2md/internal/hints"
	"github.com/alnah/go-chat2md/internal/notice"
	"github.com/alnah/go-chat2md/internal/pipeline"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input page")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// noMessagesText is what the notice prints when a page held nothing.
const noMessagesText = "Error: No messages found"

// exportJob is one transcript to export.
type exportJob struct {
	Input     string // file path or URL
	OutputDir string // empty = working directory
}

// ExportResult holds the outcome of a single export.
type ExportResult struct {
	Input       string
	OutputPath  string
	PreviewPath string
	Err         error
	Duration    time.Duration
}

// exportParams groups what every job of a batch shares.
type exportParams struct {
	selectors chat2md.Selectors
	converter *chat2md.Converter // stateless, shared across workers
	preview   pipeline.HTMLConverter
	stdout    io.Writer // non-nil: write Markdown here instead of files
	notifier  *notice.Notifier
	names     *chat2md.NameSet // output paths claimed so far in this batch
	logger    *slog.Logger
	now       func() time.Time
}

// resolveConfig loads the config file and layers env vars and flags on top.
// Precedence: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *exportFlags, env *Environment) (*config.Config, error) {
	if err := validateWorkers(flags.workers); err != nil {
		return nil, err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *exportFlags, cfg *config.Config) {
	if flags.output.dir != "" {
		cfg.Output.DefaultDir = flags.output.dir
	}
	if flags.output.html {
		cfg.Preview.Enabled = true
	}
	if flags.output.htmlRaw {
		cfg.Preview.Enabled = true
		cfg.Preview.RawHTML = true
	}
	if flags.workers > 0 {
		cfg.Browser.Workers = flags.workers
	}

	if flags.selectors.message != "" {
		cfg.Selectors.Message = flags.selectors.message
	}
	if flags.selectors.text != "" {
		cfg.Selectors.Text = flags.selectors.text
	}
	if flags.selectors.avatar != "" {
		cfg.Selectors.Avatar = flags.selectors.avatar
	}

	if flags.pipeline.denestPasses != 0 {
		cfg.Pipeline.DenestPasses = flags.pipeline.denestPasses
	}
	if flags.pipeline.noticeDuration != "" {
		cfg.Notice.Duration = flags.pipeline.noticeDuration
	}

	if flags.browser.controlURL != "" {
		cfg.Browser.ControlURL = flags.browser.controlURL
	}
	if flags.browser.bin != "" {
		cfg.Browser.Bin = flags.browser.bin
	}
	if flags.browser.noSandbox {
		cfg.Browser.NoSandbox = true
	}
	if flags.browser.timeout != "" {
		cfg.Browser.Timeout = flags.browser.timeout
	}
}

// buildParams turns a validated config into shared export parameters.
func buildParams(cfg *config.Config, flags *exportFlags, env *Environment) (*exportParams, error) {
	sel := chat2md.Selectors{
		Message: cfg.Selectors.Message,
		Text:    cfg.Selectors.Text,
		Avatar:  cfg.Selectors.Avatar,
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	opts := []chat2md.Option{chat2md.WithLogger(logger)}
	if cfg.Pipeline.DenestPasses > 0 {
		opts = append(opts, chat2md.WithDenestPasses(cfg.Pipeline.DenestPasses))
	}

	// Validated by cfg.Validate; zero keeps the default.
	d, _ := cfg.Notice.DurationValue()
	stderr := env.Stderr
	n := notice.New(
		notice.WithDuration(d),
		notice.WithOnShow(func() {
			fmt.Fprintln(stderr, noMessagesText+hints.ForNoMessages())
		}),
		notice.WithOnHide(func() {
			logger.Debug("notice dismissed")
		}),
	)

	p := &exportParams{
		selectors: sel,
		converter: chat2md.NewConverter(opts...),
		notifier:  n,
		names:     &chat2md.NameSet{},
		logger:    logger,
		now:       env.Now,
	}
	if cfg.Preview.Enabled {
		p.preview = pipeline.NewGoldmarkConverter(cfg.Preview.RawHTML)
	}
	if flags.output.stdout {
		p.stdout = env.Stdout
	}
	return p, nil
}

// workerCount sizes a batch. Stdout output is serialized.
func workerCount(cfg *config.Config, p *exportParams, jobs int) int {
	if p.stdout != nil {
		return 1
	}
	n := chat2md.ResolvePoolSize(cfg.Browser.Workers)
	if n > jobs {
		n = jobs
	}
	return n
}

// exportBatch runs jobs on a fixed number of workers, keeping input order
// in the results.
func exportBatch(ctx context.Context, workers int, jobs []exportJob, run func(context.Context, exportJob) ExportResult) []ExportResult {
	if len(jobs) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]ExportResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = ExportResult{
						Input: jobs[idx].Input,
						Err:   ctx.Err(),
					}
					continue
				}
				results[idx] = run(ctx, jobs[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// exportOne runs one Exporter over src and records where the result went.
func exportOne(ctx context.Context, src chat2md.Source, job exportJob, p *exportParams) ExportResult {
	start := p.now()
	result := ExportResult{Input: job.Input}

	var files *chat2md.FileDelivery
	var delivery chat2md.Delivery
	if p.stdout != nil {
		delivery = &chat2md.WriterDelivery{W: p.stdout}
	} else {
		files = &chat2md.FileDelivery{Dir: job.OutputDir, Preview: p.preview, Names: p.names}
		delivery = files
	}

	exp := &chat2md.Exporter{
		Source:    src,
		Converter: p.converter,
		Delivery:  delivery,
		Notifier:  p.notifier,
		Logger:    p.logger,
	}
	doc, err := exp.Export(ctx)
	result.Duration = p.now().Sub(start)
	if err != nil {
		result.Err = err
		return result
	}

	if files == nil {
		result.OutputPath = "-"
	} else {
		result.OutputPath = files.Path(doc)
		if p.preview != nil {
			result.PreviewPath = files.PreviewPath(doc)
		}
	}
	p.logger.Debug("exported", slog.String("input", job.Input), slog.String("output", result.OutputPath))
	return result
}

// ResultSummary holds the count of succeeded and failed exports.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Empty     int // failures that were ErrNoMessages
}

// countResults tallies succeeded and failed exports.
func countResults(results []ExportResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err == nil:
			summary.Succeeded++
		case errors.Is(r.Err, chat2md.ErrNoMessages):
			summary.Failed++
			summary.Empty++
		default:
			summary.Failed++
		}
	}
	return summary
}

// printResultsWithWriter outputs export results using the provided writers.
// A lone failure is left to the returned error; in a batch every failure
// gets its own line.
func printResultsWithWriter(results []ExportResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)
	batch := len(results) > 1

	for _, r := range results {
		if r.Err != nil {
			if batch {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Input, r.Err)
			}
			continue
		}

		// Stdout already carries the Markdown.
		if quiet || r.OutputPath == "-" {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Input, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.PreviewPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.PreviewPath)
		}
	}

	if !quiet && batch {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// batchError reduces results to the command's error, nil when all succeeded.
func batchError(results []ExportResult) error {
	summary := countResults(results)
	if summary.Failed == 0 {
		return nil
	}

	if len(results) == 1 {
		return fmt.Errorf("%s: %w", results[0].Input, results[0].Err)
	}

	if summary.Empty == summary.Failed {
		return fmt.Errorf("%d of %d pages: %w", summary.Failed, len(results), chat2md.ErrNoMessages)
	}
	for _, r := range results {
		if r.Err != nil && !errors.Is(r.Err, chat2md.ErrNoMessages) {
			return fmt.Errorf("%d of %d exports failed, first: %w", summary.Failed, len(results), r.Err)
		}
	}
	return nil
}
