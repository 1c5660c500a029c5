package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds where and how transcripts are written.
type outputFlags struct {
	dir     string // Output directory
	stdout  bool   // Write Markdown to stdout instead of files
	html    bool   // Also write an HTML preview
	htmlRaw bool   // Let the preview render passed-through HTML
}

// selectorFlags overrides the CSS selectors that locate messages.
type selectorFlags struct {
	message string
	text    string
	avatar  string
}

// pipelineFlags tunes conversion and the no-messages notice.
type pipelineFlags struct {
	denestPasses   int
	noticeDuration string
}

// browserFlags holds flags for live fetches.
type browserFlags struct {
	controlURL string
	bin        string
	noSandbox  bool
	timeout    string
}

// exportFlags holds all flags for the convert and fetch commands.
// browser is only registered for fetch.
type exportFlags struct {
	common    commonFlags
	output    outputFlags
	workers   int
	selectors selectorFlags
	pipeline  pipelineFlags
	browser   browserFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory")
	fs.BoolVar(&f.stdout, "stdout", false, "write Markdown to stdout")
	fs.BoolVar(&f.html, "html", false, "also write an HTML preview")
	fs.BoolVar(&f.htmlRaw, "html-raw", false, "render raw HTML in the preview")
}

// addSelectorFlags adds selector override flags to a FlagSet.
func addSelectorFlags(fs *flag.FlagSet, f *selectorFlags) {
	fs.StringVar(&f.message, "message-selector", "", "CSS selector of a message block")
	fs.StringVar(&f.text, "text-selector", "", "CSS selector of the text region inside a message")
	fs.StringVar(&f.avatar, "avatar-selector", "", "CSS selector whose presence marks a user message")
}

// addPipelineFlags adds conversion tuning flags to a FlagSet.
func addPipelineFlags(fs *flag.FlagSet, f *pipelineFlags) {
	fs.IntVar(&f.denestPasses, "denest-passes", 0, "span unwrapping passes (0 = default)")
	fs.StringVar(&f.noticeDuration, "notice-duration", "", "how long the no-messages notice stays up (e.g., 2.5s)")
}

// addBrowserFlags adds live fetch flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.controlURL, "control-url", "", "attach to a running browser (DevTools URL or host:port)")
	fs.StringVar(&f.bin, "browser-bin", "", "browser binary (default: ROD_BROWSER_BIN or auto)")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
}

// newExportFlagSet registers the flags shared by convert and fetch.
func newExportFlagSet(name string, f *exportFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addSelectorFlags(fs, &f.selectors)
	addPipelineFlags(fs, &f.pipeline)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*exportFlags, []string, error) {
	f := &exportFlags{}
	fs := newExportFlagSet("convert", f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseFetchFlags parses fetch command flags and returns positional args.
func parseFetchFlags(args []string, env *Environment) (*exportFlags, []string, error) {
	f := &exportFlags{}
	fs := newExportFlagSet("fetch", f)
	addBrowserFlags(fs, &f.browser)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printFetchUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
