package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	chat2md "github.com/alnah/go-chat2md"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized first argument.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	env := DefaultEnv()
	args := os.Args[1:]

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasFlag(args, "-v", "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", a...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, args, env)
	stop()
	os.Exit(code)
}

// run dispatches a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == "convert":
		return runConvertCmd(ctx, rest, env)
	case cmd == "fetch":
		return runFetchCmd(ctx, rest, env)
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "go-chat2md %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		return runHelp(rest, env)
	case looksLikeHTML(cmd):
		// Bare file argument: chat2md page.html
		return runConvertCmd(ctx, args, env)
	default:
		return reportError(env, fmt.Errorf("%w: %s (run 'chat2md help')", ErrUnknownCommand, cmd))
	}
}

// looksLikeHTML reports whether arg names a saved HTML page.
func looksLikeHTML(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	return ext == ".html" || ext == ".htm"
}

// hasFlag reports whether any of names appears in args before "--".
func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		for _, n := range names {
			if a == n {
				return true
			}
		}
	}
	return false
}

// newLogger builds the CLI logger: Info by default, Debug with --verbose,
// errors only with --quiet.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// reportError prints err with its hints and returns the matching exit code.
// ErrNoMessages is not printed: the notice has already shown it.
func reportError(env *Environment, err error) int {
	if errors.Is(err, chat2md.ErrNoMessages) {
		return ExitNoMessages
	}
	fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// flagError maps a pflag parse error to an exit code. pflag has already
// printed the error and usage.
func flagError(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	return ExitUsage
}
