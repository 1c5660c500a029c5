package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert saved chat pages to Markdown")
	fmt.Fprintln(w, "  fetch      Convert live chat pages through headless Chrome")
	fmt.Fprintln(w, "  doctor     Check the browser setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A bare .html argument runs convert: chat2md page.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'chat2md help <command>' for details on a specific command.")
}

// printSharedFlags prints the flags convert and fetch have in common.
func printSharedFlags(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory")
	fmt.Fprintln(w, "      --stdout                Write Markdown to stdout")
	fmt.Fprintln(w, "      --html                  Also write an HTML preview")
	fmt.Fprintln(w, "      --html-raw              Render passed-through HTML in the preview")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Selectors:")
	fmt.Fprintln(w, "      --message-selector <s>  Message block (default: .text-base)")
	fmt.Fprintln(w, "      --text-selector <s>     Text region (default: .whitespace-pre-wrap)")
	fmt.Fprintln(w, "      --avatar-selector <s>   Marks user messages (default: img)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "      --denest-passes <n>     Span unwrapping passes (default: 5)")
	fmt.Fprintln(w, "      --notice-duration <d>   No-messages notice duration (default: 2.5s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2md convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert saved chat pages to Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .html file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// printFetchUsage prints usage for the fetch command.
func printFetchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2md fetch <url>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load chat pages in headless Chrome and convert what they render.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --control-url <url>     Attach to a running browser")
	fmt.Fprintln(w, "      --browser-bin <path>    Browser binary (default: ROD_BROWSER_BIN or auto)")
	fmt.Fprintln(w, "      --no-sandbox            Disable the Chrome sandbox")
	fmt.Fprintln(w, "  -t, --timeout <d>           Page load timeout (default: 30s)")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "fetch":
		printFetchUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: chat2md doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that a browser is available for fetch.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chat2md version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chat2md help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
