package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Chrome   chromeInfo  `json:"chrome"`
	Remote   *remoteInfo `json:"remote,omitempty"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// remoteInfo holds the result of probing a running browser.
type remoteInfo struct {
	ControlURL string `json:"control_url"`
	Reachable  bool   `json:"reachable"`
	WebSocket  string `json:"websocket,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	WorkDirWritable bool `json:"workdir_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	controlURL := fs.String("control-url", os.Getenv("CHAT2MD_CONTROL_URL"), "also probe a running browser")
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	result := runDoctor(*controlURL)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(controlURL string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	if controlURL != "" {
		checkRemote(result, controlURL)
	} else {
		checkChrome(result)
	}
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkChrome detects a local Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			// fetch still works: rod downloads Chromium on first launch.
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; fetch will download Chromium on first run. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkRemote probes the DevTools endpoint of a running browser.
func checkRemote(result *doctorResult, controlURL string) {
	result.Remote = &remoteInfo{ControlURL: controlURL}
	ws, err := launcher.ResolveURL(controlURL)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Browser at %s not reachable: %v", controlURL, err))
		return
	}
	result.Remote.Reachable = true
	result.Remote.WebSocket = ws
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// A custom binary or CI already disables the sandbox at launch.
	if result.Env.Container && !result.Env.CI && result.Env.BrowserBin == "" && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 or pass --no-sandbox")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("CHAT2MD_CONTAINER") == "1" {
		return true, "CHAT2MD_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the working directory accepts transcripts, which
// are staged as temp files next to their destination.
func checkSystem(result *doctorResult) {
	f, err := os.CreateTemp(".", ".chat2md-doctor-*")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"Working directory not writable; pass --output for fetch")
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.System.WorkDirWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "chat2md doctor")
	fmt.Fprintln(w)

	if r.Remote != nil {
		fmt.Fprintln(w, "Remote browser")
		if r.Remote.Reachable {
			fmt.Fprintf(w, "  [OK] %s -> %s\n", r.Remote.ControlURL, r.Remote.WebSocket)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s unreachable\n", r.Remote.ControlURL)
		}
	} else {
		fmt.Fprintln(w, "Chrome/Chromium")
		if r.Chrome.Found {
			fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
			if r.Chrome.Version != "" {
				fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
			}
			if r.Chrome.Sandbox {
				fmt.Fprintln(w, "  [OK] Sandbox: enabled")
			} else {
				fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
			}
		} else {
			fmt.Fprintln(w, "  [WARN] Not found")
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.WorkDirWritable {
		fmt.Fprintln(w, "  [OK] Working directory: writable")
	} else {
		fmt.Fprintln(w, "  [WARN] Working directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to fetch")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
