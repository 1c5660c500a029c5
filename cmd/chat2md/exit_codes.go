package main

import (
	"context"
	"errors"
	"os"
	"strings"

	chat2md "github.com/alnah/go-chat2md"
	"github.com/alnah/go-chat2md/internal/config"
	"github.com/alnah/go-chat2md/internal/hints"
)

// Exit codes for the chat2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Every transcript exported
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or selectors
	ExitIO         = 3 // File not found, unreadable page, write failure
	ExitBrowser    = 4 // Browser/Chrome errors
	ExitNoMessages = 5 // The page held no messages
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, chat2md.ErrNoMessages) {
		return ExitNoMessages
	}

	// Browser errors (exit 4)
	if errors.Is(err, chat2md.ErrBrowserConnect) ||
		errors.Is(err, chat2md.ErrPageCreate) ||
		errors.Is(err, chat2md.ErrPageLoad) ||
		errors.Is(err, chat2md.ErrPageQuery) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, chat2md.ErrParseHTML) ||
		errors.Is(err, chat2md.ErrWriteDocument) ||
		errors.Is(err, chat2md.ErrWritePreview) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, chat2md.ErrInvalidSelector) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns actionable hints for err, or "".
// The no-messages hint is shown by the notice instead.
func hintFor(err error) string {
	switch {
	case errors.Is(err, chat2md.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, chat2md.ErrWriteDocument):
		return hints.ForOutputDirectory()
	case errors.Is(err, chat2md.ErrInvalidSelector):
		return hints.ForInvalidSelector()
	}
	return ""
}

// triedPaths recovers the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	msg := err.Error()
	i := strings.LastIndex(msg, "tried ")
	if i < 0 {
		return nil
	}
	return strings.Split(msg[i+len("tried "):], ", ")
}
