package chat2md

import "errors"

// Sentinel errors for library operations.
var (
	// ErrNoMessages is the normal "nothing to export" outcome: the source
	// held no message block with a text region.
	ErrNoMessages = errors.New("no messages found")

	// Transcript validation errors.
	ErrNilTranscript  = errors.New("transcript cannot be nil")
	ErrInvalidSpeaker = errors.New("invalid speaker")
	ErrInvalidOrdinal = errors.New("message ordinals must strictly increase")

	// Source errors.
	ErrParseHTML       = errors.New("failed to parse HTML")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrPageQuery       = errors.New("failed to query page")

	// Delivery errors.
	ErrWriteDocument = errors.New("failed to write document")
	ErrWritePreview  = errors.New("failed to write HTML preview")
)
