package genmeta

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
var (
	// ErrUsage indicates invalid command-line arguments.
	ErrUsage = errors.New("usage error")

	// ErrNotFound indicates no candidate location contained recognizable metadata.
	ErrNotFound = errors.New("no generation metadata found")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedMedia indicates the media type has no embedded metadata reader.
	ErrUnsupportedMedia = errors.New("unsupported media")

	// ErrFetchFailed indicates a remote metadata document could not be retrieved.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrStoreFailed indicates a record store operation failed.
	ErrStoreFailed = errors.New("store failed")
)

// MediaError describes a media file that could not be turned into a document.
type MediaError struct {
	Path    string // Path of the media file
	Message string // Primary error message
	Hint    string // Actionable suggestion, optional
	Err     error  // Underlying cause, optional
}

func (e *MediaError) Error() string {
	msg := fmt.Sprintf("media error in %s: %s", e.Path, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

func (e *MediaError) Unwrap() error { return e.Err }

// ExitCodeForError returns the appropriate exit code for an error.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedMedia):
		return ExitUnsupportedMedia
	case errors.Is(err, ErrFetchFailed):
		return ExitFetchFailed
	case errors.Is(err, ErrStoreFailed):
		return ExitStoreFailed
	}

	return ExitGeneralError
}
