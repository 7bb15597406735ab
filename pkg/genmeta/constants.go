package genmeta

import "time"

// Exit codes for semantic error classification.
const (
	ExitSuccess          = 0  // Command completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitNotFound         = 4  // No generation metadata recognized
	ExitConfigError      = 10 // Invalid configuration
	ExitUnsupportedMedia = 11 // Media type has no metadata reader
	ExitFetchFailed      = 12 // Remote metadata could not be fetched
	ExitStoreFailed      = 13 // Record store operation failed
)

const (
	// DefaultConcurrency is the default number of media items extracted in parallel.
	DefaultConcurrency = 4

	// MaxConcurrency bounds the batch window. Extraction is CPU-light, so
	// wider windows only add contention on file reads.
	MaxConcurrency = 10

	// DefaultFetchTimeout bounds a single metadata fetch, retries included.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultFetchRetryMax is the number of retries for a failed fetch.
	DefaultFetchRetryMax = 3

	// DefaultStoreTable is the table used by the Postgres record store.
	DefaultStoreTable = "genmeta_record"

	// DefaultRetryInitialDelay is the initial delay before the first store retry.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the maximum delay between store retries.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the maximum number of store retries.
	DefaultRetryMaxAttempts = 3

	// MaxDocumentSize caps the size of JSON and text documents read from disk
	// or the network.
	MaxDocumentSize = 16 * 1024 * 1024
)

// SupportedExtensions lists the media extensions the scanner picks up,
// grouped by media kind.
var SupportedExtensions = map[string][]string{
	"image": {".jpg", ".jpeg", ".png", ".webp", ".bmp", ".tiff"},
	"gif":   {".gif"},
	"video": {".mp4", ".webm", ".mov", ".avi", ".mkv"},
}
