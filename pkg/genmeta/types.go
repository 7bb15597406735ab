package genmeta

import (
	"time"

	"github.com/google/uuid"
)

// MediaItem describes one media file discovered by the scanner.
type MediaItem struct {
	// ID is a deterministic UUID v5 derived from the normalized relative path.
	ID uuid.UUID

	// Path is the Unix-style path relative to the scan root, with a "./" prefix.
	Path string

	// AbsPath is the location used to read the file.
	AbsPath string

	// Extension is the lower-cased file extension including the dot.
	Extension string

	// SizeBytes is the file size.
	SizeBytes int64

	// Checksum is the SHA-256 of the raw file content.
	Checksum string

	// ModifiedAt is the file's modification time.
	ModifiedAt time.Time

	// Sidecars are paths of .json/.txt files next to the media that share its base name.
	Sidecars []string
}

// Result is the outcome of extracting one media item.
// Exactly one of Record or Err is set when extraction ran; both are empty
// when the item was read successfully but nothing was recognized.
type Result struct {
	Item   MediaItem
	Record Record
	Source string
	Prompt string
	Tags   []string
	Err    error
}

// Found reports whether a canonical record was extracted.
func (r Result) Found() bool {
	return r.Err == nil && len(r.Record) > 0
}

// ScanResult contains the media items discovered in a directory.
type ScanResult struct {
	Root  string
	Items []MediaItem
}
