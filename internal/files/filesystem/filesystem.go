package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// Entry is a file or directory visited during a walk.
type Entry interface {
	// Path returns the location used to open the entry.
	Path() string

	// RelativePath returns the slash-separated path relative to the walk root.
	RelativePath() string

	// Info returns file metadata.
	Info() FileInfo
}

// WalkFunc is called for every entry under the walk root, the root included.
// Returning fs.SkipDir from a directory entry skips its contents; any other
// error stops the walk.
type WalkFunc func(entry Entry, err error) error

// Provider gives the scanner and the media readers access to files.
type Provider interface {
	// Walk traverses the tree rooted at root in lexical order.
	Walk(root string, fn WalkFunc) error

	// Open opens a file for streaming reads.
	Open(path string) (io.ReadCloser, error)

	// ReadFile reads a whole file.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
