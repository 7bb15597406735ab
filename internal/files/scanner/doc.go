// Package scanner discovers media files in a directory tree.
//
// The scanner is responsible for:
//   - Recursively discovering files with a supported media extension
//   - Computing a raw SHA-256 checksum of each file
//   - Assigning a deterministic UUID v5 identity from the relative path
//   - Attaching .json/.txt sidecar files that share the media's base name
//
// Hidden directories (names starting with ".") are not descended into.
// Items are returned in path order. The scanner works against any
// filesystem.Provider, so tests run against an in-memory filesystem.
package scanner
