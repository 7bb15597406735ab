// Package filesystem abstracts the filesystem the media scanner walks.
//
// Key interfaces:
//   - Provider: walks directory trees and opens files by path
//   - Entry: a file or directory found during a walk
//   - FileInfo: file metadata (alias of fs.FileInfo)
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for testing
//
// Walks visit entries in lexical path order in both implementations.
package filesystem
