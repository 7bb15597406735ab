package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type osEntry struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (e *osEntry) Path() string         { return e.absPath }
func (e *osEntry) RelativePath() string { return e.relPath }
func (e *osEntry) Info() FileInfo       { return e.info }

// OSFileSystem implements Provider for the OS filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Walk(root string, fn WalkFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	return filepath.Walk(absRoot, func(path string, info os.FileInfo, walkErr error) (callbackErr error) {
		defer func() {
			if r := recover(); r != nil {
				callbackErr = fmt.Errorf("walk callback panicked at %s: %v", path, r)
			}
		}()

		if walkErr != nil {
			return fn(nil, walkErr)
		}
		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get relative path: %w", err))
		}
		return fn(&osEntry{absPath: path, relPath: filepath.ToSlash(relPath), info: info}, nil)
	})
}

func (p *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}
