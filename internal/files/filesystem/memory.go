package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (e *memoryEntry) Path() string         { return e.absPath }
func (e *memoryEntry) RelativePath() string { return e.relPath }
func (e *memoryEntry) Info() FileInfo       { return e.info }

// MemoryFileSystem implements Provider for in-memory testing.
// Paths use forward slashes; relative paths resolve against the root.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.addDir(root)
	return mfs
}

// Root returns the filesystem root.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a file with the current time as its modification time.
func (mfs *MemoryFileSystem) AddFile(filePath string, content []byte) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time.
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content []byte, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	mfs.entries[absPath] = &memoryEntry{
		absPath: absPath,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	for dir := path.Dir(absPath); ; dir = path.Dir(dir) {
		if _, ok := mfs.entries[dir]; !ok {
			mfs.addDir(dir)
		}
		if dir == "/" || dir == "." || dir == mfs.root {
			break
		}
	}
}

func (mfs *MemoryFileSystem) addDir(dir string) {
	mfs.entries[dir] = &memoryEntry{
		absPath: dir,
		info: &memoryFileInfo{
			name:    path.Base(dir),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) lookup(p string) (*memoryEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	e, ok := mfs.entries[mfs.resolve(p)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, fs.ErrNotExist)
	}
	return e, nil
}

func (mfs *MemoryFileSystem) Walk(root string, fn WalkFunc) error {
	base, err := mfs.lookup(root)
	if err != nil {
		return fmt.Errorf("failed to access path: %w", err)
	}
	if !base.info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	mfs.mu.RLock()
	var matched []*memoryEntry
	for p, e := range mfs.entries {
		if p == base.absPath || strings.HasPrefix(p, strings.TrimSuffix(base.absPath, "/")+"/") {
			matched = append(matched, e)
		}
	}
	mfs.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].absPath < matched[j].absPath
	})

	var skipped []string
	for _, e := range matched {
		if underAny(e.absPath, skipped) {
			continue
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(e.absPath, base.absPath), "/")
		if rel == "" {
			rel = "."
		}
		view := &memoryEntry{absPath: e.absPath, relPath: rel, content: e.content, info: e.info}

		err := callWalkFunc(fn, view)
		if err == fs.SkipDir && e.info.IsDir() {
			skipped = append(skipped, e.absPath)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func callWalkFunc(fn WalkFunc, e Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("walk callback panicked at %s: %v", e.Path(), r)
		}
	}()
	return fn(e, nil)
}

func underAny(p string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(p, d+"/") {
			return true
		}
	}
	return false
}

func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	data, err := mfs.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	e, err := mfs.lookup(filePath)
	if err != nil {
		return nil, err
	}
	if e.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return e.content, nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	e, err := mfs.lookup(statPath)
	if err != nil {
		return nil, err
	}
	return e.info, nil
}
