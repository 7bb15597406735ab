package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/vvka-141/genmeta/internal/checksum"
	"github.com/vvka-141/genmeta/internal/files/filesystem"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// sidecarExtensions are checked, in order, next to every media file.
var sidecarExtensions = []string{".json", ".txt"}

// Scanner discovers media files. It is safe for concurrent use as long as
// the calculator and provider are.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.Provider
	extensions map[string]bool
	sidecars   bool
	skip       func(checksum string) bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtensions restricts the scan to the given lower-cased extensions.
func WithExtensions(exts map[string]bool) Option {
	return func(s *Scanner) {
		if len(exts) > 0 {
			s.extensions = exts
		}
	}
}

// WithSidecars enables or disables sidecar discovery. Enabled by default.
func WithSidecars(enabled bool) Option {
	return func(s *Scanner) { s.sidecars = enabled }
}

// WithSkip drops items whose checksum makes skip return true, e.g. media
// already present in the record store.
func WithSkip(skip func(checksum string) bool) Option {
	return func(s *Scanner) { s.skip = skip }
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator, opts ...Option) *Scanner {
	return NewScannerWithFS(calculator, filesystem.NewOSFileSystem(), opts...)
}

// NewScannerWithFS creates a scanner over a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.Provider, opts ...Option) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	s := &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
		extensions: DefaultExtensions(),
		sidecars:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultExtensions returns every extension in genmeta.SupportedExtensions.
func DefaultExtensions() map[string]bool {
	set := make(map[string]bool)
	for _, exts := range genmeta.SupportedExtensions {
		for _, ext := range exts {
			set[ext] = true
		}
	}
	return set
}

// IsSupported reports whether name has one of the scanner's extensions.
func (s *Scanner) IsSupported(name string) bool {
	return s.extensions[strings.ToLower(path.Ext(name))]
}

// ScanDirectory recursively scans root and returns its media items in path order.
func (s *Scanner) ScanDirectory(root string) (genmeta.ScanResult, error) {
	var media []filesystem.Entry
	files := make(map[string]string) // relative path -> provider path

	err := s.fsProvider.Walk(root, func(e filesystem.Entry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if e.Info().IsDir() {
			if e.RelativePath() != "." && strings.HasPrefix(e.Info().Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		files[e.RelativePath()] = e.Path()
		if s.IsSupported(e.Info().Name()) {
			media = append(media, e)
		}
		return nil
	})
	if err != nil {
		return genmeta.ScanResult{}, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	items := make([]genmeta.MediaItem, 0, len(media))
	for _, e := range media {
		item, err := s.processFile(e, files)
		if err != nil {
			return genmeta.ScanResult{}, fmt.Errorf("failed to process file %s: %w", e.RelativePath(), err)
		}
		if s.skip != nil && s.skip(item.Checksum) {
			continue
		}
		items = append(items, item)
	}

	return genmeta.ScanResult{Root: root, Items: items}, nil
}

func (s *Scanner) processFile(e filesystem.Entry, files map[string]string) (genmeta.MediaItem, error) {
	rc, err := s.fsProvider.Open(e.Path())
	if err != nil {
		return genmeta.MediaItem{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	sum, err := s.calculator.CalculateReader(rc)
	if err != nil {
		return genmeta.MediaItem{}, err
	}

	rel := e.RelativePath()
	unixPath := rel
	if !strings.HasPrefix(unixPath, "./") {
		unixPath = "./" + unixPath
	}

	info := e.Info()
	item := genmeta.MediaItem{
		ID:         MediaID(unixPath),
		Path:       unixPath,
		AbsPath:    e.Path(),
		Extension:  strings.ToLower(path.Ext(info.Name())),
		SizeBytes:  info.Size(),
		Checksum:   sum,
		ModifiedAt: info.ModTime(),
	}

	if s.sidecars {
		stem := strings.TrimSuffix(rel, path.Ext(rel))
		for _, ext := range sidecarExtensions {
			candidate := stem + ext
			if candidate == rel {
				continue
			}
			if p, ok := files[candidate]; ok {
				item.Sidecars = append(item.Sidecars, p)
			}
		}
	}
	return item, nil
}
