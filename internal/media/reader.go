package media

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/internal/files/filesystem"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// ParametersKey holds the text of a .txt document.
const ParametersKey = "parameters"

// Reader turns media files into raw documents.
type Reader struct {
	fs filesystem.Provider
}

// NewReader creates a Reader over fs.
func NewReader(fs filesystem.Provider) *Reader {
	return &Reader{fs: fs}
}

// Read returns the raw document for item. The embedded document is used when
// it has any entries; otherwise sidecars are tried in order. Items with
// neither an embedded reader nor a usable sidecar fail with
// genmeta.ErrUnsupportedMedia.
func (r *Reader) Read(item genmeta.MediaItem) (map[string]any, error) {
	var embeddedErr error
	if HasEmbeddedReader(item.Extension) {
		doc, err := r.readFile(item.AbsPath, item.Extension)
		if err == nil && len(doc) > 0 {
			return doc, nil
		}
		embeddedErr = err
	}

	for _, sidecar := range item.Sidecars {
		doc, err := r.readFile(sidecar, strings.ToLower(path.Ext(sidecar)))
		if err == nil && len(doc) > 0 {
			return doc, nil
		}
	}

	if embeddedErr != nil {
		return nil, embeddedErr
	}
	if HasEmbeddedReader(item.Extension) {
		return map[string]any{}, nil
	}
	return nil, &genmeta.MediaError{
		Path:    item.Path,
		Message: fmt.Sprintf("no metadata reader for %s files", item.Extension),
		Hint:    "place a .json or .txt sidecar with the same base name next to the file",
		Err:     genmeta.ErrUnsupportedMedia,
	}
}

// HasEmbeddedReader reports whether files with ext can be read directly.
func HasEmbeddedReader(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".json", ".txt":
		return true
	}
	return false
}

func (r *Reader) readFile(p, ext string) (map[string]any, error) {
	rc, err := r.fs.Open(p)
	if err != nil {
		return nil, &genmeta.MediaError{Path: p, Message: "cannot open file", Err: err}
	}
	defer rc.Close()

	doc, err := Decode(ext, rc)
	if err != nil {
		return nil, &genmeta.MediaError{Path: p, Message: err.Error(), Err: err}
	}
	return doc, nil
}

// Decode reads a raw document from r according to ext.
func Decode(ext string, r io.Reader) (map[string]any, error) {
	switch strings.ToLower(ext) {
	case ".png":
		texts, err := ReadPNGText(r)
		if err != nil {
			return nil, err
		}
		doc := make(map[string]any, len(texts))
		for k, v := range texts {
			doc[k] = v
		}
		return doc, nil

	case ".json":
		data, err := readLimited(r)
		if err != nil {
			return nil, err
		}
		return document.Decode(data)

	case ".txt":
		data, err := readLimited(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(data)) == "" {
			return map[string]any{}, nil
		}
		return map[string]any{ParametersKey: string(data)}, nil
	}
	return nil, fmt.Errorf("%s: %w", ext, genmeta.ErrUnsupportedMedia)
}

var errTooLarge = errors.New("document exceeds size limit")

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, genmeta.MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > genmeta.MaxDocumentSize {
		return nil, errTooLarge
	}
	return data, nil
}
