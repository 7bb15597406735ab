package logging

import (
	"fmt"
	"io"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns the logger for format. An empty format selects text.
func New(format string, w io.Writer, verbose bool) (genmeta.Logger, error) {
	switch format {
	case "", FormatText:
		return NewConsoleLoggerTo(w, verbose), nil
	case FormatJSON:
		return NewJSONLoggerTo(w, verbose), nil
	default:
		return nil, fmt.Errorf("unknown log format %q: %w", format, genmeta.ErrInvalidConfig)
	}
}
