package textblock

import (
	"strings"

	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

const negativePrefix = "negative prompt:"

// settingsMarkers identify the settings line. Matching is case-sensitive.
var settingsMarkers = []string{"Steps:", "Sampler:", "CFG scale:", "Seed:", "Size:", "Model:"}

// parser holds the scan state.
type parser struct {
	buf      strings.Builder
	negative bool
	rec      genmeta.Record
}

// Parse scans text line by line and returns the attributes it recognizes.
// An empty record is returned only for blank input.
func Parse(text string) (rec genmeta.Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = genmeta.Record{genmeta.KeyPrompt: text}
		}
	}()

	p := &parser{rec: genmeta.Record{}}
	for _, line := range strings.Split(text, "\n") {
		p.line(strings.TrimSpace(line))
	}
	p.flush()

	if len(p.rec) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return genmeta.Record{genmeta.KeyPrompt: trimmed}
		}
	}
	return p.rec
}

func (p *parser) line(line string) {
	switch {
	case strings.HasPrefix(strings.ToLower(line), negativePrefix):
		rest := strings.TrimSpace(line[strings.Index(line, ":")+1:])
		if !p.negative {
			p.flush()
		}
		// The header text replaces whatever the buffer held.
		p.buf.Reset()
		p.negative = true
		p.append(rest)
	case isSettingsLine(line):
		p.flush()
		p.settings(line)
	case line != "":
		p.append(line)
	}
}

func (p *parser) append(s string) {
	if s == "" {
		return
	}
	if p.buf.Len() > 0 {
		p.buf.WriteByte('\n')
	}
	p.buf.WriteString(s)
}

// flush moves the buffer into prompt or negative_prompt and clears it.
func (p *parser) flush() {
	text := strings.TrimSpace(p.buf.String())
	p.buf.Reset()
	if text == "" {
		return
	}
	if p.negative {
		p.rec[genmeta.KeyNegativePrompt] = text
	} else {
		p.rec[genmeta.KeyPrompt] = text
	}
}

// settings stores every key:value pair of a settings line.
func (p *parser) settings(line string) {
	for _, pair := range strings.Split(line, ",") {
		pair = strings.TrimSpace(pair)
		idx := strings.Index(pair, ":")
		if idx <= 0 {
			continue
		}
		key := NormalizeKey(pair[:idx])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(pair[idx+1:])
		if n, ok := document.ParseNumber(value); ok {
			p.rec[key] = n
		} else {
			p.rec[key] = value
		}
	}
}

func isSettingsLine(line string) bool {
	for _, m := range settingsMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// NormalizeKey converts a settings label to a record key:
// trimmed, lower-cased, spaces replaced with underscores.
func NormalizeKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
