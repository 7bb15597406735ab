// Package render formats canonical records for terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/genmeta/internal/tui"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

var (
	wordStart = regexp.MustCompile(`\b\w`)

	// Applied in order after title-casing.
	keyFixups = [][2]string{
		{"Cfgscale", "CFG Scale"},
		{"Cfg Scale", "CFG Scale"},
		{"Vae", "VAE"},
		{"Aspectratio", "Aspect Ratio"},
		{"Automaticvae", "Automatic VAE"},
		{"Negativeprompt", "Negative Prompt"},
		{"Loras", "LoRAs"},
	}

	// Shown before all other keys, in this order.
	leadingKeys = []string{genmeta.KeyPrompt, genmeta.KeyNegativePrompt}
)

// DisplayKey turns a record key into a label: underscores become spaces,
// camelCase is split, words are capitalized and known abbreviations fixed.
//
//	cfg_scale -> CFG Scale
//	negativePrompt -> Negative Prompt
//	loras -> LoRAs
func DisplayKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(key, "_", " ") {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	label := wordStart.ReplaceAllStringFunc(strings.TrimSpace(b.String()), strings.ToUpper)
	for _, fix := range keyFixups {
		label = strings.ReplaceAll(label, fix[0], fix[1])
	}
	return label
}

// Value formats a record value for display.
func Value(v any) string {
	switch v := v.(type) {
	case nil:
		return "Empty"
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case string:
		return v
	case json.Number:
		return v.String()
	case []any:
		if len(v) == 0 {
			return "None"
		}
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Value(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

// OrderedKeys returns the record keys with the prompts first and the rest sorted.
func OrderedKeys(rec genmeta.Record) []string {
	keys := make([]string, 0, len(rec))
	for _, k := range leadingKeys {
		if _, ok := rec[k]; ok {
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(rec))
	for k := range rec {
		if k != genmeta.KeyPrompt && k != genmeta.KeyNegativePrompt {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Renderer writes records as an aligned label/value block.
type Renderer struct {
	keyStyle   lipgloss.Style
	valueStyle lipgloss.Style
	titleStyle lipgloss.Style
}

// New creates a Renderer. With color off the output is plain text.
func New(color bool) *Renderer {
	if !color {
		return &Renderer{}
	}
	return &Renderer{
		keyStyle:   tui.KeyStyle,
		titleStyle: tui.TitleStyle,
	}
}

// Title renders a heading line such as a file path.
func (r *Renderer) Title(s string) string {
	return r.titleStyle.Render(s)
}

// Record renders every key of rec on its own row. Multi-line values stay
// aligned under the value column.
func (r *Renderer) Record(rec genmeta.Record) string {
	keys := OrderedKeys(rec)
	width := 0
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = DisplayKey(k) + ":"
		width = max(width, lipgloss.Width(labels[i]))
	}

	rows := make([]string, len(keys))
	for i, k := range keys {
		label := r.keyStyle.Width(width + 1).Render(labels[i])
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, label, r.valueStyle.Render(Value(rec[k])))
	}
	return strings.Join(rows, "\n")
}
