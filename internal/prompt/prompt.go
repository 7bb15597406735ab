// Package prompt locates the positive prompt in records and raw documents
// and splits prompts into tags.
package prompt

import (
	"sort"
	"strings"

	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// directKeys are the record keys Locate checks before scanning.
var directKeys = []string{"prompt", "Prompt", "positive_prompt", "positive"}

// Locate finds the positive prompt in an extracted record. It checks the
// well-known keys, then sui_image_params.prompt, then falls back to the first
// key (in sorted order) that mentions "prompt" but not "negative".
func Locate(rec genmeta.Record) (string, bool) {
	for _, key := range directKeys {
		if s, ok := document.NonEmptyString(rec[key]); ok {
			return s, true
		}
	}
	if s, ok := document.NonEmptyString(document.Path(rec, "sui_image_params", "prompt").Raw); ok {
		return s, true
	}

	for _, key := range rec.Keys() {
		lower := strings.ToLower(key)
		if !strings.Contains(lower, "prompt") || strings.Contains(lower, "negative") {
			continue
		}
		if s, ok := document.NonEmptyString(rec[key]); ok {
			return s, true
		}
	}
	return "", false
}

// deepPaths are probed by LocateDeep in order.
var deepPaths = [][]string{
	{"parameters", "sui_image_params", "prompt"},
	{"parameters", "prompt"},
	{"parameters", "Prompt"},
	{"Parameters", "sui_image_params", "prompt"},
	{"Parameters", "prompt"},
	{"Parameters", "Prompt"},
	{"sui_image_params", "prompt"},
	{"prompt"},
	{"Prompt"},
}

// LocateDeep finds a prompt in a raw document without running extraction.
// It probes nested parameter shapes first, then scans one level of
// object-valued entries. Only plain text counts; a JSON-encoded workflow
// stored under "prompt" is not a prompt.
func LocateDeep(doc map[string]any) (string, bool) {
	for _, path := range deepPaths {
		if s, ok := document.Path(doc, path...).PlainText(); ok {
			return s, true
		}
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := document.Classify(doc[k])
		if !v.IsObject() {
			continue
		}
		for _, path := range [][]string{{"prompt"}, {"Prompt"}, {"sui_image_params", "prompt"}} {
			if s, ok := document.Path(v.Object, path...).PlainText(); ok {
				return s, true
			}
		}
	}
	return "", false
}
