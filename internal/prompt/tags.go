package prompt

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Tags splits a prompt on commas into tag tokens. Each token is trimmed,
// internal whitespace runs become "_" and the result is lower-cased. Empty
// tokens are dropped.
func Tags(prompt string) []string {
	var tags []string
	for _, part := range strings.Split(prompt, ",") {
		tag := whitespace.ReplaceAllString(strings.TrimSpace(part), "_")
		tag = strings.ToLower(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// Dedupe keeps the first occurrence of each tag, compared case-insensitively.
func Dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
