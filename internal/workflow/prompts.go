package workflow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// negativeHint matches words that usually only appear in negative prompts.
var negativeHint = regexp.MustCompile(`(?i)\b(bad|worst|ugly|deformed|blurry|low quality|watermark)\b`)

// PromptNode is a text-encoding node found during the extraction pass.
type PromptNode struct {
	ID         string
	Text       string
	IsPositive bool
	IsNegative bool
}

// LooksNegative reports whether text contains a typical negative-prompt word.
func LooksNegative(text string) bool {
	return negativeHint.MatchString(text)
}

// conditioning holds the node ids referenced by the sampler.
type conditioning struct {
	positive string
	negative string
}

// resolvePrompts assigns prompt and negative_prompt from the collected text
// nodes, which must be in canonical order.
func resolvePrompts(rec genmeta.Record, nodes []PromptNode, c conditioning) {
	var pos, neg *PromptNode
	for i := range nodes {
		if pos == nil && nodes[i].IsPositive {
			pos = &nodes[i]
		}
		if neg == nil && nodes[i].IsNegative {
			neg = &nodes[i]
		}
	}

	if pos != nil {
		rec[genmeta.KeyPrompt] = pos.Text
	}
	if neg != nil {
		rec[genmeta.KeyNegativePrompt] = neg.Text
	}
	if pos == nil && neg == nil {
		assignUnconnected(rec, nodes)
	}

	// The positive reference may point past a text node (e.g. at a
	// conditioning combiner); a single leftover text node is then the prompt.
	if pos == nil && (c.positive != "" || neg != nil) {
		var unidentified []PromptNode
		for _, n := range nodes {
			if !n.IsPositive && !n.IsNegative {
				unidentified = append(unidentified, n)
			}
		}
		if len(unidentified) == 1 {
			rec[genmeta.KeyPrompt] = unidentified[0].Text
		}
	}
}

// assignUnconnected handles text nodes that no sampler reference identified.
func assignUnconnected(rec genmeta.Record, nodes []PromptNode) {
	switch len(nodes) {
	case 0:
	case 1:
		rec[genmeta.KeyPrompt] = nodes[0].Text
	case 2:
		first, second := nodes[0], nodes[1]
		if LooksNegative(first.Text) && !LooksNegative(second.Text) {
			first, second = second, first
		}
		rec[genmeta.KeyPrompt] = first.Text
		rec[genmeta.KeyNegativePrompt] = second.Text
	default:
		parts := make([]string, len(nodes))
		for i, n := range nodes {
			parts[i] = fmt.Sprintf("[Node %s]\n%s", n.ID, n.Text)
		}
		rec[genmeta.KeyPrompt] = strings.Join(parts, "\n\n---\n\n")
	}
}
