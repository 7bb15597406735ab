package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// decodeWorkflow decodes a JSON workflow the way documents arrive from disk.
func decodeWorkflow(t *testing.T, src string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(src), &raw))
	return raw
}

func textNode(text string) map[string]any {
	return map[string]any{
		"class_type": ClassCLIPTextEncode,
		"inputs":     map[string]any{"text": text, "clip": []any{"4", 1.0}},
	}
}

func samplerNode(positive, negative string) map[string]any {
	inputs := map[string]any{
		"seed":         42.0,
		"steps":        20.0,
		"cfg":          7.5,
		"sampler_name": "euler",
		"scheduler":    "normal",
		"denoise":      1.0,
		"model":        []any{"4", 0.0},
	}
	if positive != "" {
		inputs["positive"] = []any{positive, 0.0}
	}
	if negative != "" {
		inputs["negative"] = []any{negative, 0.0}
	}
	return map[string]any{"class_type": ClassKSampler, "inputs": inputs}
}
