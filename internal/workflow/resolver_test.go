package workflow

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

const basicWorkflow = `{
  "3": {"class_type": "KSampler", "inputs": {"seed": 156680208700286, "steps": 20, "cfg": 8, "sampler_name": "euler", "scheduler": "normal", "denoise": 1, "model": ["4", 0], "positive": ["6", 0], "negative": ["7", 0], "latent_image": ["5", 0]}},
  "4": {"class_type": "CheckpointLoaderSimple", "inputs": {"ckpt_name": "v1-5-pruned-emaonly.safetensors"}},
  "5": {"class_type": "EmptyLatentImage", "inputs": {"width": 512, "height": 768, "batch_size": 1}},
  "6": {"class_type": "CLIPTextEncode", "inputs": {"text": "beautiful scenery nature glass bottle landscape", "clip": ["4", 1]}},
  "7": {"class_type": "CLIPTextEncode", "inputs": {"text": "text, watermark", "clip": ["4", 1]}},
  "8": {"class_type": "VAEDecode", "inputs": {"samples": ["3", 0], "vae": ["4", 2]}},
  "9": {"class_type": "SaveImage", "inputs": {"filename_prefix": "ComfyUI", "images": ["8", 0]}}
}`

func TestResolve_BasicWorkflow(t *testing.T) {
	rec, ok := Resolve(map[string]any{"prompt": basicWorkflow})
	require.True(t, ok)

	assert.Equal(t, genmeta.Record{
		"prompt":          "beautiful scenery nature glass bottle landscape",
		"negative_prompt": "text, watermark",
		"checkpoint":      "v1-5-pruned-emaonly.safetensors",
		"seed":            json.Number("156680208700286"),
		"steps":           json.Number("20"),
		"cfg_scale":       json.Number("8"),
		"sampler":         "euler",
		"scheduler":       "normal",
		"denoise":         json.Number("1"),
		"width":           json.Number("512"),
		"height":          json.Number("768"),
		"batch_size":      json.Number("1"),
	}, rec)
}

func TestResolve_ReferencedPromptsIgnoreIterationOrder(t *testing.T) {
	// Negative text looks positive and vice versa, so only the
	// references can produce the right assignment.
	layouts := []struct {
		name              string
		sampler, pos, neg string
	}{
		{"ascending", "1", "2", "3"},
		{"negative first", "1", "3", "2"},
		{"sampler last", "30", "10", "20"},
		{"mixed widths", "5", "100", "9"},
	}

	for _, l := range layouts {
		t.Run(l.name, func(t *testing.T) {
			raw := map[string]any{
				l.sampler: samplerNode(l.pos, l.neg),
				l.pos:     textNode("ugly watermark, but referenced as positive"),
				l.neg:     textNode("a serene lake"),
			}
			rec, ok := Resolve(map[string]any{"prompt": raw})
			require.True(t, ok)
			assert.Equal(t, "ugly watermark, but referenced as positive", rec[genmeta.KeyPrompt])
			assert.Equal(t, "a serene lake", rec[genmeta.KeyNegativePrompt])
		})
	}
}

func TestResolve_NumericReferenceIDs(t *testing.T) {
	src := `{"3": {"class_type": "KSampler", "inputs": {"positive": [6, 0], "negative": [7, 0]}},
	         "6": {"class_type": "CLIPTextEncode", "inputs": {"text": "pos"}},
	         "7": {"class_type": "CLIPTextEncode", "inputs": {"text": "neg"}}}`

	rec, ok := Resolve(map[string]any{"prompt": decodeWorkflow(t, src)})
	require.True(t, ok)
	assert.Equal(t, "pos", rec[genmeta.KeyPrompt])
	assert.Equal(t, "neg", rec[genmeta.KeyNegativePrompt])
}

func TestResolve_UnconnectedPrompts(t *testing.T) {
	t.Run("single node", func(t *testing.T) {
		rec, ok := Resolve(map[string]any{"prompt": map[string]any{"1": textNode("a fox")}})
		require.True(t, ok)
		assert.Equal(t, genmeta.Record{"prompt": "a fox"}, rec)
	})

	t.Run("keyword heuristic picks negative", func(t *testing.T) {
		rec, ok := Resolve(map[string]any{"prompt": map[string]any{
			"1": textNode("blurry, out of frame"),
			"2": textNode("a red bicycle"),
		}})
		require.True(t, ok)
		assert.Equal(t, "a red bicycle", rec[genmeta.KeyPrompt])
		assert.Equal(t, "blurry, out of frame", rec[genmeta.KeyNegativePrompt])
	})

	t.Run("keyword heuristic is case-insensitive and word-bounded", func(t *testing.T) {
		rec, _ := Resolve(map[string]any{"prompt": map[string]any{
			"1": textNode("badger in a forest"),
			"2": textNode("LOW QUALITY"),
		}})
		assert.Equal(t, "badger in a forest", rec[genmeta.KeyPrompt])
		assert.Equal(t, "LOW QUALITY", rec[genmeta.KeyNegativePrompt])
	})

	t.Run("no keyword falls back to order", func(t *testing.T) {
		rec, _ := Resolve(map[string]any{"prompt": map[string]any{
			"12": textNode("second"),
			"3":  textNode("first"),
		}})
		assert.Equal(t, "first", rec[genmeta.KeyPrompt])
		assert.Equal(t, "second", rec[genmeta.KeyNegativePrompt])
	})

	t.Run("conflicting keywords fall back to order", func(t *testing.T) {
		rec, _ := Resolve(map[string]any{"prompt": map[string]any{
			"1": textNode("worst quality"),
			"2": textNode("ugly"),
		}})
		assert.Equal(t, "worst quality", rec[genmeta.KeyPrompt])
		assert.Equal(t, "ugly", rec[genmeta.KeyNegativePrompt])
	})

	t.Run("many nodes are labeled and joined", func(t *testing.T) {
		rec, ok := Resolve(map[string]any{"prompt": map[string]any{
			"10": textNode("d"),
			"2":  textNode("b"),
			"1":  textNode("a"),
			"3":  textNode("c"),
		}})
		require.True(t, ok)
		assert.Equal(t,
			"[Node 1]\na\n\n---\n\n[Node 2]\nb\n\n---\n\n[Node 3]\nc\n\n---\n\n[Node 10]\nd",
			rec[genmeta.KeyPrompt])
		assert.NotContains(t, rec, genmeta.KeyNegativePrompt)
	})
}

func TestResolve_PositiveThroughCombiner(t *testing.T) {
	raw := map[string]any{
		"3":  samplerNode("10", "7"),
		"6":  textNode("a lighthouse at dusk"),
		"7":  textNode("lowres"),
		"10": map[string]any{"class_type": "ConditioningCombine", "inputs": map[string]any{"conditioning_1": []any{"6", 0.0}}},
	}

	rec, ok := Resolve(map[string]any{"prompt": raw})
	require.True(t, ok)
	assert.Equal(t, "a lighthouse at dusk", rec[genmeta.KeyPrompt])
	assert.Equal(t, "lowres", rec[genmeta.KeyNegativePrompt])
}

func TestResolve_PositiveThroughCombinerWithSeveralLeftovers(t *testing.T) {
	raw := map[string]any{
		"3":  samplerNode("10", "7"),
		"5":  textNode("style"),
		"6":  textNode("subject"),
		"7":  textNode("lowres"),
		"10": map[string]any{"class_type": "ConditioningCombine", "inputs": map[string]any{}},
	}

	rec, ok := Resolve(map[string]any{"prompt": raw})
	require.True(t, ok)
	assert.NotContains(t, rec, genmeta.KeyPrompt)
	assert.Equal(t, "lowres", rec[genmeta.KeyNegativePrompt])
}

func TestResolve_ReferencesInPlaceOfLiteralsAreIgnored(t *testing.T) {
	raw := map[string]any{
		"3": map[string]any{"class_type": ClassKSampler, "inputs": map[string]any{
			"seed":         []any{"11", 0.0},
			"steps":        30.0,
			"sampler_name": []any{"12", 0.0},
		}},
		"6":  map[string]any{"class_type": ClassCLIPTextEncode, "inputs": map[string]any{"text": []any{"13", 0.0}}},
		"11": map[string]any{"class_type": "PrimitiveNode", "inputs": map[string]any{"value": 5.0}},
	}

	rec, ok := Resolve(map[string]any{"prompt": raw})
	require.True(t, ok)
	assert.Equal(t, genmeta.Record{"steps": json.Number("30")}, rec)
}

func TestResolve_AdvancedSamplerNoiseSeed(t *testing.T) {
	raw := map[string]any{
		"3": map[string]any{"class_type": ClassKSamplerAdvanced, "inputs": map[string]any{
			"noise_seed": 7.0,
			"steps":      25.0,
		}},
	}
	rec, ok := Resolve(map[string]any{"prompt": raw})
	require.True(t, ok)
	assert.Equal(t, json.Number("7"), rec[genmeta.KeySeed])
}

func TestResolve_LastSamplerReferencesWin(t *testing.T) {
	raw := map[string]any{
		"1":  samplerNode("10", "11"),
		"2":  samplerNode("12", "11"),
		"10": textNode("base pass"),
		"11": textNode("negative"),
		"12": textNode("refiner pass"),
	}
	rec, ok := Resolve(map[string]any{"prompt": raw})
	require.True(t, ok)
	assert.Equal(t, "refiner pass", rec[genmeta.KeyPrompt])
	assert.Equal(t, "negative", rec[genmeta.KeyNegativePrompt])
}

func TestResolve_Loras(t *testing.T) {
	raw := map[string]any{
		"4": map[string]any{"class_type": ClassCheckpointLoaderSimple, "inputs": map[string]any{"ckpt_name": "sdxl.safetensors"}},
		"10": map[string]any{"class_type": ClassLoraLoader, "inputs": map[string]any{
			"lora_name": "detail.safetensors", "strength_model": 0.8, "strength_clip": 1.0,
		}},
		"11": map[string]any{"class_type": ClassLoraLoader, "inputs": map[string]any{
			"lora_name": "style.safetensors", "strength_model": 0.0,
		}},
		"12": map[string]any{"class_type": ClassLoraLoader, "inputs": map[string]any{
			"lora_name": []any{"20", 0.0}, "strength_model": 1.0,
		}},
		"13": map[string]any{"class_type": ClassLoraLoaderModelOnly, "inputs": map[string]any{
			"lora_name": "turbo.safetensors", "strength_model": 1.0,
		}},
	}

	rec, ok := Resolve(map[string]any{"workflow": raw})
	require.True(t, ok)
	assert.Equal(t,
		"detail.safetensors (model: 0.8, clip: 1), style.safetensors (model: 0, clip: N/A), turbo.safetensors (model: 1, clip: N/A)",
		rec[genmeta.KeyLoras])
}

func TestResolve_LoraZeroStrength(t *testing.T) {
	raw := map[string]any{
		"10": map[string]any{"class_type": ClassLoraLoader, "inputs": map[string]any{
			"lora_name": "off.safetensors", "strength_model": 0.0, "strength_clip": 0.0,
		}},
		"11": map[string]any{"class_type": ClassLoraLoader, "inputs": map[string]any{
			"lora_name": "bare.safetensors",
		}},
	}

	rec, ok := Resolve(map[string]any{"workflow": raw})
	require.True(t, ok)
	assert.Equal(t,
		"off.safetensors (model: 0, clip: 0), bare.safetensors (model: N/A, clip: N/A)",
		rec[genmeta.KeyLoras])
}

func TestResolve_NotFound(t *testing.T) {
	tests := map[string]map[string]any{
		"no workflow":         {"parameters": "a cat"},
		"unknown nodes only":  {"prompt": map[string]any{"1": map[string]any{"class_type": "SaveImage", "inputs": map[string]any{}}}},
		"ui-format workflow":  {"workflow": `{"last_node_id": 9, "nodes": [{"id": 3, "type": "KSampler"}]}`},
		"loader without name": {"prompt": map[string]any{"1": map[string]any{"class_type": ClassLoraLoader, "inputs": map[string]any{}}}},
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			rec, ok := Resolve(doc)
			assert.False(t, ok)
			assert.Nil(t, rec)
		})
	}
}

func TestLooksNegative(t *testing.T) {
	for _, s := range []string{"bad anatomy", "Worst Quality", "deformed hands", "low quality", "WATERMARK"} {
		assert.True(t, LooksNegative(s), s)
	}
	for _, s := range []string{"badger", "a lowquality", "sunset", "uglyduckling"} {
		assert.False(t, LooksNegative(s), s)
	}
}

func ExampleResolve() {
	doc := map[string]any{"prompt": `{
	  "3": {"class_type": "KSampler", "inputs": {"steps": 20, "positive": ["6", 0], "negative": ["7", 0]}},
	  "6": {"class_type": "CLIPTextEncode", "inputs": {"text": "a cat"}},
	  "7": {"class_type": "CLIPTextEncode", "inputs": {"text": "blurry"}}
	}`}

	rec, _ := Resolve(doc)
	for _, k := range rec.Keys() {
		fmt.Printf("%s=%v\n", k, rec[k])
	}
	// Output:
	// negative_prompt=blurry
	// prompt=a cat
	// steps=20
}
