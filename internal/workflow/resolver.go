package workflow

import (
	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Resolve locates a workflow in doc and resolves it. It reports false when
// there is no workflow or the workflow yields no attributes.
func Resolve(doc map[string]any) (genmeta.Record, bool) {
	raw, ok := Locate(doc)
	if !ok {
		return nil, false
	}
	rec := ResolveGraph(NewGraph(raw))
	if len(rec) == 0 {
		return nil, false
	}
	return rec, true
}

// ResolveGraph extracts the canonical attributes of g. The result may be empty.
func ResolveGraph(g Graph) genmeta.Record {
	rec := genmeta.Record{}
	c := findConditioning(g)

	var prompts []PromptNode
	var loras []Lora

	for _, n := range g.Nodes() {
		in := n.Inputs
		switch n.ClassType {
		case ClassCLIPTextEncode:
			text, ok := document.NonEmptyString(in["text"])
			if !ok {
				continue
			}
			prompts = append(prompts, PromptNode{
				ID:         n.ID,
				Text:       text,
				IsPositive: c.positive != "" && n.ID == c.positive,
				IsNegative: c.negative != "" && n.ID == c.negative,
			})

		case ClassCheckpointLoaderSimple, ClassCheckpointLoader:
			setString(rec, genmeta.KeyCheckpoint, in["ckpt_name"])

		case ClassKSampler, ClassKSamplerAdvanced:
			if !setNumber(rec, genmeta.KeySeed, in["seed"]) {
				setNumber(rec, genmeta.KeySeed, in["noise_seed"])
			}
			setNumber(rec, genmeta.KeySteps, in["steps"])
			setNumber(rec, genmeta.KeyCFGScale, in["cfg"])
			setString(rec, genmeta.KeySampler, in["sampler_name"])
			setString(rec, genmeta.KeyScheduler, in["scheduler"])
			setNumber(rec, genmeta.KeyDenoise, in["denoise"])

		case ClassVAELoader:
			setString(rec, genmeta.KeyVAE, in["vae_name"])

		case ClassEmptyLatentImage:
			setNumber(rec, genmeta.KeyWidth, in["width"])
			setNumber(rec, genmeta.KeyHeight, in["height"])
			setNumber(rec, genmeta.KeyBatchSize, in["batch_size"])

		case ClassLoraLoader, ClassLoraLoaderModelOnly:
			if l, ok := parseLora(in); ok {
				loras = append(loras, l)
			}
		}
	}

	resolvePrompts(rec, prompts, c)

	if len(loras) > 0 {
		rec[genmeta.KeyLoras] = FormatLoras(loras)
	}
	return rec
}

// findConditioning reads the positive/negative references of the sampler.
// When several samplers carry references, the last one in canonical order wins.
func findConditioning(g Graph) conditioning {
	var c conditioning
	for _, n := range g.Nodes() {
		if !isSampler(n.ClassType) {
			continue
		}
		pos, posOK := ParseReference(n.Inputs["positive"])
		neg, negOK := ParseReference(n.Inputs["negative"])
		if !posOK && !negOK {
			continue
		}
		c = conditioning{}
		if posOK {
			c.positive = pos.NodeID
		}
		if negOK {
			c.negative = neg.NodeID
		}
	}
	return c
}

func isSampler(class string) bool {
	return class == ClassKSampler || class == ClassKSamplerAdvanced
}

func setString(rec genmeta.Record, key string, v any) bool {
	s, ok := document.NonEmptyString(v)
	if !ok {
		return false
	}
	rec[key] = s
	return true
}

func setNumber(rec genmeta.Record, key string, v any) bool {
	n, ok := document.Number(v)
	if !ok {
		return false
	}
	rec[key] = n
	return true
}
