package genmeta

import (
	"encoding/json"
	"sort"
)

// Well-known canonical record keys. Parameter blocks may add arbitrary
// normalized keys beyond these.
const (
	KeyPrompt         = "prompt"
	KeyNegativePrompt = "negative_prompt"
	KeyCheckpoint     = "checkpoint"
	KeySeed           = "seed"
	KeySteps          = "steps"
	KeyCFGScale       = "cfg_scale"
	KeySampler        = "sampler"
	KeyScheduler      = "scheduler"
	KeyDenoise        = "denoise"
	KeyVAE            = "vae"
	KeyWidth          = "width"
	KeyHeight         = "height"
	KeyBatchSize      = "batch_size"
	KeyLoras          = "loras"
)

// Record is the canonical, format-agnostic set of generation attributes.
//
// A missing key means the attribute is unknown; keys are never present with
// a nil placeholder. Numeric attributes are stored as json.Number so that
// large seeds survive unchanged and marshal back verbatim.
type Record map[string]any

// String returns the value for key if it is a string.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Number returns the value for key if it is numeric.
func (r Record) Number(key string) (json.Number, bool) {
	n, ok := r[key].(json.Number)
	return n, ok
}

// Keys returns the record keys in ascending order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
