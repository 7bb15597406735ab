package genmeta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Accessors(t *testing.T) {
	rec := Record{
		KeyPrompt: "a cat",
		KeySeed:   json.Number("42"),
		"size":    "512x512",
	}

	prompt, ok := rec.String(KeyPrompt)
	require.True(t, ok)
	assert.Equal(t, "a cat", prompt)

	_, ok = rec.String(KeySeed)
	assert.False(t, ok)

	seed, ok := rec.Number(KeySeed)
	require.True(t, ok)
	assert.Equal(t, json.Number("42"), seed)

	assert.Equal(t, []string{"prompt", "seed", "size"}, rec.Keys())
}

func TestRecord_Clone(t *testing.T) {
	rec := Record{KeyPrompt: "a"}
	clone := rec.Clone()
	clone[KeyPrompt] = "b"

	assert.Equal(t, "a", rec[KeyPrompt])
	assert.Nil(t, Record(nil).Clone())
}

func TestResult_Found(t *testing.T) {
	assert.False(t, Result{}.Found())
	assert.True(t, Result{Record: Record{KeyPrompt: "x"}}.Found())
	assert.False(t, Result{Record: Record{KeyPrompt: "x"}, Err: ErrUnsupportedMedia}.Found())
}
