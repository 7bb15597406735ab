package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

func TestPromptCmd(t *testing.T) {
	tests := []struct {
		name   string
		deep   bool
		tags   bool
		unique bool
		doc    string
		want   string
	}{
		{
			name: "positive prompt",
			doc:  `{"parameters": "a cat, on a mat\nSteps: 20"}`,
			want: "a cat, on a mat\n",
		},
		{
			name: "tags",
			tags: true,
			doc:  `{"parameters": "A Cat, on  a mat, a cat\nSteps: 20"}`,
			want: "a_cat\non_a_mat\na_cat\n",
		},
		{
			name:   "unique tags",
			tags:   true,
			unique: true,
			doc:    `{"parameters": "A Cat, on  a mat, a cat\nSteps: 20"}`,
			want:   "a_cat\non_a_mat\n",
		},
		{
			name: "deep search",
			deep: true,
			doc:  `{"meta": {"prompt": "hidden cat"}}`,
			want: "hidden cat\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			resetPromptFlags()
			promptFlags.deep = tt.deep
			promptFlags.tags = tt.tags
			promptFlags.unique = tt.unique
			out, _ := capture(t, promptCmd)

			path := writeFile(t, dir, "image.json", []byte(tt.doc))
			require.NoError(t, runPrompt(promptCmd, []string{path}))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPromptCmd_NotFoundWithoutDeep(t *testing.T) {
	dir := isolate(t)
	resetPromptFlags()
	capture(t, promptCmd)

	path := writeFile(t, dir, "image.json", []byte(`{"meta": {"prompt": "hidden cat"}}`))
	err := runPrompt(promptCmd, []string{path})
	assert.ErrorIs(t, err, genmeta.ErrNotFound)
}

func TestPromptCmd_UniqueRequiresTags(t *testing.T) {
	isolate(t)
	resetPromptFlags()
	promptFlags.unique = true
	capture(t, promptCmd)

	err := runPrompt(promptCmd, []string{"image.png"})
	assert.Equal(t, genmeta.ExitUsageError, genmeta.ExitCodeForError(err))
}

func TestPromptCmd_Stdin(t *testing.T) {
	isolate(t)
	resetPromptFlags()
	out, _ := capture(t, promptCmd)
	promptCmd.SetIn(strings.NewReader("just a prompt"))

	require.NoError(t, runPrompt(promptCmd, []string{"-"}))
	assert.Equal(t, "just a prompt\n", out.String())
}
