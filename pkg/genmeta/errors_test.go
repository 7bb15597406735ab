package genmeta

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", fmt.Errorf("missing <file>: %w", ErrUsage), ExitUsageError},
		{"not found", ErrNotFound, ExitNotFound},
		{"wrapped not found", fmt.Errorf("extract image.png: %w", ErrNotFound), ExitNotFound},
		{"config", fmt.Errorf("concurrency 12: %w", ErrInvalidConfig), ExitConfigError},
		{"unsupported media", &MediaError{Path: "a.mp4", Message: "no reader", Err: ErrUnsupportedMedia}, ExitUnsupportedMedia},
		{"fetch", fmt.Errorf("status 502: %w", ErrFetchFailed), ExitFetchFailed},
		{"store", fmt.Errorf("upsert: %w", ErrStoreFailed), ExitStoreFailed},
		{"unclassified", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestMediaError_Error(t *testing.T) {
	err := &MediaError{Path: "./a.png", Message: "truncated chunk"}
	assert.Equal(t, "media error in ./a.png: truncated chunk", err.Error())

	err.Hint = "Re-export the image"
	assert.Contains(t, err.Error(), "\n\nHint: Re-export the image")
}
