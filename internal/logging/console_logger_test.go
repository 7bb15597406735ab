package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

func TestConsoleLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLoggerTo(&buf, true).Verbose("matched %s", "workflow")
	assert.Equal(t, "[VERBOSE] matched workflow\n", buf.String())

	buf.Reset()
	NewConsoleLoggerTo(&buf, false).Verbose("matched %s", "workflow")
	assert.Empty(t, buf.String())
}

func TestConsoleLogger_InfoAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, false)
	logger.Info("scanned %d files", 3)
	logger.Error("read failed")

	expected := "scanned 3 files\n[ERROR] read failed\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_NoArgsKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLoggerTo(&buf, false).Info("100% done")
	assert.Equal(t, "100% done\n", buf.String())
}

func TestConsoleLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Verbose("item %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 50)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[VERBOSE] item "), line)
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLoggerTo(&buf, false)
	logger.Verbose("hidden")
	logger.Info("scanned %d files", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "scanned 2 files", entry["message"])
	assert.Equal(t, "genmeta", entry["component"])
	assert.Contains(t, entry, "time")
}

func TestJSONLogger_VerboseIsDebug(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLoggerTo(&buf, true).Verbose("matched %s", "parameters")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "matched parameters", entry["message"])
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("", &buf, false)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleLogger{}, l)

	l, err = New(FormatJSON, &buf, false)
	require.NoError(t, err)
	assert.IsType(t, &JSONLogger{}, l)

	_, err = New("xml", &buf, false)
	assert.True(t, errors.Is(err, genmeta.ErrInvalidConfig))
}

func TestNullLogger(t *testing.T) {
	var l genmeta.Logger = NewNullLogger()
	l.Verbose("x")
	l.Info("x %d", 1)
	l.Error("x")
}
