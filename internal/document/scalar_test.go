package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  json.Number
		ok    bool
	}{
		{"json number", json.Number("7.5"), "7.5", true},
		{"float64 integral", 20.0, "20", true},
		{"float64 fraction", 0.75, "0.75", true},
		{"int", 512, "512", true},
		{"int64", int64(42), "42", true},
		{"uint64", uint64(18446744073709551615), "18446744073709551615", true},
		{"string", "20", "", false},
		{"bool", true, "", false},
		{"reference", []any{"4", 0.0}, "", false},
		{"invalid json number", json.Number("abc"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  json.Number
		ok    bool
	}{
		{"20", "20", true},
		{" 7 ", "7", true},
		{"0.35", "0.35", true},
		{"1e3", "1e3", true},
		{"-2", "-2", true},
		{"07", "7", true},
		{".5", "0.5", true},
		{"18446744073709551615", "18446744073709551615", true},
		{"512x512", "", false},
		{"Euler a", "", false},
		{"1.6.0", "", false},
		{"NaN", "", false},
		{"Inf", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNumericKey(t *testing.T) {
	for _, k := range []string{"3", "10", " 12 ", "4.5"} {
		assert.True(t, IsNumericKey(k), k)
	}
	for _, k := range []string{"", "last_node_id", "nodes", "NaN", "10:2"} {
		assert.False(t, IsNumericKey(k), k)
	}
}

func TestNonEmptyString(t *testing.T) {
	s, ok := NonEmptyString(" a ")
	assert.True(t, ok)
	assert.Equal(t, " a ", s)

	_, ok = NonEmptyString("  ")
	assert.False(t, ok)

	_, ok = NonEmptyString(3)
	assert.False(t, ok)
}
