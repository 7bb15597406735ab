package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Calculator is an interface for computing checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateReader computes the raw checksum of everything read from r.
	CalculateReader(r io.Reader) (string, error)

	// Fingerprint computes a checksum of the record's canonical JSON.
	Fingerprint(rec genmeta.Record) (string, error)

	// CalculatePrompt computes a checksum of the normalized prompt text.
	CalculatePrompt(prompt string) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateReader streams r through SHA-256.
func (c SHA256) CalculateReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Fingerprint hashes the record marshaled as JSON. encoding/json writes map
// keys in sorted order and json.Number values verbatim, so equal records
// always produce equal fingerprints.
func (c SHA256) Fingerprint(rec genmeta.Record) (string, error) {
	if rec == nil {
		rec = genmeta.Record{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return c.CalculateRaw(data), nil
}

// CalculatePrompt computes SHA-256 of the normalized prompt.
func (c SHA256) CalculatePrompt(prompt string) string {
	hash := sha256.Sum256([]byte(NormalizePrompt(prompt)))
	return hex.EncodeToString(hash[:])
}

// NormalizePrompt lower-cases the prompt, collapses whitespace runs and
// drops spaces around commas.
func NormalizePrompt(prompt string) string {
	var b strings.Builder
	b.Grow(len(prompt))

	lastWasSpace := false
	for _, r := range prompt {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			b.WriteRune(unicode.ToLower(r))
			lastWasSpace = false
		}
	}

	s := strings.TrimSpace(b.String())
	s = strings.ReplaceAll(s, " ,", ",")
	s = strings.ReplaceAll(s, ", ", ",")
	return s
}
