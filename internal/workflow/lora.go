package workflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vvka-141/genmeta/internal/document"
)

// Lora is a LoRA applied by a loader node. Empty strengths are unknown.
type Lora struct {
	Name          string
	StrengthModel json.Number
	StrengthClip  json.Number
}

func (l Lora) String() string {
	return fmt.Sprintf("%s (model: %s, clip: %s)", l.Name, orNA(l.StrengthModel), orNA(l.StrengthClip))
}

func orNA(n json.Number) string {
	if n == "" {
		return "N/A"
	}
	return n.String()
}

// parseLora reads a loader node's inputs. The lora_name must be a literal string.
func parseLora(inputs map[string]any) (Lora, bool) {
	name, ok := document.String(inputs["lora_name"])
	if !ok {
		return Lora{}, false
	}
	l := Lora{Name: name}
	l.StrengthModel, _ = document.Number(inputs["strength_model"])
	l.StrengthClip, _ = document.Number(inputs["strength_clip"])
	return l, true
}

// FormatLoras renders loras as a single comma-separated display string.
func FormatLoras(loras []Lora) string {
	parts := make([]string, len(loras))
	for i, l := range loras {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}
