package extract

import (
	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/internal/textblock"
	"github.com/vvka-141/genmeta/internal/workflow"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Source names used by the default chain.
const (
	SourceWorkflow       = "workflow"
	SourceSUIImageParams = "sui_image_params"
)

// MatchFunc inspects a document and returns a non-empty record on a match.
type MatchFunc func(doc map[string]any) (genmeta.Record, bool)

// Source is a named entry in the extraction chain.
type Source struct {
	Name  string
	Match MatchFunc
}

// DefaultSources returns the standard chain in priority order.
func DefaultSources() []Source {
	return []Source{
		WorkflowSource(),
		FieldSource("parameters"),
		FieldSource("Parameters"),
		FieldSource("prompt"),
		ObjectSource(SourceSUIImageParams),
	}
}

// WorkflowSource resolves node-graph workflows.
func WorkflowSource() Source {
	return Source{Name: SourceWorkflow, Match: workflow.Resolve}
}

// FieldSource reads a parameter-style field. An object (or a string holding a
// JSON object) is returned as the record. A string that is not JSON is parsed
// as a parameter block. Other JSON values decline.
func FieldSource(field string) Source {
	return Source{
		Name: field,
		Match: func(doc map[string]any) (genmeta.Record, bool) {
			v := document.Lookup(doc, field)
			switch v.Kind {
			case document.KindObject, document.KindJSONString:
				return fromObject(v.Object)
			case document.KindPlainString:
				if rec := textblock.Parse(v.Text); len(rec) > 0 {
					return rec, true
				}
			}
			return nil, false
		},
	}
}

// ObjectSource returns field as the record when it holds a non-empty object.
func ObjectSource(field string) Source {
	return Source{
		Name: field,
		Match: func(doc map[string]any) (genmeta.Record, bool) {
			obj, ok := doc[field].(map[string]any)
			if !ok {
				return nil, false
			}
			return fromObject(obj)
		},
	}
}

// fromObject copies obj into a record, normalizing top-level numbers to
// json.Number. Empty objects do not match.
func fromObject(obj map[string]any) (genmeta.Record, bool) {
	if len(obj) == 0 {
		return nil, false
	}
	rec := make(genmeta.Record, len(obj))
	for k, v := range obj {
		if _, isString := v.(string); !isString {
			if n, ok := document.Number(v); ok {
				v = n
			}
		}
		rec[k] = v
	}
	return rec, true
}
