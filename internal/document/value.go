package document

import "strings"

// Kind classifies a raw document value.
type Kind int

const (
	KindMissing Kind = iota
	KindObject
	KindJSONString
	KindJSONValue
	KindPlainString
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindObject:
		return "object"
	case KindJSONString:
		return "json-string"
	case KindJSONValue:
		return "json-value"
	case KindPlainString:
		return "plain-string"
	default:
		return "other"
	}
}

// Value is a classified raw value.
type Value struct {
	Kind Kind

	// Object is set for KindObject and KindJSONString.
	Object map[string]any

	// Text is set for every string kind.
	Text string

	// Raw is the value as found in the document.
	Raw any
}

// IsObject reports whether the value carries an object, decoded or not.
func (v Value) IsObject() bool {
	return v.Kind == KindObject || v.Kind == KindJSONString
}

// Classify decodes v into a Value. A string is tried as JSON first.
func Classify(v any) Value {
	switch val := v.(type) {
	case nil:
		return Value{Kind: KindOther}
	case map[string]any:
		return Value{Kind: KindObject, Object: val, Raw: v}
	case string:
		decoded, ok := decodeJSON(val)
		if !ok {
			return Value{Kind: KindPlainString, Text: val, Raw: v}
		}
		if obj, isObj := decoded.(map[string]any); isObj {
			return Value{Kind: KindJSONString, Object: obj, Text: val, Raw: v}
		}
		return Value{Kind: KindJSONValue, Text: val, Raw: v}
	default:
		return Value{Kind: KindOther, Raw: v}
	}
}

// Lookup classifies doc[key]. A nil doc or an absent key yields KindMissing.
func Lookup(doc map[string]any, key string) Value {
	if doc == nil {
		return Value{Kind: KindMissing}
	}
	v, ok := doc[key]
	if !ok {
		return Value{Kind: KindMissing}
	}
	return Classify(v)
}

// Path follows keys through nested objects, decoding JSON-encoded objects on
// the way. It yields KindMissing as soon as an intermediate value is not an
// object.
func Path(doc map[string]any, keys ...string) Value {
	cur := Value{Kind: KindObject, Object: doc, Raw: doc}
	for _, key := range keys {
		if !cur.IsObject() {
			return Value{Kind: KindMissing}
		}
		cur = Lookup(cur.Object, key)
	}
	return cur
}

// PlainText returns the text of a non-blank string value.
// JSON-encoded objects are not considered text.
func (v Value) PlainText() (string, bool) {
	if v.Kind != KindPlainString && v.Kind != KindJSONValue {
		return "", false
	}
	if strings.TrimSpace(v.Text) == "" {
		return "", false
	}
	return v.Text, true
}
