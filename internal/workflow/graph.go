package workflow

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vvka-141/genmeta/internal/document"
)

// Node class types understood by the resolver.
const (
	ClassKSampler               = "KSampler"
	ClassKSamplerAdvanced       = "KSamplerAdvanced"
	ClassCLIPTextEncode         = "CLIPTextEncode"
	ClassCheckpointLoaderSimple = "CheckpointLoaderSimple"
	ClassCheckpointLoader       = "CheckpointLoader"
	ClassVAELoader              = "VAELoader"
	ClassEmptyLatentImage       = "EmptyLatentImage"
	ClassLoraLoader             = "LoraLoader"
	ClassLoraLoaderModelOnly    = "LoraLoaderModelOnly"
)

// Node is a single typed operation in a workflow graph.
type Node struct {
	ID        string
	ClassType string
	Inputs    map[string]any
}

// Reference points at an output slot of another node.
type Reference struct {
	NodeID string
	Slot   int
}

// ParseReference reads v as a [node_id, slot] pair. The node id may be a
// string or a number; the slot must be an integer.
func ParseReference(v any) (Reference, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return Reference{}, false
	}

	var id string
	switch t := arr[0].(type) {
	case string:
		id = t
	default:
		n, ok := document.Number(t)
		if !ok {
			return Reference{}, false
		}
		id = n.String()
	}
	if id == "" {
		return Reference{}, false
	}

	n, ok := document.Number(arr[1])
	if !ok {
		return Reference{}, false
	}
	slot, err := n.Int64()
	if err != nil {
		return Reference{}, false
	}
	return Reference{NodeID: id, Slot: int(slot)}, true
}

// Graph is a workflow with its nodes held in canonical order.
type Graph struct {
	nodes []Node
	byID  map[string]int
}

// NewGraph builds a graph from a decoded workflow object. Entries that are
// not objects with a string class_type are skipped.
func NewGraph(raw map[string]any) Graph {
	g := Graph{byID: make(map[string]int, len(raw))}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	SortIDs(ids)

	for _, id := range ids {
		obj, ok := raw[id].(map[string]any)
		if !ok {
			continue
		}
		class, ok := obj["class_type"].(string)
		if !ok || class == "" {
			continue
		}
		inputs, _ := obj["inputs"].(map[string]any)
		if inputs == nil {
			inputs = map[string]any{}
		}
		g.byID[id] = len(g.nodes)
		g.nodes = append(g.nodes, Node{ID: id, ClassType: class, Inputs: inputs})
	}
	return g
}

// Nodes returns the nodes in canonical order.
func (g Graph) Nodes() []Node {
	return g.nodes
}

// Node looks up a node by id.
func (g Graph) Node(id string) (Node, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Len returns the number of typed nodes.
func (g Graph) Len() int {
	return len(g.nodes)
}

// SortIDs orders node ids canonically: numeric ids ascending by value, then
// non-numeric ids lexicographically. Numeric ties fall back to the string.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return lessID(ids[i], ids[j])
	})
}

func lessID(a, b string) bool {
	an, aok := numericID(a)
	bn, bok := numericID(b)
	switch {
	case aok && bok:
		if an != bn {
			return an < bn
		}
		return a < b
	case aok != bok:
		return aok
	default:
		return a < b
	}
}

func numericID(id string) (float64, bool) {
	if !document.IsNumericKey(id) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(id), 64)
	return f, err == nil
}

// Locate finds the workflow object in a raw document. The prompt field is
// used when it decodes to an object with at least one numeric-looking key;
// otherwise the workflow field is used when it decodes to an object.
func Locate(doc map[string]any) (map[string]any, bool) {
	if v := document.Lookup(doc, "prompt"); v.IsObject() && hasNumericKey(v.Object) {
		return v.Object, true
	}
	if v := document.Lookup(doc, "workflow"); v.IsObject() {
		return v.Object, true
	}
	return nil, false
}

func hasNumericKey(obj map[string]any) bool {
	for k := range obj {
		if document.IsNumericKey(k) {
			return true
		}
	}
	return false
}
