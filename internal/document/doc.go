// Package document decodes raw metadata documents at the boundary of the
// extraction engine.
//
// A raw document is an untyped JSON-like tree in which some values are
// themselves JSON-encoded strings. Instead of sniffing shapes ad hoc, callers
// classify a value once into a Value whose Kind is one of:
//
//   - KindMissing: the key is absent
//   - KindObject: a decoded JSON object
//   - KindJSONString: a string that decodes strictly to a JSON object
//   - KindJSONValue: a string holding valid JSON that is not an object
//   - KindPlainString: any other string
//   - KindOther: numbers, booleans, arrays and null
//
// Numbers are normalized to json.Number regardless of how the caller decoded
// the document (float64, integer types or json.Number).
package document
