// Package textblock parses free-text parameter blocks into canonical records.
//
// A parameter block is prompt text, optionally followed by a
// "Negative prompt:" section, followed by a single comma-separated settings
// line:
//
//	a cat sitting on a windowsill
//	Negative prompt: blurry, lowres
//	Steps: 20, Sampler: Euler a, CFG scale: 7, Seed: 42, Size: 512x512, Model: foo
//
// Parsing never fails. Input without recognizable structure becomes a record
// holding only the trimmed text as its prompt.
package textblock
