// Package checksum computes content hashes for media files and extracted
// records.
//
// Three hashes are used:
//
//   - Raw checksum: SHA-256 of the exact file content (detects any change)
//   - Record fingerprint: SHA-256 of the record's canonical JSON, so two files
//     carrying the same generation settings share a fingerprint
//   - Prompt checksum: SHA-256 of the prompt after normalization, so prompts
//     that differ only in case or spacing match
//
// # Normalization Strategy
//
// Prompt normalization:
//  1. Convert content to lowercase
//  2. Collapse all whitespace sequences to single spaces
//  3. Remove spaces around commas
//  4. Trim leading/trailing whitespace
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(fileContent)
//	fp, err := calculator.Fingerprint(record)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
