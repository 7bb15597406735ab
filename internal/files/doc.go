// Package files groups the media file sub-packages:
//   - filesystem: filesystem abstraction (OS and in-memory)
//   - scanner: media discovery, checksums and identities
//
// # Usage
//
//	s := scanner.NewScanner(checksum.New())
//	result, err := s.ScanDirectory("./outputs")
package files
