// Package logging provides implementations of the genmeta.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: plain lines on stderr with [VERBOSE]/[ERROR] prefixes
//   - JSONLogger: structured zerolog lines, one JSON object per message
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
