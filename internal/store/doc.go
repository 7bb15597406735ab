// Package store persists extracted generation records in PostgreSQL.
//
// Each media item owns one row, keyed by its deterministic media id, so
// rescanning a directory updates rows in place. The record itself is kept
// as jsonb next to the located prompt, its tags and two hashes:
//
//   - checksum: SHA-256 of the media file, used to skip unchanged files
//   - fingerprint: SHA-256 of the record's canonical JSON, equal for
//     identical generations regardless of which file carried them
//
// All database calls run through a retry executor that retries
// connection loss and serialization conflicts.
package store
