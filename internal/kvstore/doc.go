// Package kvstore is the key-value persistence layer of Ticketly.
//
// # Overview
//
// Every record collection (users, tickets) and the session slot live under
// one fixed string key each. Values are strings; collections are JSON blobs
// that are replaced whole on every write. The Store interface exposes the
// get/set/remove contract and has four implementations:
//
//   - SQLStore over SQLite (modernc.org/sqlite), the default local file
//   - SQLStore over PostgreSQL (pgx), same table, $n placeholders
//   - S3Store, one object per key in an S3-compatible bucket
//   - MemoryStore, process-local, used by tests
//
// SQL schemas are embedded goose migrations applied by Open.
//
// # Corrupt data
//
// ReadJSON never fails on a blob that does not decode. It logs a warning,
// removes the key and reports the value as absent, so callers fall back to
// an empty collection.
//
// # Concurrency
//
// Implementations are safe for concurrent use. Read-modify-write cycles on
// a blob are not atomic across processes: the last writer wins.
package kvstore
