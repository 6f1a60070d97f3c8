// Package store provides SQLite-backed storage for sorting recordings.
//
// A recording is stored as one row in recordings and one row per step in
// steps. Steps are kept as canonical JSON so a stored recording can be
// checked against its trace hash when it is read back.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// PRAGMA user_version records the schema version. Open refuses databases
// stamped with a newer version than it knows.
//
// Reads are ordered deterministically: steps by seq, recordings by id
// (UUIDv7, so creation order) with COLLATE BINARY.
package store
