// Package storage defines the storage collaborator metabox reads from and
// writes to, plus helpers that dispatch on a field's storage type.
//
// Values are strings keyed by (item id, field name) for meta fields and by
// field name alone for site-level option fields. Implementations live in the
// sub-packages:
//
//   - memory: maps guarded by a mutex, for tests and previews
//   - file: a JSON document on disk, replaced atomically on every write
//   - sqlite: an embedded database through modernc.org/sqlite
//   - postgres: a pgx connection pool
//   - redis: one hash per item plus one hash for options
package storage
