// Package repository defines the persistence abstraction for stackmap.
//
// Persisted state is a handful of JSON records addressed by key, the same way a
// browser keeps them in local storage:
//
//   - stackmap.positions.cube  - the position snapshot of the cube layout
//   - stackmap.positions.lanes - the position snapshot of the lanes layout
//   - stackmap.theme           - the theme colors
//
// # Store Interface
//
// Store offers Get, Put and Delete on raw bytes. Callers own the encoding and
// decide what a malformed value means; the store never interprets values.
//
// # Implementations
//
//   - memory: process-local map, used by tests and the default server config
//   - sqlite: single-table SQLite database with WAL mode
//   - redis: one string key per record under a configurable prefix
//   - postgres: single-table Postgres database through a pgx pool
//
// All implementations return ErrNotFound for missing keys.
package repository
