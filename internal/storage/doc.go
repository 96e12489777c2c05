// Package storage provides the key-value backends decks are persisted in and
// the codec that stores the whole deck table as one JSON value under a fixed key.
//
// Backends:
//   - FileKV: one file per key under a data directory (~/.flashdeck by default)
//   - SQLiteKV: a single kv table in a SQLite database (pure-Go driver)
//   - MemoryKV: process-local map, used by tests and --storage memory
package storage
