// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - ResourceStore: local healthcare resources
//   - ProtocolStore: first-aid protocols by emergency type
//   - ConsultationLog / ConsultationHistory: append-only consultation log
//   - GuidanceCache: evaluated results keyed by request fingerprint
//   - SchedulerStore: maintenance task state and history
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
// Migration 002 seeds nationwide resources and built-in protocols.
//
// # Data Location
//
// By default, the database is stored at ~/.sahaaya/data/sahaaya.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
