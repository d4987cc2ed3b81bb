// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookReader: Library snapshots per user (internal/services/interfaces.go)
//   - ScoreWriter: Persist recomputed scores (internal/services/interfaces.go)
//   - PreferencesReader: Effective engine configuration (internal/services/interfaces.go)
//
// ## HTTP Interfaces
//
// Controllers depend on narrow slices of the library service so that tests
// can substitute fakes:
//
//   - BookLibrary, AnalyticsLibrary, IntegrityLibrary, PreferencesLibrary
//     (internal/http), combined as Library
//   - AuditScheduler, SchedulerStatus: integrity audit schedule control
//   - EventReader: audit trail queries
//   - TaskQueue: background task submission
//
// ## Background Work Interfaces
//
//   - LibraryAuditor: what the integrity scheduler audits (internal/scheduler)
//   - Rescorer, IntegrityAuditRunner, AuditEventCleaner: task handler
//     dependencies (internal/tasks)
//
// # Compile-Time Checks
//
// checks.go asserts that the concrete types wired in internal/entrypoint
// satisfy each of these interfaces.
package interfaces
