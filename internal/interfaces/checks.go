package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookstack/internal/audit"
	"github.com/mrlokans/bookstack/internal/database/books"
	"github.com/mrlokans/bookstack/internal/database/preferences"
	"github.com/mrlokans/bookstack/internal/http"
	"github.com/mrlokans/bookstack/internal/scheduler"
	"github.com/mrlokans/bookstack/internal/services"
	"github.com/mrlokans/bookstack/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookReader = (*books.Repository)(nil)
var _ services.ScoreWriter = (*books.Repository)(nil)
var _ services.PreferencesReader = (*preferences.Repository)(nil)

// =============================================================================
// Library Service
// =============================================================================

var _ http.Library = (*services.LibraryService)(nil)
var _ scheduler.LibraryAuditor = (*services.LibraryService)(nil)
var _ tasks.Rescorer = (*services.LibraryService)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.AuditScheduler = (*scheduler.IntegrityAuditScheduler)(nil)
var _ http.SchedulerStatus = (*scheduler.IntegrityAuditScheduler)(nil)
var _ tasks.IntegrityAuditRunner = (*scheduler.IntegrityAuditScheduler)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ http.EventReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.ReportPruner = (*audit.Archive)(nil)
