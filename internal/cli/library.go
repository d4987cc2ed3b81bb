package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookstack/internal/audit"
	"github.com/mrlokans/bookstack/internal/database"
	auditRepo "github.com/mrlokans/bookstack/internal/database/audit"
	"github.com/mrlokans/bookstack/internal/logging"
	"github.com/mrlokans/bookstack/internal/services"
)

// session is an opened database with the library service on top.
type session struct {
	db      *database.Database
	events  *audit.Service
	library *services.LibraryService
}

func openSession(dbPath string, workers int) (*session, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database does not exist: %s", dbPath)
	}
	return createSession(dbPath, workers)
}

func createSession(dbPath string, workers int) (*session, error) {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	events := audit.NewService(auditRepo.NewRepository(db.DB))
	library := services.NewLibraryService(db.DB, events, nil, services.LibraryOptions{AuditWorkers: workers})
	return &session{db: db, events: events, library: library}, nil
}

func (s *session) Close() {
	s.events.Wait()
	if err := s.db.Close(); err != nil {
		logging.Error().Err(err).Msg("error closing database")
	}
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
