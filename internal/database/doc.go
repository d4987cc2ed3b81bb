// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── books/           # Book snapshots and bulk score updates
//	├── preferences/     # Per-user formula, taxonomy and goal documents
//	├── settings/        # Global key/value settings
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./bookstack.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	prefsRepo := preferences.NewRepository(db.DB)
//
//	snapshot, err := booksRepo.ListForUser(userID)
//	prefs, err := prefsRepo.Load(userID)
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to Migrate
//  5. Add compile-time interface checks in internal/interfaces
package database
