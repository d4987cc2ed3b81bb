// Command generate_demo creates a demo database holding the sample library.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db] [-user 1]
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookstack/internal/database"
	"github.com/mrlokans/bookstack/internal/demo"
	"github.com/mrlokans/bookstack/internal/logging"
	"github.com/mrlokans/bookstack/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	userID := flag.Uint("user", 1, "owner of the sample library")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})
	logging.Info().Str("path", *dbPath).Msg("generating demo database")

	// Start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		logging.Fatal().Err(err).Msg("failed to remove existing demo database")
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		logging.Fatal().Err(err).Msg("failed to create demo directory")
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create database")
	}
	defer db.Close()

	n, err := demo.Seed(db.DB, *userID)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed demo library")
	}

	library := services.NewLibraryService(db.DB, nil, nil, services.LibraryOptions{})
	res, err := library.RecomputeScores(*userID)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to score demo library")
	}

	logging.Info().Int("books", n).Int("scored", res.Changed).Msg("demo database generated")
}
