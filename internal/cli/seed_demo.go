package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookstack/internal/config"
	"github.com/mrlokans/bookstack/internal/demo"
)

// SeedDemoCommand replaces a library with the sample books and scores them.
type SeedDemoCommand struct {
	DatabasePath string
	UserID       uint
	Out          io.Writer
}

func NewSeedDemoCommand() *SeedDemoCommand {
	return &SeedDemoCommand{}
}

func (cmd *SeedDemoCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-demo", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file (created if missing)")
	fs.UintVar(&cmd.UserID, "user", 1, "Library owner receiving the sample books")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-demo [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Replace a library with the sample books. Existing books of the user are deleted.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.UserID == 0 {
		fs.Usage()
		return fmt.Errorf("user is required")
	}
	return nil
}

func (cmd *SeedDemoCommand) Run() error {
	s, err := createSession(cmd.DatabasePath, 1)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := demo.Seed(s.db.DB, cmd.UserID)
	if err != nil {
		return err
	}
	res, err := s.library.RecomputeScores(cmd.UserID)
	if err != nil {
		return fmt.Errorf("failed to score demo library: %w", err)
	}

	fmt.Fprintf(output(cmd.Out), "Seeded %d books for user %d (%d scored)\n", n, cmd.UserID, res.Changed)
	return nil
}
