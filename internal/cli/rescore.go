package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookstack/internal/config"
)

// RescoreCommand recomputes the priority scores of one or every library.
type RescoreCommand struct {
	DatabasePath string
	UserID       uint
	Out          io.Writer
}

func NewRescoreCommand() *RescoreCommand {
	return &RescoreCommand{}
}

func (cmd *RescoreCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("rescore", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.UintVar(&cmd.UserID, "user", 0, "Library owner to rescore (0 rescores every library)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s rescore [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Recompute book scores with each owner's stored formula.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s rescore -db ./bookstack.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s rescore -user 1\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *RescoreCommand) Run() error {
	s, err := openSession(cmd.DatabasePath, 1)
	if err != nil {
		return err
	}
	defer s.Close()

	users := []uint{cmd.UserID}
	if cmd.UserID == 0 {
		users, err = s.library.UserIDs()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
	}

	out := output(cmd.Out)
	var changed, total int
	for _, uid := range users {
		res, err := s.library.RecomputeScores(uid)
		if err != nil {
			return fmt.Errorf("failed to rescore user %d: %w", uid, err)
		}
		fmt.Fprintf(out, "User %d: %d of %d scores changed\n", uid, res.Changed, res.Total)
		changed += res.Changed
		total += res.Total
	}
	fmt.Fprintf(out, "Rescored %d libraries: %d of %d scores changed\n", len(users), changed, total)
	return nil
}
