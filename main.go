package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/bookstack/internal/cli"
	"github.com/mrlokans/bookstack/internal/config"
	"github.com/mrlokans/bookstack/internal/entrypoint"
	"github.com/mrlokans/bookstack/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type flagParser interface {
	ParseFlags(args []string) error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	cfg := config.NewConfig()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: "console"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "rescore":
		cmd := cli.NewRescoreCommand()
		parseOrExit(cmd, args)
		exitOnError(cmd.Run())

	case "audit":
		cmd := cli.NewAuditCommand()
		parseOrExit(cmd, args)
		exitOnError(cmd.Run(ctx))

	case "seed-demo":
		cmd := cli.NewSeedDemoCommand()
		parseOrExit(cmd, args)
		exitOnError(cmd.Run())

	case "version":
		fmt.Printf("bookstack %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func parseOrExit(cmd flagParser, args []string) {
	err := cmd.ParseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	exitOnError(err)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve       Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  rescore     Recompute book scores with the stored formulas\n")
	fmt.Fprintf(os.Stderr, "  audit       Print the integrity report of a library\n")
	fmt.Fprintf(os.Stderr, "  seed-demo   Replace a library with the sample books\n")
	fmt.Fprintf(os.Stderr, "  version     Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
