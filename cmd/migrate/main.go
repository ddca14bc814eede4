// Command migrate applies or rolls back the embedded database schema.
//
//	migrate up
//	migrate down -steps 1
package main

import (
	"flag"
	"fmt"
	"os"

	"storefront/config"
	"storefront/internal/errors"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/migrations"

	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	upCmd := flag.NewFlagSet("up", flag.ExitOnError)
	downCmd := flag.NewFlagSet("down", flag.ExitOnError)
	downSteps := downCmd.Int("steps", 1, "Number of migrations to roll back")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], upCmd, downCmd, downSteps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(subcommand string, args []string, upCmd, downCmd *flag.FlagSet, downSteps *int) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	switch subcommand {
	case "up":
		if err := upCmd.Parse(args); err != nil {
			return errors.WithStack(err)
		}

		return migrations.Up(sqlDB, logger)
	case "down":
		if err := downCmd.Parse(args); err != nil {
			return errors.WithStack(err)
		}

		return migrations.Down(sqlDB, *downSteps, logger)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate <up|down> [flags]")
	fmt.Fprintln(os.Stderr, "  up                 apply all pending migrations")
	fmt.Fprintln(os.Stderr, "  down -steps N      roll back N migrations (default 1)")
}
