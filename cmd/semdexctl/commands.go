package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"semdex-backend/internal/application/seed"
	"semdex-backend/internal/config"
	"semdex-backend/internal/domain"
	"semdex-backend/internal/infrastructure/database"

	"github.com/google/subcommands"
	"gorm.io/gorm"
)

// storeFlags is the -db flag shared by every command. Empty means DATABASE_URL from config.
type storeFlags struct {
	dsn string
	out io.Writer
}

func (s *storeFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.dsn, "db", "", "database DSN (postgres URL or sqlite:<path>); defaults to DATABASE_URL")
}

func (s *storeFlags) stdout() io.Writer {
	if s.out == nil {
		return os.Stdout
	}
	return s.out
}

func (s *storeFlags) open() (*gorm.DB, error) {
	dsn := s.dsn
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		dsn = cfg.DatabaseURL
	}
	if dsn == "" {
		return nil, errors.New("no database: pass -db or set DATABASE_URL")
	}
	return database.Open(dsn)
}

// --- migrateCmd ---

type migrateCmd struct {
	storeFlags
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create or update the portal tables" }
func (*migrateCmd) Usage() string {
	return `semdexctl migrate [-db <dsn>]

Creates the ten portal tables, adding missing columns and indexes to existing ones.
`
}
func (c *migrateCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := c.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := database.AutoMigrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error migrating: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.stdout(), "schema up to date")
	return subcommands.ExitSuccess
}

// --- seedCmd ---

type seedCmd struct {
	storeFlags
	ifEmpty bool
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "insert the fixed reference dataset" }
func (*seedCmd) Usage() string {
	return `semdexctl seed [-db <dsn>] [-if-empty]

Inserts users, holding, sale, allocations, dividends, brokers and settings in one
transaction. Fails when any reference table already has rows, unless -if-empty is set.
`
}
func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.BoolVar(&c.ifEmpty, "if-empty", false, "succeed without changes when the store is already seeded")
}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := c.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	err = (&seed.Seeder{DB: db}).Run(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(c.stdout(), "reference data seeded")
	case errors.Is(err, domain.ErrAlreadySeeded) && c.ifEmpty:
		fmt.Fprintln(c.stdout(), "already seeded, nothing to do")
	default:
		fmt.Fprintf(os.Stderr, "Error seeding: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- verifyCmd ---

type verifyCmd struct {
	storeFlags
}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "check stored reference data against its invariants" }
func (*verifyCmd) Usage() string {
	return `semdexctl verify [-db <dsn>]

Reports every broken share, sale, allocation and dividend invariant. Exits non-zero when any is found.
`
}
func (c *verifyCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *verifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := c.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	problems, err := seed.Verify(ctx, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference data: %v\n", err)
		return subcommands.ExitFailure
	}
	out := c.stdout()
	for _, p := range problems {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	if len(problems) > 0 {
		fmt.Fprintf(out, "%d invariant(s) broken\n", len(problems))
		return subcommands.ExitFailure
	}
	fmt.Fprintln(out, "reference data consistent")
	return subcommands.ExitSuccess
}
