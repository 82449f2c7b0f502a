// Package cmd implements the rr CLI application to manage a rental registry.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/config"
	"github.com/etnz/rentroll/date"
	"github.com/etnz/rentroll/store"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Commands lists the subcommands by group, in help order.
var Commands = []struct {
	Group   string
	Command subcommands.Command
}{
	{"registry", &addBuildingCmd{}},
	{"registry", &addUnitCmd{}},
	{"registry", &addResidentCmd{}},
	{"registry", &addAdminCmd{}},
	{"leases", &signCmd{}},
	{"leases", &moveOutCmd{}},
	{"leases", &leaseCmd{}},
	{"leases", &payCmd{}},
	{"leases", &statementCmd{}},
	{"units", &complainCmd{}},
	{"units", &resolveCmd{}},
	{"reports", &reportCmd{}},
	{"reports", &exportCmd{}},
	{"reports", &queryCmd{}},
	{"server", &serveCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// IsCommand reports whether 'name' is a registered subcommand.
func IsCommand(name string) bool {
	for _, cmd := range Commands {
		if cmd.Command.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configPath = flag.String("config", config.Path(), "Path to the TOML configuration file")
	dbSource   = flag.String("db", "", "Database source, overrides the configured dsn")
	Verbose    = flag.Bool("v", false, "Enable debug logging")
)

// Logger is the application logger.
var Logger = logrus.New()

// initLogger configures Logger from the configured level.
func initLogger(level string) {
	Logger.SetOutput(os.Stderr)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		Logger.Warnf("Invalid log level %q, defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	if *Verbose {
		lvl = logrus.DebugLevel
	}
	Logger.SetLevel(lvl)
}

// session is an open registry and the store it was loaded from.
type session struct {
	cfg   config.Config
	store *store.Store
	reg   *rentroll.Registry
}

// openSession loads the configuration and the registry.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *dbSource != "" {
		cfg.Database.DSN = *dbSource
	}
	initLogger(cfg.Log.Level)

	terms, err := cfg.Ledger.Terms()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN, Logger)
	if err != nil {
		return nil, err
	}
	reg, err := st.Load(ctx, terms)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	return &session{cfg: cfg, store: st, reg: reg}, nil
}

// save persists the registry.
func (s *session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.reg)
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		Logger.WithError(err).Warn("closing database")
	}
}

// run opens a session, calls f, and saves the registry if f changed it.
func run(ctx context.Context, f func(s *session) (changed bool, err error)) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	changed, err := f(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if changed {
		if err := s.save(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving registry: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// parseDay parses a date flag; the empty string is today.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
