package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/rentroll/api"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the registry over HTTP" }
func (*serveCmd) Usage() string {
	return `rr serve [-addr <host:port>]

  Serves reports, statements and payments as JSON:

    GET  /buildings
    GET  /buildings/{name}/report?end=<date>&window=<months>
    GET  /report?end=<date>&window=<months>
    GET  /residents/{username}/statement?on=<date>
    POST /charges/{id}/payments

  Payments are saved to the database as they are accepted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address (defaults to the configured address)")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	return run(ctx, func(s *session) (bool, error) {
		addr := c.addr
		if addr == "" {
			addr = s.cfg.Server.Addr
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.New(s.reg, s.store, s.cfg.Report.Window, Logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()
		Logger.WithField("addr", addr).Info("serving registry")

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return false, fmt.Errorf("serving: %w", err)
			}
		case <-ctx.Done():
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdown); err != nil {
				return false, fmt.Errorf("shutting down: %w", err)
			}
			Logger.Info("server stopped")
		}
		// payments are saved by the server as they are accepted
		return false, nil
	})
}
