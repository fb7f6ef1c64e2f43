package commands

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vsinha/plantrecon/pkg/application/services/importer"
	"github.com/vsinha/plantrecon/pkg/application/services/ledger"
	"github.com/vsinha/plantrecon/pkg/application/services/reconciliation"
	"github.com/vsinha/plantrecon/pkg/application/services/snapshot"
	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
	"github.com/vsinha/plantrecon/pkg/interfaces/web"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand runs the JSON API until ctx is cancelled
type ServeCommand struct {
	env  *Environment
	addr string
}

func NewServeCommand(env *Environment, addr string) *ServeCommand {
	return &ServeCommand{env: env, addr: addr}
}

// Handler returns the API handler over the environment's store.
func (c *ServeCommand) Handler() http.Handler {
	return web.NewHandler(
		snapshot.NewService(c.env.Store),
		reconciliation.NewService(),
		ledger.NewService(c.env.Store, c.env.Events),
		importer.NewService(c.env.Store, c.env.Events),
	)
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	server := &http.Server{
		Addr:              c.addr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info(ctx, "listening", slog.String("addr", c.addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errs.Wrap(err, "serve")
	case <-ctx.Done():
	}

	logging.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errs.Wrap(err, "shutdown")
	}
	return nil
}
