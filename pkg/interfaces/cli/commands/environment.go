package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vsinha/plantrecon/pkg/domain/repositories"
	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/config"
	"github.com/vsinha/plantrecon/pkg/infrastructure/events"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/sqlite"
)

// Environment is the wiring shared by every command: the configured store,
// the event store with its logging subscriber, and where to print.
type Environment struct {
	Config config.Config
	Store  repositories.Store
	Events *events.InMemoryEventStore
	Out    io.Writer

	closeFn func() error
}

// OpenEnvironment opens the store named by cfg.Store.
func OpenEnvironment(ctx context.Context, cfg config.Config) (*Environment, error) {
	env := &Environment{
		Config:  cfg,
		Events:  events.NewInMemoryEventStore(),
		Out:     os.Stdout,
		closeFn: func() error { return nil },
	}
	if err := env.Events.Subscribe(events.AllEventTypes, events.LogHandler{}); err != nil {
		return nil, errs.Wrap(err, "subscribe event log")
	}

	switch cfg.Store.Driver {
	case config.DriverFiles:
		env.Store = csv.NewStore(cfg.Store.Dir)
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errs.Wrap(err, "get sql db")
		}
		env.Store = sqlite.NewStore(db)
		env.closeFn = sqlDB.Close
	default:
		return nil, fmt.Errorf("invalid store.driver: %s", cfg.Store.Driver)
	}

	logging.Debug(ctx, "store opened", slog.String("driver", cfg.Store.Driver))
	return env, nil
}

func (e *Environment) Close() error {
	return e.closeFn()
}
