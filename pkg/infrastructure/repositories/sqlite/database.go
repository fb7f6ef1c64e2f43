package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

// Open opens the SQLite database at dsn, creating its directory, and
// migrates the schema.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	logCtx := logging.WithAttrs(ctx, slog.String("component", "store.sqlite"))

	if err := ensureDirectory(dsn); err != nil {
		return nil, errs.Wrap(err, "ensure sqlite directory")
	}

	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errs.Wrap(err, "open sqlite db")
	}
	if err := db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return nil, errs.Wrap(err, "migrate sqlite schema")
	}

	logging.Info(logCtx, "database opened", slog.String("driver", "sqlite"), slog.String("dsn", dsn))
	return db, nil
}

func ensureDirectory(dsn string) error {
	candidate := strings.TrimSpace(dsn)
	if candidate == "" || candidate == ":memory:" {
		return nil
	}
	if strings.HasPrefix(strings.ToLower(candidate), "file:") {
		candidate = candidate[len("file:"):]
	}
	if idx := strings.Index(candidate, "?"); idx >= 0 {
		candidate = candidate[:idx]
	}
	if candidate == "" || candidate == ":memory:" {
		return nil
	}

	dir := filepath.Dir(candidate)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrapf(err, "create sqlite directory %q", dir)
	}
	return nil
}
