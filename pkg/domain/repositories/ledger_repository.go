package repositories

import (
	"context"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// LedgerRepository provides append-only access to the material ledger.
// A store with no ledger yet returns an empty slice, not ErrMissingSource.
type LedgerRepository interface {
	GetLedger(ctx context.Context) ([]entities.LedgerEntry, error)
	AppendEntry(ctx context.Context, entry entities.LedgerEntry) error
}
