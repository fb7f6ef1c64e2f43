package memory

import (
	"context"
	"sync"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
)

// LedgerRepository provides in-memory append-only ledger storage
type LedgerRepository struct {
	mu      sync.RWMutex
	entries []entities.LedgerEntry
}

// NewLedgerRepository creates an empty ledger
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

// Verify interface compliance
var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// GetLedger returns the entries in append order
func (r *LedgerRepository) GetLedger(ctx context.Context) ([]entities.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]entities.LedgerEntry{}, r.entries...), nil
}

// AppendEntry adds entry at the end of the ledger
func (r *LedgerRepository) AppendEntry(ctx context.Context, entry entities.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}
