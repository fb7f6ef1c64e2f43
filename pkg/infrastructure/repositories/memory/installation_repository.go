package memory

import (
	"context"
	"sync"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
)

// InstallationRepository provides in-memory field-installation storage
type InstallationRepository struct {
	mu      sync.RWMutex
	records []entities.InstallationRecord
	loaded  bool
}

// NewInstallationRepository creates an empty repository that reports the
// register as missing until loaded.
func NewInstallationRepository() *InstallationRepository {
	return &InstallationRepository{}
}

// Verify interface compliance
var _ repositories.InstallationRepository = (*InstallationRepository)(nil)

// GetInstallations returns a copy of the register
func (r *InstallationRepository) GetInstallations(ctx context.Context) ([]entities.InstallationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, &entities.MissingSourceError{Source: entities.SourceInstallations, Location: "memory"}
	}
	return append([]entities.InstallationRecord(nil), r.records...), nil
}

// ReplaceInstallations swaps the whole register
func (r *InstallationRepository) ReplaceInstallations(ctx context.Context, records []entities.InstallationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append([]entities.InstallationRecord(nil), records...)
	r.loaded = true
	return nil
}

// Store combines the in-memory repositories into one backing store
type Store struct {
	*DrawingRepository
	*MaterialRepository
	*LedgerRepository
	*InstallationRepository
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		DrawingRepository:      NewDrawingRepository(),
		MaterialRepository:     NewMaterialRepository(),
		LedgerRepository:       NewLedgerRepository(),
		InstallationRepository: NewInstallationRepository(),
	}
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)
