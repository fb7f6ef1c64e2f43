package memory

import (
	"context"
	"sync"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
)

// MaterialRepository provides in-memory material requirement storage
type MaterialRepository struct {
	mu        sync.RWMutex
	materials []entities.MaterialItem
	loaded    bool
}

// NewMaterialRepository creates an empty repository that reports the
// requirement table as missing until loaded.
func NewMaterialRepository() *MaterialRepository {
	return &MaterialRepository{}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*MaterialRepository)(nil)

// GetMaterials returns a copy of the requirement table
func (r *MaterialRepository) GetMaterials(ctx context.Context) ([]entities.MaterialItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, &entities.MissingSourceError{Source: entities.SourceMaterials, Location: "memory"}
	}
	return append([]entities.MaterialItem(nil), r.materials...), nil
}

// ReplaceMaterials swaps the whole requirement table
func (r *MaterialRepository) ReplaceMaterials(ctx context.Context, materials []entities.MaterialItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.materials = append([]entities.MaterialItem(nil), materials...)
	r.loaded = true
	return nil
}
