package memory

import (
	"context"
	"sync"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
)

// DrawingRepository provides in-memory drawing register storage
type DrawingRepository struct {
	mu       sync.RWMutex
	drawings []entities.Drawing
	loaded   bool
}

// NewDrawingRepository creates an empty repository. Until the first
// ReplaceDrawings it reports the register as missing.
func NewDrawingRepository() *DrawingRepository {
	return &DrawingRepository{}
}

// Verify interface compliance
var _ repositories.DrawingRepository = (*DrawingRepository)(nil)

// GetDrawings returns a copy of the register
func (r *DrawingRepository) GetDrawings(ctx context.Context) ([]entities.Drawing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, &entities.MissingSourceError{Source: entities.SourceDrawings, Location: "memory"}
	}

	out := make([]entities.Drawing, len(r.drawings))
	for i, d := range r.drawings {
		d.Revisions = append([]entities.RevisionSlot(nil), d.Revisions...)
		out[i] = d
	}
	return out, nil
}

// ReplaceDrawings swaps the whole register
func (r *DrawingRepository) ReplaceDrawings(ctx context.Context, drawings []entities.Drawing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drawings = make([]entities.Drawing, len(drawings))
	for i, d := range drawings {
		d.Revisions = append([]entities.RevisionSlot(nil), d.Revisions...)
		r.drawings[i] = d
	}
	r.loaded = true
	return nil
}
