package repositories

import (
	"context"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// DrawingRepository provides access to the drawing register.
// Implementations return entities.ErrMissingSource when no register exists.
type DrawingRepository interface {
	GetDrawings(ctx context.Context) ([]entities.Drawing, error)
	// ReplaceDrawings swaps the whole register; drawings are never patched.
	ReplaceDrawings(ctx context.Context, drawings []entities.Drawing) error
}
