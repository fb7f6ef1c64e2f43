package repositories

import (
	"context"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// MaterialRepository provides access to the material requirement table
type MaterialRepository interface {
	GetMaterials(ctx context.Context) ([]entities.MaterialItem, error)
	ReplaceMaterials(ctx context.Context, materials []entities.MaterialItem) error
}
