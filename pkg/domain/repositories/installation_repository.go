package repositories

import (
	"context"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// InstallationRepository provides access to the field-installation register
type InstallationRepository interface {
	GetInstallations(ctx context.Context) ([]entities.InstallationRecord, error)
	ReplaceInstallations(ctx context.Context, records []entities.InstallationRecord) error
}

// Store bundles the four repositories of one backing store.
type Store interface {
	DrawingRepository
	MaterialRepository
	LedgerRepository
	InstallationRepository
}
