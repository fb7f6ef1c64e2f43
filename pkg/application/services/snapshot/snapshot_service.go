package snapshot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vsinha/plantrecon/pkg/application/dto"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

// Service reads the four tables of a store into one snapshot
type Service struct {
	store repositories.Store
}

func NewService(store repositories.Store) *Service {
	return &Service{store: store}
}

// Load reads every table. A table the store reports as missing is recorded
// in Snapshot.Missing; any other error aborts the load.
func (s *Service) Load(ctx context.Context) (*dto.Snapshot, error) {
	snap := &dto.Snapshot{}

	drawings, err := s.store.GetDrawings(ctx)
	if err := s.note(ctx, snap, entities.SourceDrawings, err); err != nil {
		return nil, err
	}
	snap.Drawings = drawings

	materials, err := s.store.GetMaterials(ctx)
	if err := s.note(ctx, snap, entities.SourceMaterials, err); err != nil {
		return nil, err
	}
	snap.Materials = materials

	ledger, err := s.store.GetLedger(ctx)
	if err := s.note(ctx, snap, entities.SourceLedger, err); err != nil {
		return nil, err
	}
	snap.Ledger = ledger

	installations, err := s.store.GetInstallations(ctx)
	if err := s.note(ctx, snap, entities.SourceInstallations, err); err != nil {
		return nil, err
	}
	snap.Installations = installations

	logging.Debug(ctx, "snapshot loaded",
		slog.Int("drawings", len(snap.Drawings)),
		slog.Int("materials", len(snap.Materials)),
		slog.Int("ledger", len(snap.Ledger)),
		slog.Int("installations", len(snap.Installations)),
		slog.Int("missing", len(snap.Missing)),
	)
	return snap, nil
}

func (s *Service) note(ctx context.Context, snap *dto.Snapshot, source entities.Source, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, entities.ErrMissingSource) {
		logging.Warn(ctx, "source missing", slog.String("source", string(source)), slog.String("reason", err.Error()))
		snap.Missing = append(snap.Missing, source)
		return nil
	}
	return errs.Wrapf(err, "load %s", source)
}
