package importer

import (
	"context"
	"log/slog"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
	"github.com/vsinha/plantrecon/pkg/domain/services"
	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/events"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

// Result reports what an import wrote
type Result struct {
	Source  entities.Source `json:"source"`
	Rows    int             `json:"rows"`
	Dropped int             `json:"dropped"`
}

// Service replaces master tables wholesale. Masters are never patched.
type Service struct {
	store     repositories.Store
	publisher events.Publisher
}

// NewService creates an importer. A nil publisher discards events.
func NewService(store repositories.Store, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{store: store, publisher: publisher}
}

func drawingKey(d entities.Drawing) string { return string(d.Number) }

// CheckDrawings returns a DuplicateKeyError when drawing numbers repeat.
func CheckDrawings(drawings []entities.Drawing) error {
	groups := services.DuplicateGroups(drawings, drawingKey)
	if len(groups) == 0 {
		return nil
	}
	dupErr := &entities.DuplicateKeyError{}
	for _, g := range groups {
		dupErr.Keys = append(dupErr.Keys, entities.DrawingNumber(g.Key))
		dupErr.Dropped += len(g.Rows) - 1
	}
	return dupErr
}

// ImportDrawings replaces the drawing register. Duplicate drawing numbers
// abort the import with a DuplicateKeyError unless confirmDedupe is set, in
// which case the first row of each number is kept.
func (s *Service) ImportDrawings(ctx context.Context, drawings []entities.Drawing, confirmDedupe bool) (*Result, error) {
	result := &Result{Source: entities.SourceDrawings}

	if err := CheckDrawings(drawings); err != nil {
		if !confirmDedupe {
			logging.Warn(ctx, "drawing import blocked by duplicates", slog.String("reason", err.Error()))
			return nil, err
		}
		deduped := services.Dedupe(drawings, drawingKey)
		result.Dropped = len(drawings) - len(deduped)
		drawings = deduped
	}

	if err := s.store.ReplaceDrawings(ctx, drawings); err != nil {
		return nil, errs.Wrap(err, "replace drawings")
	}
	result.Rows = len(drawings)
	s.publish(ctx, result)
	return result, nil
}

// ImportMaterials replaces the material requirement table.
func (s *Service) ImportMaterials(ctx context.Context, materials []entities.MaterialItem) (*Result, error) {
	if err := s.store.ReplaceMaterials(ctx, materials); err != nil {
		return nil, errs.Wrap(err, "replace materials")
	}
	result := &Result{Source: entities.SourceMaterials, Rows: len(materials)}
	s.publish(ctx, result)
	return result, nil
}

// ImportInstallations replaces the field-installation register.
func (s *Service) ImportInstallations(ctx context.Context, records []entities.InstallationRecord) (*Result, error) {
	if err := s.store.ReplaceInstallations(ctx, records); err != nil {
		return nil, errs.Wrap(err, "replace installations")
	}
	result := &Result{Source: entities.SourceInstallations, Rows: len(records)}
	s.publish(ctx, result)
	return result, nil
}

func (s *Service) publish(ctx context.Context, result *Result) {
	event := events.NewEvent(events.ImportedEventType(result.Source), events.MasterStream, events.MastersImported{
		Source:  result.Source,
		Rows:    result.Rows,
		Dropped: result.Dropped,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		logging.Warn(ctx, "import event not published", slog.Any("err", errs.Loggable(err)))
	}
}
