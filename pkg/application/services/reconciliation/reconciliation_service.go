package reconciliation

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/plantrecon/pkg/application/dto"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/services"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

// Options control how Reconcile shapes its views
type Options struct {
	// Category filters drawing and installation rows; empty or "all" keeps everything.
	Category string
	// Dedupe drops later drawing rows that repeat a drawing number.
	Dedupe bool
}

// Service composes the domain rules into the three reconciliation views.
// It holds no state; every call works on the slices it is given.
type Service struct{}

// NewService creates a new reconciliation service
func NewService() *Service {
	return &Service{}
}

func drawingRowKey(row dto.DrawingRow) string { return string(row.DrawingNumber) }

// BuildDrawingView resolves the current revision of every drawing and keeps
// the register attributes alongside.
func (s *Service) BuildDrawingView(drawings []entities.Drawing) []dto.DrawingRow {
	rows := make([]dto.DrawingRow, 0, len(drawings))
	for _, d := range drawings {
		current := services.ResolveCurrentRevision(d.Revisions)
		rows = append(rows, dto.DrawingRow{
			DrawingNumber:       d.Number,
			Category:            d.Category,
			Area:                d.Area,
			System:              d.System,
			Title:               d.Title,
			Hold:                d.Hold,
			Status:              d.Status,
			CurrentRevision:     current.Label,
			CurrentRevisionDate: current.Date,
			Revisions:           d.Revisions,
			Remark:              d.Remark,
		})
	}
	return rows
}

// DuplicateGroups reports drawing numbers carried by more than one row.
func (s *Service) DuplicateGroups(rows []dto.DrawingRow) []dto.DuplicateGroup {
	groups := services.DuplicateGroups(rows, drawingRowKey)
	out := make([]dto.DuplicateGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.DuplicateGroup{DrawingNumber: entities.DrawingNumber(g.Key), Rows: g.Rows})
	}
	return out
}

// Dedupe keeps the first row of every drawing number.
func (s *Service) Dedupe(rows []dto.DrawingRow) []dto.DrawingRow {
	return services.Dedupe(rows, drawingRowKey)
}

// BuildMaterialView derives received, issued, stock and shortage per ident
// code. Rows follow the requirement table; codes found only in the ledger
// are appended in code order with a zero requirement.
func (s *Service) BuildMaterialView(materials []entities.MaterialItem, ledger []entities.LedgerEntry) []entities.MaterialStatus {
	totals := services.AggregateLedger(ledger)

	rows := make([]entities.MaterialStatus, 0, len(materials))
	known := make(map[entities.IdentCode]struct{}, len(materials))
	for _, m := range materials {
		known[m.IdentCode] = struct{}{}
		rows = append(rows, materialStatus(m, totals[m.IdentCode]))
	}

	var orphans []entities.IdentCode
	for code := range totals {
		if _, ok := known[code]; !ok {
			orphans = append(orphans, code)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })
	for _, code := range orphans {
		rows = append(rows, materialStatus(entities.MaterialItem{IdentCode: code}, totals[code]))
	}

	return rows
}

func materialStatus(m entities.MaterialItem, t services.LedgerTotals) entities.MaterialStatus {
	return entities.MaterialStatus{
		IdentCode:   m.IdentCode,
		Description: m.Description,
		Size:        m.Size,
		RequiredQty: m.RequiredQty,
		Received:    t.Received,
		Issued:      t.Issued,
		Stock:       t.Stock(),
		Shortage:    services.Shortage(m.RequiredQty, t.Received),
	}
}

// BuildInstallationView left-joins installations to drawings on drawing
// number and flags revision mismatches. Rows without a drawing keep
// UnresolvedRevision. When the register repeats a drawing number the first
// row is used.
func (s *Service) BuildInstallationView(installations []entities.InstallationRecord, drawings []entities.Drawing) dto.InstallationView {
	byNumber := make(map[entities.DrawingNumber]entities.Drawing, len(drawings))
	for _, d := range drawings {
		if _, dup := byNumber[d.Number]; !dup {
			byNumber[d.Number] = d
		}
	}

	view := dto.InstallationView{
		Rows:                 make([]entities.ReconciledRow, 0, len(installations)),
		TotalNominalSize:     decimal.Zero,
		TotalCompletedLength: decimal.Zero,
	}

	for _, rec := range installations {
		row := entities.ReconciledRow{
			DrawingNumber:       rec.DrawingNumber,
			JointID:             rec.JointID,
			NominalSize:         rec.NominalSize,
			CompletedLength:     rec.CompletedLength,
			FieldRevision:       rec.FieldRevision,
			CurrentRevision:     entities.UnresolvedRevision,
			CurrentRevisionDate: entities.NoRevision,
		}
		if d, ok := byNumber[rec.DrawingNumber]; ok {
			current := services.ResolveCurrentRevision(d.Revisions)
			row.Category = d.Category
			row.CurrentRevision = current.Label
			row.CurrentRevisionDate = current.Date
		}
		row.RevisionMismatch = services.RevisionMismatch(row.FieldRevision, row.CurrentRevision)

		view.Rows = append(view.Rows, row)
		view.TotalNominalSize = view.TotalNominalSize.Add(rec.NominalSize)
		view.TotalCompletedLength = view.TotalCompletedLength.Add(rec.CompletedLength)
	}

	view.TotalProgressPercent = services.ProgressPercent(view.TotalCompletedLength, view.TotalNominalSize)
	return view
}

// FilterDrawings keeps rows whose category matches filter.
func (s *Service) FilterDrawings(rows []dto.DrawingRow, filter string) []dto.DrawingRow {
	out := make([]dto.DrawingRow, 0, len(rows))
	for _, row := range rows {
		if services.MatchesCategory(row.Category, filter) {
			out = append(out, row)
		}
	}
	return out
}

// FilterInstallations narrows an installation view to rows whose drawing
// category matches filter and recomputes the progress rollup over them.
func (s *Service) FilterInstallations(view dto.InstallationView, filter string) dto.InstallationView {
	out := dto.InstallationView{
		Unavailable:          view.Unavailable,
		Rows:                 make([]entities.ReconciledRow, 0, len(view.Rows)),
		TotalNominalSize:     decimal.Zero,
		TotalCompletedLength: decimal.Zero,
	}
	for _, row := range view.Rows {
		if !services.MatchesCategory(row.Category, filter) {
			continue
		}
		out.Rows = append(out.Rows, row)
		out.TotalNominalSize = out.TotalNominalSize.Add(row.NominalSize)
		out.TotalCompletedLength = out.TotalCompletedLength.Add(row.CompletedLength)
	}
	out.TotalProgressPercent = services.ProgressPercent(out.TotalCompletedLength, out.TotalNominalSize)
	return out
}

// Reconcile builds all three views from snapshot. The views do not depend
// on each other and are built concurrently. A view whose source is missing
// is returned empty and marked unavailable.
func (s *Service) Reconcile(ctx context.Context, snapshot *dto.Snapshot, opts Options) (*dto.ReconciliationResult, error) {
	result := &dto.ReconciliationResult{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := snapshot.Require(entities.SourceDrawings); err != nil {
			logging.Warn(gctx, "drawing view unavailable", slog.String("reason", err.Error()))
			result.Drawings = dto.DrawingView{Unavailable: true}
			return nil
		}
		rows := s.BuildDrawingView(snapshot.Drawings)
		duplicates := s.DuplicateGroups(rows)
		if len(duplicates) > 0 {
			logging.Warn(gctx, "duplicate drawing numbers", slog.Int("groups", len(duplicates)))
		}
		if opts.Dedupe {
			rows = s.Dedupe(rows)
		}
		result.Drawings = dto.DrawingView{
			Rows:       s.FilterDrawings(rows, opts.Category),
			Duplicates: duplicates,
		}
		return gctx.Err()
	})

	g.Go(func() error {
		if err := snapshot.Require(entities.SourceMaterials); err != nil {
			logging.Warn(gctx, "material view unavailable", slog.String("reason", err.Error()))
			result.Materials = dto.MaterialView{Unavailable: true}
			return nil
		}
		result.Materials = dto.MaterialView{Rows: s.BuildMaterialView(snapshot.Materials, snapshot.Ledger)}
		return gctx.Err()
	})

	g.Go(func() error {
		if err := snapshot.Require(entities.SourceInstallations, entities.SourceDrawings); err != nil {
			logging.Warn(gctx, "installation view unavailable", slog.String("reason", err.Error()))
			result.Installations = dto.InstallationView{Unavailable: true}
			return nil
		}
		view := s.BuildInstallationView(snapshot.Installations, snapshot.Drawings)
		result.Installations = s.FilterInstallations(view, opts.Category)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := result.Summarize()
	logging.Debug(ctx, "reconciliation complete",
		slog.Int("drawings", summary.Drawings),
		slog.Int("materials", summary.Materials),
		slog.Int("installations", summary.Installations),
		slog.Int("mismatches", summary.RevisionMismatches),
	)
	return result, nil
}
