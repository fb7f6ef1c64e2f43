package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
	"github.com/vsinha/plantrecon/pkg/errs"
)

const batchSize = 200

// Store keeps the four tables in SQLite. A master table counts as present
// once it has been replaced at least once, even if with zero rows.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

var _ repositories.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return s.db.WithContext(ctx), nil
}

// present fails with a MissingSourceError until source has been imported.
func present(db *gorm.DB, source entities.Source) error {
	var count int64
	if err := db.Model(&sourceRow{}).Where("source = ?", string(source)).Count(&count).Error; err != nil {
		return errs.Wrapf(err, "query %s marker", source)
	}
	if count == 0 {
		return &entities.MissingSourceError{Source: source, Location: "sqlite"}
	}
	return nil
}

// replace runs fill inside a transaction that first empties tables and
// finally records source as imported.
func (s *Store) replace(ctx context.Context, source entities.Source, rows int, fill func(tx *gorm.DB) error, tables ...any) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return errs.Wrapf(err, "clear %s", source)
			}
		}
		if err := fill(tx); err != nil {
			return err
		}
		marker := sourceRow{Source: string(source), Rows: rows, ImportedAt: s.now().UTC().Format(time.RFC3339)}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&marker).Error; err != nil {
			return errs.Wrapf(err, "mark %s imported", source)
		}
		return nil
	})
}

func (s *Store) GetDrawings(ctx context.Context) ([]entities.Drawing, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := present(db, entities.SourceDrawings); err != nil {
		return nil, err
	}

	var rows []drawingRow
	if err := db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query drawings")
	}
	var revs []revisionRow
	if err := db.Order("drawing_id asc, position asc").Find(&revs).Error; err != nil {
		return nil, errs.Wrap(err, "query drawing revisions")
	}

	slots := make(map[uint64][]entities.RevisionSlot, len(rows))
	for _, r := range revs {
		slots[r.DrawingID] = append(slots[r.DrawingID], entities.RevisionSlot{Label: r.Label, Date: r.Date})
	}

	drawings := make([]entities.Drawing, 0, len(rows))
	for _, r := range rows {
		drawings = append(drawings, entities.Drawing{
			Number:    entities.DrawingNumber(r.Number),
			Category:  r.Category,
			Area:      r.Area,
			System:    r.System,
			Title:     r.Title,
			Hold:      r.Hold,
			Status:    r.Status,
			Revisions: slots[r.ID],
			Remark:    r.Remark,
		})
	}
	return drawings, nil
}

func (s *Store) ReplaceDrawings(ctx context.Context, drawings []entities.Drawing) error {
	fill := func(tx *gorm.DB) error {
		if len(drawings) == 0 {
			return nil
		}
		rows := make([]drawingRow, len(drawings))
		for i, d := range drawings {
			rows[i] = drawingRow{
				Position: i,
				Number:   string(d.Number),
				Category: d.Category,
				Area:     d.Area,
				System:   d.System,
				Title:    d.Title,
				Hold:     d.Hold,
				Status:   d.Status,
				Remark:   d.Remark,
			}
		}
		if err := tx.CreateInBatches(&rows, batchSize).Error; err != nil {
			return errs.Wrap(err, "insert drawings")
		}

		var revs []revisionRow
		for i, d := range drawings {
			for k, slot := range d.Revisions {
				revs = append(revs, revisionRow{DrawingID: rows[i].ID, Position: k, Label: slot.Label, Date: slot.Date})
			}
		}
		if len(revs) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&revs, batchSize).Error; err != nil {
			return errs.Wrap(err, "insert drawing revisions")
		}
		return nil
	}
	return s.replace(ctx, entities.SourceDrawings, len(drawings), fill, &revisionRow{}, &drawingRow{})
}

func (s *Store) GetMaterials(ctx context.Context) ([]entities.MaterialItem, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := present(db, entities.SourceMaterials); err != nil {
		return nil, err
	}

	var rows []materialRow
	if err := db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query materials")
	}
	items := make([]entities.MaterialItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, entities.MaterialItem{
			IdentCode:     entities.IdentCode(r.IdentCode),
			Description:   r.Description,
			Size:          r.Size,
			UnitOfMeasure: r.Unit,
			RequiredQty:   entities.Quantity(r.RequiredQty),
		})
	}
	return items, nil
}

func (s *Store) ReplaceMaterials(ctx context.Context, materials []entities.MaterialItem) error {
	fill := func(tx *gorm.DB) error {
		if len(materials) == 0 {
			return nil
		}
		rows := make([]materialRow, len(materials))
		for i, m := range materials {
			rows[i] = materialRow{
				Position:    i,
				IdentCode:   string(m.IdentCode),
				Description: m.Description,
				Size:        m.Size,
				Unit:        m.UnitOfMeasure,
				RequiredQty: int64(m.RequiredQty),
			}
		}
		return errs.Wrap(tx.CreateInBatches(&rows, batchSize).Error, "insert materials")
	}
	return s.replace(ctx, entities.SourceMaterials, len(materials), fill, &materialRow{})
}

func (s *Store) GetInstallations(ctx context.Context) ([]entities.InstallationRecord, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := present(db, entities.SourceInstallations); err != nil {
		return nil, err
	}

	var rows []installationRow
	if err := db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query installations")
	}
	out := make([]entities.InstallationRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.InstallationRecord{
			DrawingNumber:   entities.DrawingNumber(r.DrawingNumber),
			JointID:         r.JointID,
			NominalSize:     r.NominalSize,
			CompletedLength: r.CompletedLength,
			FieldRevision:   r.FieldRevision,
		})
	}
	return out, nil
}

func (s *Store) ReplaceInstallations(ctx context.Context, records []entities.InstallationRecord) error {
	fill := func(tx *gorm.DB) error {
		if len(records) == 0 {
			return nil
		}
		rows := make([]installationRow, len(records))
		for i, r := range records {
			rows[i] = installationRow{
				Position:        i,
				DrawingNumber:   string(r.DrawingNumber),
				JointID:         r.JointID,
				NominalSize:     r.NominalSize,
				CompletedLength: r.CompletedLength,
				FieldRevision:   r.FieldRevision,
			}
		}
		return errs.Wrap(tx.CreateInBatches(&rows, batchSize).Error, "insert installations")
	}
	return s.replace(ctx, entities.SourceInstallations, len(records), fill, &installationRow{})
}

// GetLedger returns entries in insertion order. An empty table is an empty
// ledger.
func (s *Store) GetLedger(ctx context.Context) ([]entities.LedgerEntry, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []ledgerRow
	if err := db.Order("seq asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query ledger")
	}
	entries := make([]entities.LedgerEntry, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse(entities.LedgerDateLayout, r.Date)
		if err != nil {
			return nil, errs.Wrapf(err, "ledger seq %d", r.Seq)
		}
		txType, err := entities.ParseTransactionType(r.Type)
		if err != nil {
			return nil, errs.Wrapf(err, "ledger seq %d", r.Seq)
		}
		entries = append(entries, entities.LedgerEntry{
			ID:            r.EntryID,
			Date:          date,
			Type:          txType,
			IdentCode:     entities.IdentCode(r.IdentCode),
			Quantity:      entities.Quantity(r.Quantity),
			DrawingNumber: entities.DrawingNumber(r.DrawingNumber),
			Remark:        r.Remark,
		})
	}
	return entries, nil
}

func (s *Store) AppendEntry(ctx context.Context, entry entities.LedgerEntry) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	row := ledgerRow{
		EntryID:       entry.ID,
		Date:          entry.Date.Format(entities.LedgerDateLayout),
		Type:          entry.Type.String(),
		IdentCode:     string(entry.IdentCode),
		Quantity:      int64(entry.Quantity),
		DrawingNumber: string(entry.DrawingNumber),
		Remark:        entry.Remark,
	}
	return errs.Wrap(db.Create(&row).Error, "insert ledger entry")
}
