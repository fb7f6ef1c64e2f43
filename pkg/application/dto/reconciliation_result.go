package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// DrawingRow is a drawing register row with its resolved current revision
type DrawingRow struct {
	DrawingNumber       entities.DrawingNumber  `json:"drawing_no"`
	Category            string                  `json:"category"`
	Area                string                  `json:"area"`
	System              string                  `json:"system"`
	Title               string                  `json:"title"`
	Hold                bool                    `json:"hold"`
	Status              string                  `json:"status"`
	CurrentRevision     string                  `json:"current_revision"`
	CurrentRevisionDate string                  `json:"current_revision_date"`
	Revisions           []entities.RevisionSlot `json:"revisions"`
	Remark              string                  `json:"remark"`
}

// DuplicateGroup lists drawing rows sharing a drawing number
type DuplicateGroup struct {
	DrawingNumber entities.DrawingNumber `json:"drawing_no"`
	Rows          []DrawingRow           `json:"rows"`
}

// DrawingView is the drawing report
type DrawingView struct {
	Unavailable bool             `json:"unavailable"`
	Rows        []DrawingRow     `json:"rows"`
	Duplicates  []DuplicateGroup `json:"duplicates,omitempty"`
}

// MaterialView is the stock and shortage report
type MaterialView struct {
	Unavailable bool                      `json:"unavailable"`
	Rows        []entities.MaterialStatus `json:"rows"`
}

// InstallationView is the revision consistency report with its progress rollup
type InstallationView struct {
	Unavailable          bool                     `json:"unavailable"`
	Rows                 []entities.ReconciledRow `json:"rows"`
	TotalNominalSize     decimal.Decimal          `json:"total_nominal_size"`
	TotalCompletedLength decimal.Decimal          `json:"total_completed_length"`
	TotalProgressPercent decimal.Decimal          `json:"total_progress_percent"`
}

// ReconciliationResult contains the three views built from one snapshot
type ReconciliationResult struct {
	Drawings      DrawingView      `json:"drawings"`
	Materials     MaterialView     `json:"materials"`
	Installations InstallationView `json:"installations"`
}

// Summary holds headline counts for a result
type Summary struct {
	Drawings           int `json:"drawings"`
	DuplicateGroups    int `json:"duplicate_groups"`
	Materials          int `json:"materials"`
	Shortages          int `json:"shortages"`
	Installations      int `json:"installations"`
	RevisionMismatches int `json:"revision_mismatches"`
	UnresolvedDrawings int `json:"unresolved_drawings"`
}

// Summarize counts rows, shortages and mismatches in r.
func (r *ReconciliationResult) Summarize() Summary {
	s := Summary{
		Drawings:        len(r.Drawings.Rows),
		DuplicateGroups: len(r.Drawings.Duplicates),
		Materials:       len(r.Materials.Rows),
		Installations:   len(r.Installations.Rows),
	}
	for _, m := range r.Materials.Rows {
		if m.Shortage > 0 {
			s.Shortages++
		}
	}
	for _, row := range r.Installations.Rows {
		if row.RevisionMismatch {
			s.RevisionMismatches++
		}
		if row.CurrentRevision == entities.UnresolvedRevision {
			s.UnresolvedDrawings++
		}
	}
	return s
}
