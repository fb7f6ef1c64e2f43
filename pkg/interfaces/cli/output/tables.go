package output

import (
	"strconv"

	"github.com/vsinha/plantrecon/pkg/application/dto"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/xlsx"
)

// Sheet names, also used as csv file stems
const (
	DrawingsSheet      = "Drawings"
	DuplicatesSheet    = "Duplicates"
	MaterialsSheet     = "Materials"
	InstallationsSheet = "Installations"
	SummarySheet       = "Summary"
)

var (
	drawingColumns      = []string{"drawing_no", "category", "area", "system", "title", "hold", "status", "current_revision", "current_revision_date", "remark"}
	duplicateColumns    = []string{"drawing_no", "rows", "current_revisions"}
	materialColumns     = []string{"ident_code", "description", "size", "required_qty", "received", "issued", "stock", "shortage"}
	installationColumns = []string{"drawing_no", "joint_id", "category", "nominal_size", "completed_length", "field_revision", "current_revision", "current_revision_date", "revision_mismatch"}
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// DrawingRows renders the drawing view with a header row.
func DrawingRows(view dto.DrawingView) [][]string {
	rows := [][]string{drawingColumns}
	for _, r := range view.Rows {
		hold := ""
		if r.Hold {
			hold = "Y"
		}
		rows = append(rows, []string{
			string(r.DrawingNumber), r.Category, r.Area, r.System, r.Title, hold, r.Status,
			r.CurrentRevision, r.CurrentRevisionDate, r.Remark,
		})
	}
	return rows
}

// DuplicateRows lists each repeated drawing number with the current
// revision of every row that carries it.
func DuplicateRows(view dto.DrawingView) [][]string {
	rows := [][]string{duplicateColumns}
	for _, g := range view.Duplicates {
		revs := ""
		for i, r := range g.Rows {
			if i > 0 {
				revs += " | "
			}
			revs += r.CurrentRevision
		}
		rows = append(rows, []string{string(g.DrawingNumber), strconv.Itoa(len(g.Rows)), revs})
	}
	return rows
}

func MaterialRows(view dto.MaterialView) [][]string {
	rows := [][]string{materialColumns}
	for _, m := range view.Rows {
		rows = append(rows, []string{
			string(m.IdentCode), m.Description, m.Size,
			itoa(int64(m.RequiredQty)), itoa(int64(m.Received)), itoa(int64(m.Issued)),
			itoa(int64(m.Stock)), itoa(int64(m.Shortage)),
		})
	}
	return rows
}

func InstallationRows(view dto.InstallationView) [][]string {
	rows := [][]string{installationColumns}
	for _, r := range view.Rows {
		rows = append(rows, []string{
			string(r.DrawingNumber), r.JointID, r.Category,
			r.NominalSize.String(), r.CompletedLength.String(),
			r.FieldRevision, r.CurrentRevision, r.CurrentRevisionDate, yesNo(r.RevisionMismatch),
		})
	}
	return rows
}

// SummaryRows renders headline counts and availability as metric/value pairs.
func SummaryRows(result *dto.ReconciliationResult) [][]string {
	s := result.Summarize()
	return [][]string{
		{"metric", "value"},
		{"drawings", strconv.Itoa(s.Drawings)},
		{"duplicate_groups", strconv.Itoa(s.DuplicateGroups)},
		{"materials", strconv.Itoa(s.Materials)},
		{"shortages", strconv.Itoa(s.Shortages)},
		{"installations", strconv.Itoa(s.Installations)},
		{"revision_mismatches", strconv.Itoa(s.RevisionMismatches)},
		{"unresolved_drawings", strconv.Itoa(s.UnresolvedDrawings)},
		{"total_progress_percent", result.Installations.TotalProgressPercent.StringFixed(2)},
		{"drawings_unavailable", yesNo(result.Drawings.Unavailable)},
		{"materials_unavailable", yesNo(result.Materials.Unavailable)},
		{"installations_unavailable", yesNo(result.Installations.Unavailable)},
	}
}

// Sheets returns every view of result as named tables. Unavailable views
// are left out.
func Sheets(result *dto.ReconciliationResult) []xlsx.Sheet {
	sheets := []xlsx.Sheet{{Name: SummarySheet, Rows: SummaryRows(result)}}
	if !result.Drawings.Unavailable {
		sheets = append(sheets,
			xlsx.Sheet{Name: DrawingsSheet, Rows: DrawingRows(result.Drawings)},
			xlsx.Sheet{Name: DuplicatesSheet, Rows: DuplicateRows(result.Drawings)},
		)
	}
	if !result.Materials.Unavailable {
		sheets = append(sheets, xlsx.Sheet{Name: MaterialsSheet, Rows: MaterialRows(result.Materials)})
	}
	if !result.Installations.Unavailable {
		sheets = append(sheets, xlsx.Sheet{Name: InstallationsSheet, Rows: InstallationRows(result.Installations)})
	}
	return sheets
}
