package tabular

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// DefaultRevisionSlots is the number of rev_k/rev_k_date pairs written when
// the register itself carries fewer.
const DefaultRevisionSlots = 3

var revColumn = regexp.MustCompile(`^rev_(\d+)$`)

// RevisionColumn returns the label and date column names of slot k (1-based).
func RevisionColumn(k int) (label, date string) {
	label = fmt.Sprintf("rev_%d", k)
	return label, label + "_date"
}

// ParseDrawings reads a drawing register. The first record is the header.
// Revision slots are taken from rev_1, rev_1_date, rev_2, ... in slot order,
// whatever their column position. Blank rows are skipped.
func ParseDrawings(records [][]string) ([]entities.Drawing, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("drawings table is empty")
	}
	h, err := parseHeader("drawings", records[0], ColDrawingNo)
	if err != nil {
		return nil, err
	}

	var slots []int
	for name := range h {
		if m := revColumn.FindStringSubmatch(name); m != nil {
			k, _ := strconv.Atoi(m[1])
			slots = append(slots, k)
		}
	}
	sort.Ints(slots)

	drawings := make([]entities.Drawing, 0, len(records)-1)
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		revisions := make([]entities.RevisionSlot, 0, len(slots))
		for _, k := range slots {
			labelCol, dateCol := RevisionColumn(k)
			revisions = append(revisions, entities.RevisionSlot{
				Label: h.get(record, labelCol),
				Date:  h.get(record, dateCol),
			})
		}

		d, err := entities.NewDrawing(
			entities.DrawingNumber(h.get(record, ColDrawingNo)),
			h.get(record, ColCategory),
			h.get(record, ColArea),
			h.get(record, ColSystem),
			h.get(record, ColTitle),
			parseBool(h.get(record, ColHold)),
			h.get(record, ColStatus),
			revisions,
			h.get(record, ColRemark),
		)
		if err != nil {
			return nil, fmt.Errorf("drawings row %d: %w", i+2, err)
		}
		drawings = append(drawings, *d)
	}
	return drawings, nil
}

// DrawingHeader returns the register header with n revision slot pairs.
func DrawingHeader(n int) []string {
	row := []string{ColDrawingNo, ColCategory, ColArea, ColSystem, ColTitle, ColHold, ColStatus}
	for k := 1; k <= n; k++ {
		label, date := RevisionColumn(k)
		row = append(row, label, date)
	}
	return append(row, ColRemark)
}

// FormatDrawings writes drawings with a header wide enough for the longest
// revision history.
func FormatDrawings(drawings []entities.Drawing) [][]string {
	n := DefaultRevisionSlots
	for _, d := range drawings {
		if len(d.Revisions) > n {
			n = len(d.Revisions)
		}
	}

	records := [][]string{DrawingHeader(n)}
	for _, d := range drawings {
		row := []string{string(d.Number), d.Category, d.Area, d.System, d.Title, formatBool(d.Hold), d.Status}
		for k := 0; k < n; k++ {
			var slot entities.RevisionSlot
			if k < len(d.Revisions) {
				slot = d.Revisions[k]
			}
			row = append(row, slot.Label, slot.Date)
		}
		records = append(records, append(row, d.Remark))
	}
	return records
}
