// Package tabular converts the four input tables to and from rows of
// strings. The csv and xlsx adapters share it so both formats accept the
// same columns.
package tabular

import (
	"fmt"
	"strings"
)

// Column names
const (
	ColDrawingNo       = "drawing_no"
	ColCategory        = "category"
	ColArea            = "area"
	ColSystem          = "system"
	ColTitle           = "title"
	ColHold            = "hold"
	ColStatus          = "status"
	ColRemark          = "remark"
	ColIdentCode       = "ident_code"
	ColDescription     = "description"
	ColSize            = "size"
	ColUnit            = "unit"
	ColRequiredQty     = "required_qty"
	ColID              = "id"
	ColDate            = "date"
	ColType            = "type"
	ColQuantity        = "quantity"
	ColJointID         = "joint_id"
	ColNominalSize     = "nominal_size"
	ColCompletedLength = "completed_length"
	ColFieldRevision   = "field_revision"
)

// header maps normalized column names to their index
type header map[string]int

func normalize(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

func parseHeader(table string, row []string, required ...string) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s header missing column(s): %s", table, strings.Join(missing, ", "))
	}
	return h, nil
}

// get returns the trimmed cell for col, or "" when the column or cell is absent.
func (h header) get(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "hold", "x":
		return true
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "Y"
	}
	return ""
}
