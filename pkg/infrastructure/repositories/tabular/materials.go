package tabular

import (
	"fmt"
	"strconv"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// MaterialHeader is the column order written for material tables.
var MaterialHeader = []string{ColIdentCode, ColDescription, ColSize, ColUnit, ColRequiredQty}

func parseQuantity(s string) (entities.Quantity, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return entities.Quantity(n), nil
}

// ParseMaterials reads a material requirement table. An empty required_qty
// is zero.
func ParseMaterials(records [][]string) ([]entities.MaterialItem, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("materials table is empty")
	}
	h, err := parseHeader("materials", records[0], ColIdentCode, ColRequiredQty)
	if err != nil {
		return nil, err
	}

	items := make([]entities.MaterialItem, 0, len(records)-1)
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		required, err := parseQuantity(h.get(record, ColRequiredQty))
		if err != nil {
			return nil, fmt.Errorf("materials row %d: %w", i+2, err)
		}
		item, err := entities.NewMaterialItem(
			entities.IdentCode(h.get(record, ColIdentCode)),
			h.get(record, ColDescription),
			h.get(record, ColSize),
			h.get(record, ColUnit),
			required,
		)
		if err != nil {
			return nil, fmt.Errorf("materials row %d: %w", i+2, err)
		}
		items = append(items, *item)
	}
	return items, nil
}

func FormatMaterials(items []entities.MaterialItem) [][]string {
	records := [][]string{MaterialHeader}
	for _, m := range items {
		records = append(records, []string{
			string(m.IdentCode),
			m.Description,
			m.Size,
			m.UnitOfMeasure,
			strconv.FormatInt(int64(m.RequiredQty), 10),
		})
	}
	return records
}
