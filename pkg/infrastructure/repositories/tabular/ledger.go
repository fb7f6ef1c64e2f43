package tabular

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// LedgerHeader is the column order of ledger tables.
var LedgerHeader = []string{ColID, ColDate, ColType, ColIdentCode, ColQuantity, ColDrawingNo, ColRemark}

// ParseLedger reads ledger entries in file order. A header-only table is an
// empty ledger.
func ParseLedger(records [][]string) ([]entities.LedgerEntry, error) {
	if len(records) == 0 {
		return []entities.LedgerEntry{}, nil
	}
	h, err := parseHeader("ledger", records[0], ColDate, ColType, ColIdentCode, ColQuantity)
	if err != nil {
		return nil, err
	}

	entries := make([]entities.LedgerEntry, 0, len(records)-1)
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		entry, err := parseLedgerRecord(h, record)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+2, err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func parseLedgerRecord(h header, record []string) (*entities.LedgerEntry, error) {
	dateStr := h.get(record, ColDate)
	date, err := time.Parse(entities.LedgerDateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}
	txType, err := entities.ParseTransactionType(h.get(record, ColType))
	if err != nil {
		return nil, err
	}
	qtyStr := h.get(record, ColQuantity)
	qty, err := strconv.ParseInt(qtyStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", qtyStr)
	}
	return entities.NewLedgerEntry(
		h.get(record, ColID),
		date,
		txType,
		entities.IdentCode(h.get(record, ColIdentCode)),
		entities.Quantity(qty),
		entities.DrawingNumber(h.get(record, ColDrawingNo)),
		h.get(record, ColRemark),
	)
}

// FormatLedgerEntry renders one entry in LedgerHeader order.
func FormatLedgerEntry(e entities.LedgerEntry) []string {
	return []string{
		e.ID,
		e.Date.Format(entities.LedgerDateLayout),
		e.Type.String(),
		string(e.IdentCode),
		strconv.FormatInt(int64(e.Quantity), 10),
		string(e.DrawingNumber),
		e.Remark,
	}
}

// ProjectLedgerEntry renders e in the column order of an existing ledger
// header. Columns the ledger does not know are left blank. A missing id
// column is allowed since append order identifies an entry; a drawing number
// or remark with no column to hold it is an error.
func ProjectLedgerEntry(headerRow []string, e entities.LedgerEntry) ([]string, error) {
	h, err := parseHeader("ledger", headerRow, ColDate, ColType, ColIdentCode, ColQuantity)
	if err != nil {
		return nil, err
	}
	values := FormatLedgerEntry(e)
	row := make([]string, len(headerRow))
	for i, col := range LedgerHeader {
		idx, ok := h[col]
		if !ok {
			if col != ColID && values[i] != "" {
				return nil, fmt.Errorf("ledger header has no %s column for %q", col, values[i])
			}
			continue
		}
		row[idx] = values[i]
	}
	return row, nil
}

func FormatLedger(entries []entities.LedgerEntry) [][]string {
	records := [][]string{LedgerHeader}
	for _, e := range entries {
		records = append(records, FormatLedgerEntry(e))
	}
	return records
}
