package tabular

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// InstallationHeader is the column order written for installation tables.
var InstallationHeader = []string{ColDrawingNo, ColJointID, ColNominalSize, ColCompletedLength, ColFieldRevision}

func parseDecimal(col, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", col, s)
	}
	return d, nil
}

// ParseInstallations reads the field-installation register. Empty sizes
// and lengths are zero.
func ParseInstallations(records [][]string) ([]entities.InstallationRecord, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("installations table is empty")
	}
	h, err := parseHeader("installations", records[0], ColDrawingNo, ColNominalSize, ColCompletedLength, ColFieldRevision)
	if err != nil {
		return nil, err
	}

	out := make([]entities.InstallationRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		nominal, err := parseDecimal(ColNominalSize, h.get(record, ColNominalSize))
		if err != nil {
			return nil, fmt.Errorf("installations row %d: %w", i+2, err)
		}
		completed, err := parseDecimal(ColCompletedLength, h.get(record, ColCompletedLength))
		if err != nil {
			return nil, fmt.Errorf("installations row %d: %w", i+2, err)
		}
		rec, err := entities.NewInstallationRecord(
			entities.DrawingNumber(h.get(record, ColDrawingNo)),
			h.get(record, ColJointID),
			nominal,
			completed,
			h.get(record, ColFieldRevision),
		)
		if err != nil {
			return nil, fmt.Errorf("installations row %d: %w", i+2, err)
		}
		out = append(out, *rec)
	}
	return out, nil
}

func FormatInstallations(records []entities.InstallationRecord) [][]string {
	out := [][]string{InstallationHeader}
	for _, r := range records {
		out = append(out, []string{
			string(r.DrawingNumber),
			r.JointID,
			r.NominalSize.String(),
			r.CompletedLength.String(),
			r.FieldRevision,
		})
	}
	return out
}
