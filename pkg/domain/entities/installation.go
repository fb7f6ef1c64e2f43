package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnresolvedRevision is reported as the current revision of an installation
// row whose drawing is not in the register.
const UnresolvedRevision = "none"

// InstallationRecord is one joint or segment of the field-installation
// register. Sizes are in diameter-inches.
type InstallationRecord struct {
	DrawingNumber   DrawingNumber   `json:"drawing_no"`
	JointID         string          `json:"joint_id"`
	NominalSize     decimal.Decimal `json:"nominal_size"`
	CompletedLength decimal.Decimal `json:"completed_length"`
	FieldRevision   string          `json:"field_revision"`
}

// NewInstallationRecord creates a validated InstallationRecord
func NewInstallationRecord(drawing DrawingNumber, jointID string, nominal, completed decimal.Decimal, fieldRevision string) (*InstallationRecord, error) {
	if strings.TrimSpace(string(drawing)) == "" {
		return nil, fmt.Errorf("drawing number cannot be empty")
	}
	if nominal.IsNegative() {
		return nil, fmt.Errorf("nominal size cannot be negative, got %s", nominal)
	}
	if completed.IsNegative() {
		return nil, fmt.Errorf("completed length cannot be negative, got %s", completed)
	}

	return &InstallationRecord{
		DrawingNumber:   DrawingNumber(strings.TrimSpace(string(drawing))),
		JointID:         jointID,
		NominalSize:     nominal,
		CompletedLength: completed,
		FieldRevision:   fieldRevision,
	}, nil
}

// ReconciledRow is an installation record joined with the current revision
// of its drawing.
type ReconciledRow struct {
	DrawingNumber       DrawingNumber   `json:"drawing_no"`
	JointID             string          `json:"joint_id"`
	Category            string          `json:"category,omitempty"`
	NominalSize         decimal.Decimal `json:"nominal_size"`
	CompletedLength     decimal.Decimal `json:"completed_length"`
	FieldRevision       string          `json:"field_revision"`
	CurrentRevision     string          `json:"current_revision"`
	CurrentRevisionDate string          `json:"current_revision_date"`
	RevisionMismatch    bool            `json:"revision_mismatch"`
}
