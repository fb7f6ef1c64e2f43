package entities

import (
	"fmt"
	"strings"
)

// NoRevision is the label and date reported for a drawing whose revision
// history has no populated slot.
const NoRevision = "-"

// DrawingNumber uniquely identifies a drawing in the register
type DrawingNumber string

// RevisionSlot is one (label, date) pair of a drawing's revision history.
// Date is carried verbatim and never parsed.
type RevisionSlot struct {
	Label string `json:"label"`
	Date  string `json:"date"`
}

// Populated reports whether the slot carries a non-blank label.
func (s RevisionSlot) Populated() bool {
	return strings.TrimSpace(s.Label) != ""
}

// Drawing is a row of the drawing register. Revisions is ordered oldest
// first; position, not date, defines which slot is newest.
type Drawing struct {
	Number    DrawingNumber  `json:"drawing_no"`
	Category  string         `json:"category"`
	Area      string         `json:"area"`
	System    string         `json:"system"`
	Title     string         `json:"title"`
	Hold      bool           `json:"hold"`
	Status    string         `json:"status"`
	Revisions []RevisionSlot `json:"revisions"`
	Remark    string         `json:"remark"`
}

// NewDrawing creates a validated Drawing
func NewDrawing(number DrawingNumber, category, area, system, title string, hold bool, status string, revisions []RevisionSlot, remark string) (*Drawing, error) {
	if strings.TrimSpace(string(number)) == "" {
		return nil, fmt.Errorf("drawing number cannot be empty")
	}

	return &Drawing{
		Number:    DrawingNumber(strings.TrimSpace(string(number))),
		Category:  category,
		Area:      area,
		System:    system,
		Title:     title,
		Hold:      hold,
		Status:    status,
		Revisions: append([]RevisionSlot(nil), revisions...),
		Remark:    remark,
	}, nil
}
