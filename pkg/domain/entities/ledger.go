package entities

import (
	"fmt"
	"strings"
	"time"
)

// LedgerDateLayout is the date format used for ledger entries.
const LedgerDateLayout = "2006-01-02"

// TransactionType distinguishes receipts from issues
type TransactionType int

const (
	Receipt TransactionType = iota
	Issue
)

// String method for TransactionType enum
func (t TransactionType) String() string {
	switch t {
	case Receipt:
		return "IN"
	case Issue:
		return "OUT"
	default:
		return "Unknown"
	}
}

// ParseTransactionType accepts IN and OUT in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN":
		return Receipt, nil
	case "OUT":
		return Issue, nil
	default:
		return Receipt, fmt.Errorf("invalid transaction type: %s (expected: IN or OUT)", s)
	}
}

// LedgerEntry is one append-only receipt or issue event. Entries are never
// edited; a correction is a new offsetting entry.
type LedgerEntry struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	IdentCode     IdentCode       `json:"ident_code"`
	Quantity      Quantity        `json:"quantity"`
	DrawingNumber DrawingNumber   `json:"drawing_no,omitempty"`
	Remark        string          `json:"remark,omitempty"`
}

// NewLedgerEntry creates a validated LedgerEntry. The ident code does not
// need to exist in the material table. A drawing number is only kept on
// issues.
func NewLedgerEntry(id string, date time.Time, txType TransactionType, identCode IdentCode, quantity Quantity, drawing DrawingNumber, remark string) (*LedgerEntry, error) {
	if strings.TrimSpace(string(identCode)) == "" {
		return nil, fmt.Errorf("%w: ident code cannot be empty", ErrInvalidEntry)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidEntry, quantity)
	}
	if txType != Receipt && txType != Issue {
		return nil, fmt.Errorf("%w: unknown transaction type %d", ErrInvalidEntry, txType)
	}
	if txType == Receipt {
		drawing = ""
	}

	return &LedgerEntry{
		ID:            id,
		Date:          date,
		Type:          txType,
		IdentCode:     IdentCode(strings.TrimSpace(string(identCode))),
		Quantity:      quantity,
		DrawingNumber: DrawingNumber(strings.TrimSpace(string(drawing))),
		Remark:        remark,
	}, nil
}
