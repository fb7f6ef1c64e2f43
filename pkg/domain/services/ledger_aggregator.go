package services

import "github.com/vsinha/plantrecon/pkg/domain/entities"

// LedgerTotals is the received and issued sum for one ident code
type LedgerTotals struct {
	Received entities.Quantity
	Issued   entities.Quantity
}

// Stock is received minus issued.
func (t LedgerTotals) Stock() entities.Quantity {
	return t.Received - t.Issued
}

// AggregateLedger sums IN and OUT quantities per ident code. The result does
// not depend on entry order. Codes absent from the ledger are absent from the
// map, and a lookup yields zero totals. Quantities are not validated here.
func AggregateLedger(entries []entities.LedgerEntry) map[entities.IdentCode]LedgerTotals {
	totals := make(map[entities.IdentCode]LedgerTotals)
	for _, entry := range entries {
		t := totals[entry.IdentCode]
		switch entry.Type {
		case entities.Receipt:
			t.Received += entry.Quantity
		case entities.Issue:
			t.Issued += entry.Quantity
		default:
			continue
		}
		totals[entry.IdentCode] = t
	}
	return totals
}

// CheckIssue rejects an issue of quantity that would take the stock of code
// below zero.
func CheckIssue(entries []entities.LedgerEntry, code entities.IdentCode, quantity entities.Quantity) error {
	stock := AggregateLedger(entries)[code].Stock()
	if quantity > stock {
		return &entities.InsufficientStockError{IdentCode: code, Stock: stock, Requested: quantity}
	}
	return nil
}
