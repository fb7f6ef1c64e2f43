package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingSource marks a required table that could not be found.
	ErrMissingSource = errors.New("source unavailable")
	// ErrInsufficientStock rejects an issue that would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateKey marks drawing rows sharing a drawing number.
	ErrDuplicateKey = errors.New("duplicate drawing number")
	// ErrInvalidEntry rejects a malformed ledger entry before append.
	ErrInvalidEntry = errors.New("invalid ledger entry")
)

// Source names one of the input tables
type Source string

const (
	SourceDrawings      Source = "drawings"
	SourceMaterials     Source = "materials"
	SourceLedger        Source = "ledger"
	SourceInstallations Source = "installations"
)

// AllSources lists the input tables in load order.
var AllSources = []Source{SourceDrawings, SourceMaterials, SourceLedger, SourceInstallations}

// MissingSourceError reports which table is unavailable and where it was
// looked for.
type MissingSourceError struct {
	Source   Source
	Location string
}

func (e *MissingSourceError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("%s %s", e.Source, ErrMissingSource)
	}
	return fmt.Sprintf("%s %s: %s", e.Source, ErrMissingSource, e.Location)
}

func (e *MissingSourceError) Unwrap() error { return ErrMissingSource }

// InsufficientStockError carries the stock position that caused the rejection
type InsufficientStockError struct {
	IdentCode IdentCode
	Stock     Quantity
	Requested Quantity
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s for %s: stock %d, requested %d", ErrInsufficientStock, e.IdentCode, e.Stock, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DuplicateKeyError lists the drawing numbers that occur more than once and
// the number of rows a first-occurrence dedupe would drop.
type DuplicateKeyError struct {
	Keys    []DrawingNumber
	Dropped int
}

func (e *DuplicateKeyError) Error() string {
	keys := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		keys[i] = string(k)
	}
	return fmt.Sprintf("%d %s group(s), %d redundant row(s): %s", len(e.Keys), ErrDuplicateKey, e.Dropped, strings.Join(keys, ", "))
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }
