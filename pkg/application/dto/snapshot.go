package dto

import "github.com/vsinha/plantrecon/pkg/domain/entities"

// Snapshot is an immutable copy of the four input tables taken between
// writes. Missing lists tables that could not be found.
type Snapshot struct {
	Drawings      []entities.Drawing
	Materials     []entities.MaterialItem
	Ledger        []entities.LedgerEntry
	Installations []entities.InstallationRecord
	Missing       []entities.Source
}

// Has reports whether source was available when the snapshot was taken.
func (s *Snapshot) Has(source entities.Source) bool {
	for _, m := range s.Missing {
		if m == source {
			return false
		}
	}
	return true
}

// Require returns a MissingSourceError for the first unavailable source.
func (s *Snapshot) Require(sources ...entities.Source) error {
	for _, src := range sources {
		if !s.Has(src) {
			return &entities.MissingSourceError{Source: src}
		}
	}
	return nil
}
