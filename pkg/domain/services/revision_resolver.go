// Package services holds the pure reconciliation rules: revision
// resolution, ledger aggregation, shortage, revision consistency, duplicate
// detection and category filtering. Nothing here performs I/O.
package services

import "github.com/vsinha/plantrecon/pkg/domain/entities"

// ResolveCurrentRevision returns the last populated slot of an oldest-first
// revision history. The date is returned as stored. A history without any
// populated slot resolves to (NoRevision, NoRevision).
func ResolveCurrentRevision(slots []entities.RevisionSlot) entities.RevisionSlot {
	for i := len(slots) - 1; i >= 0; i-- {
		if slots[i].Populated() {
			return slots[i]
		}
	}
	return entities.RevisionSlot{Label: entities.NoRevision, Date: entities.NoRevision}
}
