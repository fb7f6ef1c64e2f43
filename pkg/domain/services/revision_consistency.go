package services

import (
	"strings"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// RevisionMismatch compares a field-applied revision with the drawing's
// current revision. Labels are opaque, case-sensitive tokens compared after
// trimming. An empty field revision or an unresolved current revision
// always mismatches.
func RevisionMismatch(fieldRevision, currentRevision string) bool {
	field := strings.TrimSpace(fieldRevision)
	current := strings.TrimSpace(currentRevision)

	if field == "" || isUnresolved(current) {
		return true
	}
	return field != current
}

func isUnresolved(label string) bool {
	return label == "" || label == entities.NoRevision || label == entities.UnresolvedRevision
}
