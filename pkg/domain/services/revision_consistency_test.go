package services

import "testing"

func TestRevisionMismatch(t *testing.T) {
	testCases := []struct {
		name     string
		field    string
		current  string
		mismatch bool
	}{
		{"same label", "B", "B", false},
		{"older field revision", "A", "B", true},
		{"whitespace ignored", " B ", "B\t", false},
		{"case sensitive", "b", "B", true},
		{"numeric labels are tokens", "01", "1", true},
		{"unmatched drawing", "A", "none", true},
		{"unresolved drawing", "A", "-", true},
		{"empty field revision", "", "B", true},
		{"blank field revision", "  ", "B", true},
		{"field equals sentinel dash", "-", "-", true},
		{"field equals sentinel none", "none", "none", true},
		{"both empty", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RevisionMismatch(tc.field, tc.current); got != tc.mismatch {
				t.Errorf("RevisionMismatch(%q, %q): expected %v, got %v", tc.field, tc.current, tc.mismatch, got)
			}
		})
	}
}
