package services

import (
	"testing"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

func slots(pairs ...string) []entities.RevisionSlot {
	out := make([]entities.RevisionSlot, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, entities.RevisionSlot{Label: pairs[i], Date: pairs[i+1]})
	}
	return out
}

func TestResolveCurrentRevision(t *testing.T) {
	testCases := []struct {
		name      string
		history   []entities.RevisionSlot
		wantLabel string
		wantDate  string
	}{
		{"latest of two populated", slots("A", "2024-01-01", "B", "2024-03-01", "", ""), "B", "2024-03-01"},
		{"all three populated", slots("A", "2024-01-01", "B", "2024-03-01", "C", "2024-05-01"), "C", "2024-05-01"},
		{"nil history", nil, "-", "-"},
		{"all blank", slots("", "", " ", "2024-01-01", "\t", ""), "-", "-"},
		{"single slot first", slots("0", "2023-11-30", "", "", "", ""), "0", "2023-11-30"},
		{"single slot middle", slots("", "", "1", "2024-02-02", "", ""), "1", "2024-02-02"},
		{"single slot last", slots("", "", "", "", "2", "2024-06-06"), "2", "2024-06-06"},
		{"gap keeps last positional", slots("A", "2024-01-01", "", "", "C", "2024-07-01"), "C", "2024-07-01"},
		{"date returned verbatim", slots("A", "not a date"), "A", "not a date"},
		{"label with blank date", slots("A", "2024-01-01", "B", ""), "B", ""},
		{"position beats chronology", slots("B", "2024-09-01", "A", "2023-01-01"), "A", "2023-01-01"},
		{"longer history", slots("0", "d0", "1", "d1", "2", "d2", "3", "d3", "4", "d4"), "4", "d4"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveCurrentRevision(tc.history)
			if got.Label != tc.wantLabel || got.Date != tc.wantDate {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tc.wantLabel, tc.wantDate, got.Label, got.Date)
			}
		})
	}
}

func TestResolveCurrentRevision_SinglePopulatedAnyPosition(t *testing.T) {
	for size := 1; size <= 6; size++ {
		for pos := 0; pos < size; pos++ {
			history := make([]entities.RevisionSlot, size)
			history[pos] = entities.RevisionSlot{Label: "R", Date: "2024-01-01"}

			got := ResolveCurrentRevision(history)
			if got != history[pos] {
				t.Errorf("size %d pos %d: expected %+v, got %+v", size, pos, history[pos], got)
			}
		}
	}
}
