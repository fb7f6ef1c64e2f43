package services

import (
	"reflect"
	"testing"
)

type row struct {
	key   string
	value int
}

func rowKey(r row) string { return r.key }

func TestDuplicateGroups(t *testing.T) {
	rows := []row{{"P-1", 1}, {"P-2", 2}, {"P-1", 3}, {"P-3", 4}, {"P-2", 5}, {"P-1", 6}}

	groups := DuplicateGroups(rows, rowKey)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "P-1" || len(groups[0].Rows) != 3 {
		t.Errorf("Expected P-1 with 3 rows, got %s with %d", groups[0].Key, len(groups[0].Rows))
	}
	if groups[1].Key != "P-2" || len(groups[1].Rows) != 2 {
		t.Errorf("Expected P-2 with 2 rows, got %s with %d", groups[1].Key, len(groups[1].Rows))
	}
	if groups[0].Rows[2].value != 6 {
		t.Errorf("Expected group rows in input order, got %+v", groups[0].Rows)
	}

	if len(rows) != 6 || rows[2].value != 3 {
		t.Errorf("Expected input to be untouched, got %+v", rows)
	}

	if got := DuplicateGroups([]row{{"A", 1}, {"B", 2}}, rowKey); len(got) != 0 {
		t.Errorf("Expected no groups for unique keys, got %+v", got)
	}
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	rows := []row{{"P-1", 1}, {"P-2", 2}, {"P-1", 3}, {"P-3", 4}, {"P-2", 5}}

	got := Dedupe(rows, rowKey)
	expected := []row{{"P-1", 1}, {"P-2", 2}, {"P-3", 4}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
	if len(rows) != 5 {
		t.Errorf("Expected input slice length to be unchanged, got %d", len(rows))
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	inputs := [][]row{
		nil,
		{{"A", 1}},
		{{"A", 1}, {"A", 2}, {"A", 3}},
		{{"A", 1}, {"B", 2}, {"A", 3}, {"C", 4}, {"B", 5}},
	}

	for i, rows := range inputs {
		once := Dedupe(rows, rowKey)
		twice := Dedupe(once, rowKey)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("case %d: expected idempotent dedupe, got %+v then %+v", i, once, twice)
		}
		if len(DuplicateGroups(once, rowKey)) != 0 {
			t.Errorf("case %d: expected no duplicates after dedupe", i)
		}
	}
}
