package tabular

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

func TestParseDrawings(t *testing.T) {
	records := [][]string{
		{"\ufeffDrawing_No", "Category", "rev_2", "rev_2_date", "rev_1", "rev_1_date", "Hold", "Remark"},
		{"P-101", "ISO", "B", "2024-03-01", "A", "2024-01-01", "Y", "reissued"},
		{"", "", "", "", "", "", "", ""},
		{" S-201 ", "Support", "", "", "A", "2024-01-15", "", ""},
	}

	drawings, err := ParseDrawings(records)
	if err != nil {
		t.Fatalf("ParseDrawings failed: %v", err)
	}
	if len(drawings) != 2 {
		t.Fatalf("Expected 2 drawings (blank row skipped), got %d", len(drawings))
	}

	p101 := drawings[0]
	expected := []entities.RevisionSlot{{Label: "A", Date: "2024-01-01"}, {Label: "B", Date: "2024-03-01"}}
	if !reflect.DeepEqual(p101.Revisions, expected) {
		t.Errorf("Expected slots ordered by number %v, got %v", expected, p101.Revisions)
	}
	if !p101.Hold || p101.Remark != "reissued" || p101.Category != "ISO" {
		t.Errorf("Expected attributes to be read, got %+v", p101)
	}
	if drawings[1].Number != "S-201" {
		t.Errorf("Expected trimmed drawing number S-201, got %q", drawings[1].Number)
	}
	if drawings[1].Revisions[1].Populated() {
		t.Errorf("Expected empty rev_2 slot for S-201, got %+v", drawings[1].Revisions[1])
	}
}

func TestParseDrawings_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		records [][]string
		want    string
	}{
		{"empty", nil, "empty"},
		{"missing column", [][]string{{"category"}}, "drawing_no"},
		{"empty number", [][]string{{"drawing_no", "category"}, {"", "ISO"}}, "row 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDrawings(tc.records)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestFormatDrawings_RoundTrip(t *testing.T) {
	d, _ := entities.NewDrawing("P-1", "ISO", "U1", "CW", "Line 1", true, "IFC", []entities.RevisionSlot{
		{Label: "A", Date: "2024-01-01"},
	}, "")

	records := FormatDrawings([]entities.Drawing{*d})
	if len(records[0]) != 7+2*DefaultRevisionSlots+1 {
		t.Errorf("Expected header with %d slots, got %v", DefaultRevisionSlots, records[0])
	}

	parsed, err := ParseDrawings(records)
	if err != nil {
		t.Fatalf("ParseDrawings failed: %v", err)
	}
	if parsed[0].Revisions[0] != d.Revisions[0] || len(parsed[0].Revisions) != DefaultRevisionSlots {
		t.Errorf("Expected first slot kept and padded to %d, got %v", DefaultRevisionSlots, parsed[0].Revisions)
	}
	if !parsed[0].Hold {
		t.Error("Expected hold flag to survive")
	}
}

func TestParseMaterials(t *testing.T) {
	records := [][]string{
		{"ident_code", "description", "required_qty"},
		{"M1", "Pipe 2in", "150"},
		{"M2", "Elbow", ""},
	}
	items, err := ParseMaterials(records)
	if err != nil {
		t.Fatalf("ParseMaterials failed: %v", err)
	}
	if len(items) != 2 || items[0].RequiredQty != 150 || items[1].RequiredQty != 0 {
		t.Errorf("Expected M1=150, M2=0, got %+v", items)
	}

	_, err = ParseMaterials([][]string{{"ident_code", "required_qty"}, {"M1", "ten"}})
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Expected row 2 quantity error, got %v", err)
	}

	_, err = ParseMaterials([][]string{{"ident_code", "required_qty"}, {"M1", "-1"}})
	if err == nil {
		t.Error("Expected negative requirement to be rejected")
	}
}

func TestParseLedger(t *testing.T) {
	records := [][]string{
		LedgerHeader,
		{"a", "2024-03-01", "IN", "M1", "100", "", ""},
		{"b", "2024-03-02", "out", "M1", "30", "P-101", "for spool 3"},
	}
	entries, err := ParseLedger(records)
	if err != nil {
		t.Fatalf("ParseLedger failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Type != entities.Issue || entries[1].DrawingNumber != "P-101" || entries[1].Remark != "for spool 3" {
		t.Errorf("Expected parsed issue, got %+v", entries[1])
	}
	if !entries[0].Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected 2024-03-01, got %s", entries[0].Date)
	}

	again, err := ParseLedger(FormatLedger(entries))
	if err != nil {
		t.Fatalf("ParseLedger of formatted ledger failed: %v", err)
	}
	if !reflect.DeepEqual(again, entries) {
		t.Errorf("Expected formatted ledger to parse back, got %+v", again)
	}
}

func TestParseLedger_Errors(t *testing.T) {
	testCases := []struct {
		name string
		row  []string
	}{
		{"bad date", []string{"", "03/01/2024", "IN", "M1", "1", "", ""}},
		{"bad type", []string{"", "2024-03-01", "MOVE", "M1", "1", "", ""}},
		{"bad quantity", []string{"", "2024-03-01", "IN", "M1", "1.5", "", ""}},
		{"zero quantity", []string{"", "2024-03-01", "IN", "M1", "0", "", ""}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLedger([][]string{LedgerHeader, tc.row}); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	entries, err := ParseLedger(nil)
	if err != nil || len(entries) != 0 {
		t.Errorf("Expected empty ledger, got %v, %v", entries, err)
	}
}

func TestProjectLedgerEntry(t *testing.T) {
	entry := entities.LedgerEntry{
		ID:            "id-9",
		Date:          time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Type:          entities.Issue,
		IdentCode:     "M2",
		Quantity:      7,
		DrawingNumber: "P-102",
	}

	testCases := []struct {
		name     string
		header   []string
		expected []string
		wantErr  bool
	}{
		{"standard order", LedgerHeader, []string{"id-9", "2024-03-04", "OUT", "M2", "7", "P-102", ""}, false},
		{"reordered with extra column", []string{"Quantity", "ident_code", "note", "type", "date", "drawing_no"},
			[]string{"7", "M2", "", "OUT", "2024-03-04", "P-102"}, false},
		{"no drawing column", []string{"date", "type", "ident_code", "quantity"}, nil, true},
		{"missing required column", []string{"date", "ident_code", "quantity", "drawing_no"}, nil, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row, err := ProjectLedgerEntry(tc.header, entry)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error, got row %v", row)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProjectLedgerEntry failed: %v", err)
			}
			if !reflect.DeepEqual(row, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, row)
			}
		})
	}
}

func TestParseInstallations(t *testing.T) {
	records := [][]string{
		{"drawing_no", "joint_id", "nominal_size", "completed_length", "field_revision"},
		{"P-101", "W1", "4.5", "2.25", "B"},
		{"P-102", "W2", "", "", ""},
	}
	out, err := ParseInstallations(records)
	if err != nil {
		t.Fatalf("ParseInstallations failed: %v", err)
	}
	if !out[0].NominalSize.Equal(decimal.RequireFromString("4.5")) || !out[0].CompletedLength.Equal(decimal.RequireFromString("2.25")) {
		t.Errorf("Expected 4.5/2.25, got %s/%s", out[0].NominalSize, out[0].CompletedLength)
	}
	if !out[1].NominalSize.IsZero() || out[1].FieldRevision != "" {
		t.Errorf("Expected blanks to be zero, got %+v", out[1])
	}

	formatted := FormatInstallations(out)
	if !reflect.DeepEqual(formatted[1], []string{"P-101", "W1", "4.5", "2.25", "B"}) {
		t.Errorf("Expected formatted row, got %v", formatted[1])
	}

	_, err = ParseInstallations([][]string{records[0], {"P-1", "W", "abc", "1", "A"}})
	if err == nil || !strings.Contains(err.Error(), "nominal_size") {
		t.Errorf("Expected nominal_size error, got %v", err)
	}
}
