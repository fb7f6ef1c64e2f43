package xlsx

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteFileAndReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawings.xlsx")
	rows := [][]string{
		{"drawing_no", "category", "rev_1", "rev_1_date"},
		{"P-101", "ISO", "A", "2024-01-01"},
		{"P-102", "ISO", "0", "2024-02-10"},
	}

	if err := WriteFile(path, Sheet{Name: "Drawings", Rows: rows}, Sheet{Name: "Other", Rows: [][]string{{"x"}}}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("Expected first sheet rows %v, got %v", rows, got)
	}
}

func TestWriteAndReadFrom(t *testing.T) {
	var buf bytes.Buffer
	sheets := []Sheet{
		{Name: "Drawings", Rows: [][]string{{"a"}, {"1"}}},
		{Name: "Materials", Rows: [][]string{{"b"}, {"2"}}},
	}
	if err := Write(&buf, sheets...); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	if names := f.GetSheetList(); !reflect.DeepEqual(names, []string{"Drawings", "Materials"}) {
		t.Errorf("Expected sheets [Drawings Materials], got %v", names)
	}
	value, _ := f.GetCellValue("Materials", "A2")
	if value != "2" {
		t.Errorf("Expected Materials!A2 = 2, got %q", value)
	}

	rows, err := ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "1" {
		t.Errorf("Expected first sheet rows, got %v", rows)
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	if _, err := ReadRecords(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("Expected error for missing workbook, got nil")
	}
}
