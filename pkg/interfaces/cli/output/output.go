package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/plantrecon/pkg/application/dto"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/xlsx"
)

// Formats accepted by Generate
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
	// Out receives text and json output when no directory is set; nil means stdout.
	Out io.Writer
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Generate creates output in the specified format
func Generate(result *dto.ReconciliationResult, config Config) error {
	switch config.Format {
	case FormatText, "":
		return generateTextOutput(result, config)
	case FormatJSON:
		return generateJSONOutput(result, config)
	case FormatCSV:
		return generateCSVOutput(result, config)
	case FormatXLSX:
		return generateXLSXOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteText renders result as column tables.
func WriteText(w io.Writer, result *dto.ReconciliationResult) {
	s := result.Summarize()

	fmt.Fprintf(w, "📊 Reconciliation Summary\n")
	fmt.Fprintf(w, "=========================\n\n")
	fmt.Fprintf(w, "Drawings: %d (duplicate groups: %d)\n", s.Drawings, s.DuplicateGroups)
	fmt.Fprintf(w, "Materials: %d (short: %d)\n", s.Materials, s.Shortages)
	fmt.Fprintf(w, "Installations: %d (revision mismatches: %d, unresolved drawings: %d)\n",
		s.Installations, s.RevisionMismatches, s.UnresolvedDrawings)
	if !result.Installations.Unavailable {
		fmt.Fprintf(w, "Progress: %s / %s dia-inch (%s%%)\n",
			result.Installations.TotalCompletedLength,
			result.Installations.TotalNominalSize,
			result.Installations.TotalProgressPercent.StringFixed(2))
	}
	fmt.Fprintln(w)

	if len(result.Drawings.Duplicates) > 0 {
		fmt.Fprintf(w, "⚠️  Duplicate drawing numbers:\n")
		writeTable(w, DuplicateRows(result.Drawings))
	}

	section(w, "📐 Drawings", result.Drawings.Unavailable, DrawingRows(result.Drawings))
	section(w, "📦 Materials", result.Materials.Unavailable, MaterialRows(result.Materials))
	section(w, "🔧 Installations", result.Installations.Unavailable, InstallationRows(result.Installations))
}

func section(w io.Writer, title string, unavailable bool, rows [][]string) {
	fmt.Fprintf(w, "%s:\n", title)
	if unavailable {
		fmt.Fprintf(w, "  (source unavailable)\n\n")
		return
	}
	writeTable(w, rows)
}

// writeTable prints rows left-aligned to the widest cell of each column.
func writeTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(row []string) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	printRow(rows[0])
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	printRow(rule)
	for _, row := range rows[1:] {
		printRow(row)
	}
	fmt.Fprintln(w)
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.ReconciliationResult, config Config) error {
	WriteText(config.out(), result)
	if config.Verbose && config.Elapsed > 0 {
		fmt.Fprintf(config.out(), "Reconciled in %v\n", config.Elapsed)
	}

	if config.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "reconciliation.txt")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create text file: %w", err)
	}
	defer file.Close()

	WriteText(file, result)
	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 Results saved to: %s\n", filename)
	}
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.ReconciliationResult, config Config) error {
	payload := struct {
		Summary dto.Summary `json:"summary"`
		*dto.ReconciliationResult
	}{result.Summarize(), result}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.out(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "reconciliation.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one file per available view
func generateCSVOutput(result *dto.ReconciliationResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, sheet := range Sheets(result) {
		filename := filepath.Join(config.OutputDir, strings.ToLower(sheet.Name)+".csv")
		if err := csv.WriteTable(filename, sheet.Rows); err != nil {
			return fmt.Errorf("failed to write %s CSV: %w", sheet.Name, err)
		}
		if config.Verbose {
			fmt.Fprintf(config.out(), "💾 %s: %s\n", sheet.Name, filename)
		}
	}
	return nil
}

// generateXLSXOutput writes one workbook with a sheet per view
func generateXLSXOutput(result *dto.ReconciliationResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for XLSX format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "reconciliation.xlsx")
	if err := xlsx.WriteFile(filename, Sheets(result)...); err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.out(), "💾 Workbook saved to: %s\n", filename)
	}
	return nil
}
