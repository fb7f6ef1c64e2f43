package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/tabular"
)

// Scenario file names
const (
	DrawingsFile      = "drawings"
	MaterialsFile     = "materials"
	LedgerFile        = "ledger.csv"
	InstallationsFile = "installations"
)

// Store keeps the four tables as files in one directory. Masters are read
// from <name>.csv, falling back to <name>.xlsx; replacing a master always
// writes <name>.csv. The ledger is ledger.csv and only ever appended to.
type Store struct {
	dir string
	mu  sync.RWMutex
}

var _ repositories.Store = (*Store)(nil)

// NewStore creates a store over dir. The directory is not required to exist
// until the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// locate returns the first existing file for a master table.
func (s *Store) locate(source entities.Source, base string) (string, error) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(s.dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", &entities.MissingSourceError{Source: source, Location: filepath.Join(s.dir, base+".csv")}
}

func (s *Store) readMaster(source entities.Source, base string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.locate(source, base)
	if err != nil {
		return nil, err
	}
	return ReadTable(path)
}

func (s *Store) replaceMaster(base string, records [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	if err := WriteTable(filepath.Join(s.dir, base+".csv"), records); err != nil {
		return err
	}
	// the csv now wins the lookup; drop the workbook it replaces
	stale := filepath.Join(s.dir, base+".xlsx")
	if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", stale, err)
	}
	return nil
}

func (s *Store) GetDrawings(ctx context.Context) ([]entities.Drawing, error) {
	records, err := s.readMaster(entities.SourceDrawings, DrawingsFile)
	if err != nil {
		return nil, err
	}
	return tabular.ParseDrawings(records)
}

func (s *Store) ReplaceDrawings(ctx context.Context, drawings []entities.Drawing) error {
	return s.replaceMaster(DrawingsFile, tabular.FormatDrawings(drawings))
}

func (s *Store) GetMaterials(ctx context.Context) ([]entities.MaterialItem, error) {
	records, err := s.readMaster(entities.SourceMaterials, MaterialsFile)
	if err != nil {
		return nil, err
	}
	return tabular.ParseMaterials(records)
}

func (s *Store) ReplaceMaterials(ctx context.Context, materials []entities.MaterialItem) error {
	return s.replaceMaster(MaterialsFile, tabular.FormatMaterials(materials))
}

func (s *Store) GetInstallations(ctx context.Context) ([]entities.InstallationRecord, error) {
	records, err := s.readMaster(entities.SourceInstallations, InstallationsFile)
	if err != nil {
		return nil, err
	}
	return tabular.ParseInstallations(records)
}

func (s *Store) ReplaceInstallations(ctx context.Context, records []entities.InstallationRecord) error {
	return s.replaceMaster(InstallationsFile, tabular.FormatInstallations(records))
}

// GetLedger reads ledger.csv. A missing file is an empty ledger.
func (s *Store) GetLedger(ctx context.Context) ([]entities.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := readCSV(filepath.Join(s.dir, LedgerFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []entities.LedgerEntry{}, nil
		}
		return nil, err
	}
	return tabular.ParseLedger(records)
}

// AppendEntry appends one row to ledger.csv. A new or empty file gets the
// standard header; an existing file keeps its own column order and the row
// is projected onto it. A missing final newline is restored first so the
// row cannot merge into the previous record.
func (s *Store) AppendEntry(ctx context.Context, entry entities.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, LedgerFile)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	headerRow, err := readHeaderRow(file, info.Size())
	if err != nil {
		return fmt.Errorf("failed to read %s header: %w", path, err)
	}

	var records [][]string
	if headerRow == nil {
		records = append(records, tabular.LedgerHeader)
		headerRow = tabular.LedgerHeader
	}
	row, err := tabular.ProjectLedgerEntry(headerRow, entry)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry to %s: %w", path, err)
	}
	records = append(records, row)

	if info.Size() > 0 {
		if err := terminateLastLine(file, info.Size()); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
	}

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return file.Sync()
}

// readHeaderRow returns the first record of file, or nil when the file holds
// no record yet.
func readHeaderRow(file *os.File, size int64) ([]string, error) {
	if size == 0 {
		return nil, nil
	}
	reader := csv.NewReader(io.NewSectionReader(file, 0, size))
	reader.FieldsPerRecord = -1
	row, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return row, err
}

// terminateLastLine writes a newline when the file does not end with one.
func terminateLastLine(file *os.File, size int64) error {
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, size-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err := file.Write([]byte("\n"))
	return err
}
