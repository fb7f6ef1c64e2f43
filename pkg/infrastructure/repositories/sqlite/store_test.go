package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	testhelpers "github.com/vsinha/plantrecon/pkg/application/services/testing"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "db", "recon.sqlite")
	db, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return NewStore(db)
}

func TestStore_MissingUntilImported(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	if _, err := store.GetDrawings(ctx); !errors.Is(err, entities.ErrMissingSource) {
		t.Errorf("Expected drawings missing, got %v", err)
	}
	if _, err := store.GetMaterials(ctx); !errors.Is(err, entities.ErrMissingSource) {
		t.Errorf("Expected materials missing, got %v", err)
	}
	if _, err := store.GetInstallations(ctx); !errors.Is(err, entities.ErrMissingSource) {
		t.Errorf("Expected installations missing, got %v", err)
	}
	ledger, err := store.GetLedger(ctx)
	if err != nil || len(ledger) != 0 {
		t.Errorf("Expected empty ledger, got %v, %v", ledger, err)
	}

	if err := store.ReplaceMaterials(ctx, nil); err != nil {
		t.Fatalf("ReplaceMaterials failed: %v", err)
	}
	materials, err := store.GetMaterials(ctx)
	if err != nil || len(materials) != 0 {
		t.Errorf("Expected an imported empty table to be present, got %v, %v", materials, err)
	}
}

func TestStore_DrawingsKeepRevisionOrder(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	if err := store.ReplaceDrawings(ctx, testhelpers.PlantDrawings()); err != nil {
		t.Fatalf("ReplaceDrawings failed: %v", err)
	}
	drawings, err := store.GetDrawings(ctx)
	if err != nil {
		t.Fatalf("GetDrawings failed: %v", err)
	}

	expected := testhelpers.PlantDrawings()
	if len(drawings) != len(expected) {
		t.Fatalf("Expected %d drawings, got %d", len(expected), len(drawings))
	}
	for i := range expected {
		if drawings[i].Number != expected[i].Number || len(drawings[i].Revisions) != len(expected[i].Revisions) {
			t.Errorf("drawing %d: expected %s with %d slots, got %s with %d", i,
				expected[i].Number, len(expected[i].Revisions), drawings[i].Number, len(drawings[i].Revisions))
			continue
		}
		for k := range expected[i].Revisions {
			if drawings[i].Revisions[k] != expected[i].Revisions[k] {
				t.Errorf("drawing %d slot %d: expected %+v, got %+v", i, k, expected[i].Revisions[k], drawings[i].Revisions[k])
			}
		}
	}

	replacement := []entities.Drawing{testhelpers.MustDrawing("N-1", "ISO", "0", "2024-06-01")}
	if err := store.ReplaceDrawings(ctx, replacement); err != nil {
		t.Fatalf("ReplaceDrawings failed: %v", err)
	}
	drawings, _ = store.GetDrawings(ctx)
	if len(drawings) != 1 || len(drawings[0].Revisions) != 1 || drawings[0].Revisions[0].Label != "0" {
		t.Errorf("Expected wholesale replacement, got %+v", drawings)
	}
}

func TestStore_MaterialsAndInstallations(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	if err := store.ReplaceMaterials(ctx, testhelpers.PlantMaterials()); err != nil {
		t.Fatalf("ReplaceMaterials failed: %v", err)
	}
	if err := store.ReplaceInstallations(ctx, testhelpers.PlantInstallations()); err != nil {
		t.Fatalf("ReplaceInstallations failed: %v", err)
	}

	materials, err := store.GetMaterials(ctx)
	if err != nil {
		t.Fatalf("GetMaterials failed: %v", err)
	}
	if len(materials) != 3 || materials[0].IdentCode != "M1" || materials[0].RequiredQty != 150 {
		t.Errorf("Expected plant materials, got %+v", materials)
	}

	installations, err := store.GetInstallations(ctx)
	if err != nil {
		t.Fatalf("GetInstallations failed: %v", err)
	}
	if len(installations) != 4 {
		t.Fatalf("Expected 4 installations, got %d", len(installations))
	}
	if !installations[1].CompletedLength.Equal(decimal.NewFromInt(2)) || installations[1].FieldRevision != "A" {
		t.Errorf("Expected W2 2/A, got %+v", installations[1])
	}
}

func TestStore_LedgerAppendOrder(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	for _, entry := range testhelpers.PlantLedger() {
		if err := store.AppendEntry(ctx, entry); err != nil {
			t.Fatalf("AppendEntry failed: %v", err)
		}
	}

	ledger, err := store.GetLedger(ctx)
	if err != nil {
		t.Fatalf("GetLedger failed: %v", err)
	}
	expected := testhelpers.PlantLedger()
	if len(ledger) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(ledger))
	}
	for i := range expected {
		if ledger[i].Type != expected[i].Type || ledger[i].IdentCode != expected[i].IdentCode ||
			ledger[i].Quantity != expected[i].Quantity || ledger[i].DrawingNumber != expected[i].DrawingNumber {
			t.Errorf("entry %d: expected %+v, got %+v", i, expected[i], ledger[i])
		}
		if !ledger[i].Date.Equal(expected[i].Date) {
			t.Errorf("entry %d: expected date %s, got %s", i, expected[i].Date, ledger[i].Date)
		}
	}
}
