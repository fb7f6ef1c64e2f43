package importer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	testhelpers "github.com/vsinha/plantrecon/pkg/application/services/testing"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/events"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/memory"
)

func TestImportDrawings_DuplicatesBlockWithoutConfirmation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store, nil)

	_, err := service.ImportDrawings(ctx, testhelpers.PlantDrawings(), false)
	if !errors.Is(err, entities.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	var dupErr *entities.DuplicateKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("Expected *DuplicateKeyError, got %T", err)
	}
	if !reflect.DeepEqual(dupErr.Keys, []entities.DrawingNumber{"P-101"}) || dupErr.Dropped != 1 {
		t.Errorf("Expected keys [P-101] dropped 1, got %v dropped %d", dupErr.Keys, dupErr.Dropped)
	}

	if _, err := store.GetDrawings(ctx); !errors.Is(err, entities.ErrMissingSource) {
		t.Errorf("Expected store to stay untouched, got %v", err)
	}
}

func TestImportDrawings_ConfirmedDedupeKeepsFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store, nil)

	result, err := service.ImportDrawings(ctx, testhelpers.PlantDrawings(), true)
	if err != nil {
		t.Fatalf("ImportDrawings failed: %v", err)
	}
	if result.Rows != 5 || result.Dropped != 1 {
		t.Errorf("Expected 5 rows 1 dropped, got %d rows %d dropped", result.Rows, result.Dropped)
	}

	stored, _ := store.GetDrawings(ctx)
	if len(stored) != 5 {
		t.Fatalf("Expected 5 stored drawings, got %d", len(stored))
	}
	if stored[0].Revisions[1].Label != "B" {
		t.Errorf("Expected first P-101 to be kept, got %+v", stored[0].Revisions)
	}
}

func TestImportDrawings_ReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.BuildPlantStore()
	service := NewService(store, nil)

	replacement := []entities.Drawing{testhelpers.MustDrawing("N-1", "ISO", "0", "2024-06-01")}
	if _, err := service.ImportDrawings(ctx, replacement, false); err != nil {
		t.Fatalf("ImportDrawings failed: %v", err)
	}

	stored, _ := store.GetDrawings(ctx)
	if len(stored) != 1 || stored[0].Number != "N-1" {
		t.Errorf("Expected register to be replaced by N-1, got %v", stored)
	}
}

func TestImportMastersPublishEvents(t *testing.T) {
	ctx := context.Background()
	eventStore := events.NewInMemoryEventStore()
	service := NewService(memory.NewStore(), eventStore)

	if _, err := service.ImportMaterials(ctx, testhelpers.PlantMaterials()); err != nil {
		t.Fatalf("ImportMaterials failed: %v", err)
	}
	if _, err := service.ImportInstallations(ctx, testhelpers.PlantInstallations()); err != nil {
		t.Fatalf("ImportInstallations failed: %v", err)
	}
	if _, err := service.ImportDrawings(ctx, testhelpers.PlantDrawings(), true); err != nil {
		t.Fatalf("ImportDrawings failed: %v", err)
	}

	recorded, _ := eventStore.ReadEvents(events.MasterStream, 1)
	expected := []string{events.MaterialsImportedEvent, events.InstallationsImportedEvent, events.DrawingsImportedEvent}
	if len(recorded) != len(expected) {
		t.Fatalf("Expected %d events, got %d", len(expected), len(recorded))
	}
	for i, want := range expected {
		if recorded[i].Type() != want {
			t.Errorf("event %d: expected %s, got %s", i, want, recorded[i].Type())
		}
	}
	if data := recorded[2].Data().(events.MastersImported); data.Dropped != 1 {
		t.Errorf("Expected drawings event to report 1 dropped row, got %d", data.Dropped)
	}
}

func TestCheckDrawings_NoDuplicates(t *testing.T) {
	drawings := []entities.Drawing{
		testhelpers.MustDrawing("A-1", "ISO"),
		testhelpers.MustDrawing("A-2", "ISO"),
	}
	if err := CheckDrawings(drawings); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
