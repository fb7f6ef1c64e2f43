package testing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/memory"
)

// MustDrawing is a helper for tests - panics on validation error.
// revisions alternates label and date, oldest first.
func MustDrawing(number, category string, revisions ...string) entities.Drawing {
	var slots []entities.RevisionSlot
	for i := 0; i+1 < len(revisions); i += 2 {
		slots = append(slots, entities.RevisionSlot{Label: revisions[i], Date: revisions[i+1]})
	}
	drawing, err := entities.NewDrawing(
		entities.DrawingNumber(number),
		category,
		"U100",
		"CW",
		"Title of "+number,
		false,
		"IFC",
		slots,
		"",
	)
	if err != nil {
		panic(err)
	}
	return *drawing
}

// MustMaterial is a helper for tests - panics on validation error
func MustMaterial(code string, required entities.Quantity) entities.MaterialItem {
	item, err := entities.NewMaterialItem(entities.IdentCode(code), "Material "+code, "2\"", "EA", required)
	if err != nil {
		panic(err)
	}
	return *item
}

// MustEntry is a helper for tests - panics on validation error
func MustEntry(txType entities.TransactionType, code string, qty entities.Quantity, drawing string) entities.LedgerEntry {
	entry, err := entities.NewLedgerEntry(
		"",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		txType,
		entities.IdentCode(code),
		qty,
		entities.DrawingNumber(drawing),
		"",
	)
	if err != nil {
		panic(err)
	}
	return *entry
}

// MustInstallation is a helper for tests - panics on validation error
func MustInstallation(drawing, joint, nominal, completed, fieldRevision string) entities.InstallationRecord {
	rec, err := entities.NewInstallationRecord(
		entities.DrawingNumber(drawing),
		joint,
		decimal.RequireFromString(nominal),
		decimal.RequireFromString(completed),
		fieldRevision,
	)
	if err != nil {
		panic(err)
	}
	return *rec
}

// PlantDrawings is a small drawing register with one duplicate number
func PlantDrawings() []entities.Drawing {
	return []entities.Drawing{
		MustDrawing("P-101", "ISO", "A", "2024-01-01", "B", "2024-03-01", "", ""),
		MustDrawing("P-102", "ISO", "0", "2024-02-10"),
		MustDrawing("S-201", "Support", "A", "2024-01-15", "B", "2024-02-15", "C", "2024-04-01"),
		MustDrawing("V-301", "Valve"),
		MustDrawing("X-401", ""),
		MustDrawing("P-101", "ISO", "Z", "2025-01-01"),
	}
}

// PlantMaterials is a requirement table matching PlantLedger
func PlantMaterials() []entities.MaterialItem {
	return []entities.MaterialItem{
		MustMaterial("M1", 150),
		MustMaterial("M2", 10),
		MustMaterial("M3", 5),
	}
}

// PlantLedger receives and issues M1 and M2 and touches an unknown code
func PlantLedger() []entities.LedgerEntry {
	return []entities.LedgerEntry{
		MustEntry(entities.Receipt, "M1", 100, ""),
		MustEntry(entities.Issue, "M1", 30, "P-101"),
		MustEntry(entities.Receipt, "M1", 20, ""),
		MustEntry(entities.Receipt, "M2", 12, ""),
		MustEntry(entities.Issue, "M2", 12, "S-201"),
		MustEntry(entities.Receipt, "M9", 4, ""),
	}
}

// PlantInstallations covers a match, a mismatch and an unknown drawing
func PlantInstallations() []entities.InstallationRecord {
	return []entities.InstallationRecord{
		MustInstallation("P-101", "W1", "4", "4", "B"),
		MustInstallation("P-101", "W2", "4", "2", "A"),
		MustInstallation("S-201", "S1", "2", "0", "C"),
		MustInstallation("P-999", "W9", "2", "1", "A"),
	}
}

// BuildPlantStore loads the plant fixtures into an in-memory store
func BuildPlantStore() *memory.Store {
	ctx := context.Background()
	store := memory.NewStore()

	if err := store.ReplaceDrawings(ctx, PlantDrawings()); err != nil {
		panic(err)
	}
	if err := store.ReplaceMaterials(ctx, PlantMaterials()); err != nil {
		panic(err)
	}
	for _, entry := range PlantLedger() {
		if err := store.AppendEntry(ctx, entry); err != nil {
			panic(err)
		}
	}
	if err := store.ReplaceInstallations(ctx, PlantInstallations()); err != nil {
		panic(err)
	}
	return store
}
