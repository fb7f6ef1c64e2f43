package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vsinha/plantrecon/pkg/application/services/importer"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/tabular"
)

// ImportConfig names the master files to load. Any of them may be empty.
type ImportConfig struct {
	DrawingsFile      string
	MaterialsFile     string
	InstallationsFile string
	ConfirmDedupe     bool
}

// ImportCommand replaces master tables in the store from csv or xlsx files
type ImportCommand struct {
	env    *Environment
	config ImportConfig
}

func NewImportCommand(env *Environment, config ImportConfig) *ImportCommand {
	return &ImportCommand{env: env, config: config}
}

// Execute runs the import command. Every file is parsed before anything is
// written so a bad file leaves the store untouched.
func (c *ImportCommand) Execute(ctx context.Context) error {
	if c.config.DrawingsFile == "" && c.config.MaterialsFile == "" && c.config.InstallationsFile == "" {
		return fmt.Errorf("validation error: at least one of -drawings, -materials or -installations is required")
	}

	var (
		drawings      []entities.Drawing
		materials     []entities.MaterialItem
		installations []entities.InstallationRecord
	)
	if path := c.config.DrawingsFile; path != "" {
		records, err := csv.ReadTable(path)
		if err != nil {
			return fmt.Errorf("error loading drawings: %w", err)
		}
		if drawings, err = tabular.ParseDrawings(records); err != nil {
			return fmt.Errorf("error loading drawings: %w", err)
		}
		if !c.config.ConfirmDedupe {
			if err := importer.CheckDrawings(drawings); err != nil {
				c.warnDuplicates(err)
				return err
			}
		}
	}
	if path := c.config.MaterialsFile; path != "" {
		records, err := csv.ReadTable(path)
		if err != nil {
			return fmt.Errorf("error loading materials: %w", err)
		}
		if materials, err = tabular.ParseMaterials(records); err != nil {
			return fmt.Errorf("error loading materials: %w", err)
		}
	}
	if path := c.config.InstallationsFile; path != "" {
		records, err := csv.ReadTable(path)
		if err != nil {
			return fmt.Errorf("error loading installations: %w", err)
		}
		if installations, err = tabular.ParseInstallations(records); err != nil {
			return fmt.Errorf("error loading installations: %w", err)
		}
	}

	svc := importer.NewService(c.env.Store, c.env.Events)
	var results []*importer.Result

	if c.config.DrawingsFile != "" {
		res, err := svc.ImportDrawings(ctx, drawings, c.config.ConfirmDedupe)
		if err != nil {
			return fmt.Errorf("error importing drawings: %w", err)
		}
		results = append(results, res)
	}
	if c.config.MaterialsFile != "" {
		res, err := svc.ImportMaterials(ctx, materials)
		if err != nil {
			return fmt.Errorf("error importing materials: %w", err)
		}
		results = append(results, res)
	}
	if c.config.InstallationsFile != "" {
		res, err := svc.ImportInstallations(ctx, installations)
		if err != nil {
			return fmt.Errorf("error importing installations: %w", err)
		}
		results = append(results, res)
	}

	for _, res := range results {
		fmt.Fprintf(c.env.Out, "✅ %s: %d rows imported", res.Source, res.Rows)
		if res.Dropped > 0 {
			fmt.Fprintf(c.env.Out, " (%d duplicate rows dropped)", res.Dropped)
		}
		fmt.Fprintln(c.env.Out)
	}
	return nil
}

func (c *ImportCommand) warnDuplicates(err error) {
	var dupErr *entities.DuplicateKeyError
	if !errors.As(err, &dupErr) {
		return
	}
	keys := make([]string, len(dupErr.Keys))
	for i, k := range dupErr.Keys {
		keys[i] = string(k)
	}
	fmt.Fprintf(c.env.Out, "⚠️  %d drawing number(s) appear more than once: %s\n", len(keys), strings.Join(keys, ", "))
	fmt.Fprintf(c.env.Out, "   Re-run with -confirm-dedupe to keep the first row of each (%d row(s) dropped).\n", dupErr.Dropped)
}
