package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/plantrecon/pkg/application/services/reconciliation"
	"github.com/vsinha/plantrecon/pkg/application/services/snapshot"
	"github.com/vsinha/plantrecon/pkg/interfaces/cli/output"
)

// ReconcileConfig holds the options of the reconcile command
type ReconcileConfig struct {
	Category string
	Dedupe   bool
	Verbose  bool
}

// ReconcileCommand builds the three views from the store and prints them
type ReconcileCommand struct {
	env    *Environment
	config ReconcileConfig
}

func NewReconcileCommand(env *Environment, config ReconcileConfig) *ReconcileCommand {
	return &ReconcileCommand{env: env, config: config}
}

// Execute runs the reconcile command
func (c *ReconcileCommand) Execute(ctx context.Context) error {
	start := time.Now()

	snap, err := snapshot.NewService(c.env.Store).Load(ctx)
	if err != nil {
		return fmt.Errorf("error loading snapshot: %w", err)
	}

	result, err := reconciliation.NewService().Reconcile(ctx, snap, reconciliation.Options{
		Category: c.config.Category,
		Dedupe:   c.config.Dedupe,
	})
	if err != nil {
		return fmt.Errorf("error reconciling: %w", err)
	}

	err = output.Generate(result, output.Config{
		Format:    c.env.Config.Output.Format,
		OutputDir: c.env.Config.Output.Dir,
		Verbose:   c.config.Verbose,
		Elapsed:   time.Since(start),
		Out:       c.env.Out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}
