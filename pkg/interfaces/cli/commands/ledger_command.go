package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vsinha/plantrecon/pkg/application/services/ledger"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
)

// LedgerConfig describes one receipt or issue given on the command line
type LedgerConfig struct {
	Type          entities.TransactionType
	IdentCode     string
	Quantity      int64
	DrawingNumber string
	Date          string
	Remark        string
}

// LedgerCommand appends a receipt or issue to the store's ledger
type LedgerCommand struct {
	env    *Environment
	config LedgerConfig
}

func NewLedgerCommand(env *Environment, config LedgerConfig) *LedgerCommand {
	return &LedgerCommand{env: env, config: config}
}

// Execute runs the receive or issue command
func (c *LedgerCommand) Execute(ctx context.Context) error {
	req := ledger.Request{
		IdentCode:     entities.IdentCode(c.config.IdentCode),
		Quantity:      entities.Quantity(c.config.Quantity),
		DrawingNumber: entities.DrawingNumber(c.config.DrawingNumber),
		Remark:        c.config.Remark,
	}
	if d := strings.TrimSpace(c.config.Date); d != "" {
		date, err := time.Parse(entities.LedgerDateLayout, d)
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", d)
		}
		req.Date = date
	}

	svc := ledger.NewService(c.env.Store, c.env.Events)
	var (
		result *ledger.Result
		err    error
	)
	if c.config.Type == entities.Issue {
		result, err = svc.Issue(ctx, req)
	} else {
		result, err = svc.Receive(ctx, req)
	}
	if err != nil {
		return err
	}

	e := result.Entry
	fmt.Fprintf(c.env.Out, "✅ %s %s x%d on %s", e.Type, e.IdentCode, e.Quantity, e.Date.Format(entities.LedgerDateLayout))
	if e.DrawingNumber != "" {
		fmt.Fprintf(c.env.Out, " for %s", e.DrawingNumber)
	}
	fmt.Fprintf(c.env.Out, " (stock now %d)\n", result.Stock)
	return nil
}
