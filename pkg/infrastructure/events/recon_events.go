package events

import (
	"context"
	"log/slog"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

const (
	DrawingsImportedEvent      = "drawings.imported"
	MaterialsImportedEvent     = "materials.imported"
	InstallationsImportedEvent = "installations.imported"

	LedgerReceivedEvent = "ledger.received"
	LedgerIssuedEvent   = "ledger.issued"
)

// Stream identifiers
const (
	MasterStream = "masters"
	LedgerStream = "ledger"
)

// AllEventTypes lists every event type the engine publishes.
var AllEventTypes = []string{
	DrawingsImportedEvent,
	MaterialsImportedEvent,
	InstallationsImportedEvent,
	LedgerReceivedEvent,
	LedgerIssuedEvent,
}

type MastersImported struct {
	Source  entities.Source `json:"source"`
	Rows    int             `json:"rows"`
	Dropped int             `json:"dropped,omitempty"`
}

type LedgerAppended struct {
	Entry entities.LedgerEntry `json:"entry"`
	Stock entities.Quantity    `json:"stock"`
}

// ImportedEventType maps a master table to its import event.
func ImportedEventType(source entities.Source) string {
	switch source {
	case entities.SourceDrawings:
		return DrawingsImportedEvent
	case entities.SourceMaterials:
		return MaterialsImportedEvent
	case entities.SourceInstallations:
		return InstallationsImportedEvent
	}
	return string(source) + ".imported"
}

// LedgerEventType maps a transaction type to its append event.
func LedgerEventType(t entities.TransactionType) string {
	if t == entities.Issue {
		return LedgerIssuedEvent
	}
	return LedgerReceivedEvent
}

// LogHandler writes every event it receives to the context logger.
type LogHandler struct{}

func (LogHandler) CanHandle(string) bool { return true }

func (LogHandler) Handle(ctx context.Context, event Event) error {
	attrs := []slog.Attr{
		slog.String("event", event.Type()),
		slog.String("stream", event.StreamID()),
		slog.Int("version", event.Version()),
	}
	switch data := event.Data().(type) {
	case MastersImported:
		attrs = append(attrs, slog.String("source", string(data.Source)), slog.Int("rows", data.Rows))
		if data.Dropped > 0 {
			attrs = append(attrs, slog.Int("dropped", data.Dropped))
		}
	case LedgerAppended:
		attrs = append(attrs,
			slog.String("ident_code", string(data.Entry.IdentCode)),
			slog.Int64("quantity", int64(data.Entry.Quantity)),
			slog.Int64("stock", int64(data.Stock)),
		)
	}
	logging.Info(ctx, "event recorded", attrs...)
	return nil
}
