package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/domain/repositories"
	"github.com/vsinha/plantrecon/pkg/domain/services"
	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/events"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

// Request describes one receipt or issue. A zero Date means today.
type Request struct {
	Date          time.Time
	IdentCode     entities.IdentCode
	Quantity      entities.Quantity
	DrawingNumber entities.DrawingNumber
	Remark        string
}

// Result is the appended entry and the stock it leaves behind
type Result struct {
	Entry entities.LedgerEntry `json:"entry"`
	Stock entities.Quantity    `json:"stock"`
}

// Service appends receipts and issues to the ledger. Appends made through one
// Service are serialized so the stock check and the append see the same
// ledger.
type Service struct {
	mu        sync.Mutex
	ledger    repositories.LedgerRepository
	publisher events.Publisher
	now       func() time.Time
	newID     func() string
}

// NewService creates a ledger service. A nil publisher discards events.
func NewService(ledger repositories.LedgerRepository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		ledger:    ledger,
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Receive records an IN entry.
func (s *Service) Receive(ctx context.Context, req Request) (*Result, error) {
	return s.append(ctx, entities.Receipt, req)
}

// Issue records an OUT entry. It fails with an InsufficientStockError when
// the current stock of the ident code is below the requested quantity.
func (s *Service) Issue(ctx context.Context, req Request) (*Result, error) {
	return s.append(ctx, entities.Issue, req)
}

func (s *Service) append(ctx context.Context, txType entities.TransactionType, req Request) (*Result, error) {
	date := req.Date
	if date.IsZero() {
		y, m, d := s.now().Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	entry, err := entities.NewLedgerEntry(s.newID(), date, txType, req.IdentCode, req.Quantity, req.DrawingNumber, req.Remark)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.ledger.GetLedger(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "read ledger")
	}

	if entry.Type == entities.Issue {
		if err := services.CheckIssue(current, entry.IdentCode, entry.Quantity); err != nil {
			logging.Warn(ctx, "issue rejected",
				slog.String("ident_code", string(entry.IdentCode)),
				slog.Int64("quantity", int64(entry.Quantity)),
				slog.Any("err", errs.Loggable(err)),
			)
			return nil, err
		}
	}

	if err := s.ledger.AppendEntry(ctx, *entry); err != nil {
		return nil, errs.Wrap(err, "append ledger entry")
	}

	stock := services.AggregateLedger(append(current, *entry))[entry.IdentCode].Stock()
	result := &Result{Entry: *entry, Stock: stock}

	event := events.NewEvent(events.LedgerEventType(entry.Type), events.LedgerStream, events.LedgerAppended{
		Entry: result.Entry,
		Stock: stock,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		logging.Warn(ctx, "ledger event not published", slog.Any("err", errs.Loggable(err)))
	}

	return result, nil
}
