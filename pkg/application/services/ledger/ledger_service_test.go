package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	testhelpers "github.com/vsinha/plantrecon/pkg/application/services/testing"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/events"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/memory"
)

func newTestService(store *memory.Store, publisher events.Publisher) *Service {
	s := NewService(store, publisher)
	s.now = func() time.Time { return time.Date(2024, 5, 6, 15, 4, 5, 0, time.Local) }
	n := 0
	s.newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	return s
}

func TestReceive_AppendsEntry(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := newTestService(store, nil)

	result, err := service.Receive(ctx, Request{IdentCode: " M1 ", Quantity: 100, DrawingNumber: "P-101"})
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	if result.Stock != 100 {
		t.Errorf("Expected stock 100, got %d", result.Stock)
	}
	if result.Entry.ID != "id-1" {
		t.Errorf("Expected generated id id-1, got %s", result.Entry.ID)
	}
	if result.Entry.IdentCode != "M1" {
		t.Errorf("Expected trimmed ident code M1, got %q", result.Entry.IdentCode)
	}
	if result.Entry.DrawingNumber != "" {
		t.Errorf("Expected receipt to drop drawing number, got %s", result.Entry.DrawingNumber)
	}
	if got := result.Entry.Date.Format(entities.LedgerDateLayout); got != "2024-05-06" {
		t.Errorf("Expected date to default to today, got %s", got)
	}

	ledger, _ := store.GetLedger(ctx)
	if len(ledger) != 1 {
		t.Errorf("Expected 1 ledger entry, got %d", len(ledger))
	}
}

func TestIssue_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := newTestService(store, nil)

	if _, err := service.Receive(ctx, Request{IdentCode: "M1", Quantity: 5}); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	_, err := service.Issue(ctx, Request{IdentCode: "M1", Quantity: 10})
	if !errors.Is(err, entities.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}
	var stockErr *entities.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Expected *InsufficientStockError, got %T", err)
	}
	if stockErr.Stock != 5 || stockErr.Requested != 10 {
		t.Errorf("Expected stock 5 requested 10, got %+v", stockErr)
	}

	ledger, _ := store.GetLedger(ctx)
	if len(ledger) != 1 {
		t.Errorf("Expected rejected issue not to be appended, got %d entries", len(ledger))
	}
}

func TestIssue_UnknownCodeHasNoStock(t *testing.T) {
	service := newTestService(memory.NewStore(), nil)

	_, err := service.Issue(context.Background(), Request{IdentCode: "NOPE", Quantity: 1})
	if !errors.Is(err, entities.ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock for unknown code, got %v", err)
	}
}

func TestIssue_ExactStockAllowed(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.BuildPlantStore()
	service := newTestService(store, nil)

	result, err := service.Issue(ctx, Request{IdentCode: "M1", Quantity: 90, DrawingNumber: "P-102"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if result.Stock != 0 {
		t.Errorf("Expected stock 0 after issuing all, got %d", result.Stock)
	}
	if result.Entry.DrawingNumber != "P-102" {
		t.Errorf("Expected issue to keep drawing number, got %q", result.Entry.DrawingNumber)
	}
}

func TestAppend_InvalidRequests(t *testing.T) {
	testCases := []struct {
		name string
		req  Request
	}{
		{"zero quantity", Request{IdentCode: "M1", Quantity: 0}},
		{"negative quantity", Request{IdentCode: "M1", Quantity: -3}},
		{"blank ident", Request{IdentCode: "  ", Quantity: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			_, err := newTestService(store, nil).Receive(context.Background(), tc.req)
			if !errors.Is(err, entities.ErrInvalidEntry) {
				t.Errorf("Expected ErrInvalidEntry, got %v", err)
			}
			ledger, _ := store.GetLedger(context.Background())
			if len(ledger) != 0 {
				t.Errorf("Expected nothing appended, got %d entries", len(ledger))
			}
		})
	}
}

func TestAppend_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	eventStore := events.NewInMemoryEventStore()
	service := newTestService(memory.NewStore(), eventStore)

	_, _ = service.Receive(ctx, Request{IdentCode: "M1", Quantity: 10})
	_, _ = service.Issue(ctx, Request{IdentCode: "M1", Quantity: 4})
	_, _ = service.Issue(ctx, Request{IdentCode: "M1", Quantity: 40})

	recorded, _ := eventStore.ReadEvents(events.LedgerStream, 1)
	if len(recorded) != 2 {
		t.Fatalf("Expected 2 events (rejected issue not published), got %d", len(recorded))
	}
	if recorded[0].Type() != events.LedgerReceivedEvent || recorded[1].Type() != events.LedgerIssuedEvent {
		t.Errorf("Expected received then issued, got %s then %s", recorded[0].Type(), recorded[1].Type())
	}
	data, ok := recorded[1].Data().(events.LedgerAppended)
	if !ok {
		t.Fatalf("Expected LedgerAppended payload, got %T", recorded[1].Data())
	}
	if data.Stock != 6 {
		t.Errorf("Expected stock 6 after issue, got %d", data.Stock)
	}
}

func TestIssue_ConcurrentIssuesNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store, nil)

	if _, err := service.Receive(ctx, Request{IdentCode: "M1", Quantity: 10}); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	errCh := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_, err := service.Issue(ctx, Request{IdentCode: "M1", Quantity: 1})
			errCh <- err
		}()
	}

	accepted := 0
	for i := 0; i < 20; i++ {
		if err := <-errCh; err == nil {
			accepted++
		} else if !errors.Is(err, entities.ErrInsufficientStock) {
			t.Errorf("Expected only stock rejections, got %v", err)
		}
	}
	if accepted != 10 {
		t.Errorf("Expected exactly 10 accepted issues, got %d", accepted)
	}
}
