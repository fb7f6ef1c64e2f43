package errs

import (
	"errors"
	"log/slog"
	"testing"
)

var errRoot = errors.New("root cause")

func TestWrapPreservesChain(t *testing.T) {
	wrapped := Wrapf(Wrap(errRoot, "load ledger"), "open %s", "ledger.csv")

	if !errors.Is(wrapped, errRoot) {
		t.Fatalf("Expected wrapped error to match root cause")
	}
	if wrapped.Error() != "open ledger.csv: load ledger: root cause" {
		t.Errorf("Unexpected message: %q", wrapped.Error())
	}

	chain := Chain(wrapped)
	if len(chain) != 3 {
		t.Fatalf("Expected chain of 3, got %d: %v", len(chain), chain)
	}
	if chain[2] != "root cause" {
		t.Errorf("Expected innermost 'root cause', got %q", chain[2])
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "noop") != nil {
		t.Error("Expected Wrap(nil) to be nil")
	}
	if Wrapf(nil, "noop %d", 1) != nil {
		t.Error("Expected Wrapf(nil) to be nil")
	}
}

func TestLoggable(t *testing.T) {
	v := Loggable(Wrap(errRoot, "ctx")).LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("Expected group value, got %v", v.Kind())
	}
	if len(v.Group()) != 2 {
		t.Errorf("Expected 2 attrs, got %d", len(v.Group()))
	}

	if len(Loggable(nil).LogValue().Group()) != 0 {
		t.Error("Expected empty group for nil error")
	}
}
