package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	meta := MetadataFor(CodeInsufficientStock)
	if meta.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409 for insufficient stock, got %d", meta.HTTPStatus)
	}
	if !meta.DetailsAllowed {
		t.Fatal("insufficient stock errors must carry details for the caller")
	}

	meta = MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(CodeDependency, cause, "load order")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped error to unwrap to cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAs(t *testing.T) {
	base := New(CodeNotFound, "order not found")
	wrapped := fmt.Errorf("handler: %w", base)

	typed := As(wrapped)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
	if As(errors.New("plain")) != nil {
		t.Fatal("plain errors must not coerce")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeInsufficientStock, `insufficient stock for "Blue Mug"`).
		WithDetails(map[string]any{"available": 2, "requested": 5})
	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details())
	}
	if details["available"] != 2 {
		t.Fatalf("unexpected details: %v", details)
	}
}
