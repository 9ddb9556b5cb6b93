package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type recordingDispatcher struct {
	confirmations chan OrderConfirmation
	statusChanges chan StatusChange
	err           error
	panics        bool
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{
		confirmations: make(chan OrderConfirmation, 4),
		statusChanges: make(chan StatusChange, 4),
	}
}

func (d *recordingDispatcher) SendOrderConfirmation(_ context.Context, payload OrderConfirmation) error {
	if d.panics {
		panic("dispatcher exploded")
	}
	d.confirmations <- payload
	return d.err
}

func (d *recordingDispatcher) SendStatusChange(_ context.Context, payload StatusChange) error {
	if d.panics {
		panic("dispatcher exploded")
	}
	d.statusChanges <- payload
	return d.err
}

func TestNotifierDispatchesConfirmation(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	notifier, err := NewNotifier(dispatcher, nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	payload := OrderConfirmation{
		OrderID:       uuid.New(),
		CustomerEmail: "buyer@example.com",
		Total:         decimal.NewFromInt(30),
	}
	notifier.OrderConfirmation(context.Background(), payload)

	select {
	case got := <-dispatcher.confirmations:
		if got.OrderID != payload.OrderID {
			t.Fatalf("wrong payload dispatched: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation never dispatched")
	}
}

func TestNotifierSurvivesDispatcherFailure(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	dispatcher.err = errors.New("smtp down")
	notifier, err := NewNotifier(dispatcher, nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	// Must not panic or block even though delivery fails.
	notifier.OrderStatusChange(context.Background(), StatusChange{OrderID: uuid.New()})

	select {
	case <-dispatcher.statusChanges:
	case <-time.After(2 * time.Second):
		t.Fatal("status change never attempted")
	}
}

func TestNotifierSurvivesDispatcherPanic(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	dispatcher.panics = true
	notifier, err := NewNotifier(dispatcher, nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	notifier.OrderConfirmation(context.Background(), OrderConfirmation{OrderID: uuid.New()})
	// Give the goroutine a moment; the test passes if the process survives.
	time.Sleep(50 * time.Millisecond)
}

func TestNotifierRequiresDispatcher(t *testing.T) {
	if _, err := NewNotifier(nil, nil); err == nil {
		t.Fatal("expected error for nil dispatcher")
	}
}
