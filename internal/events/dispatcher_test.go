package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var seen []Event
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})

	event := Event{Type: EventTicketCreated, ChannelID: "chan-1", Ticket: domain.TicketTypeGeneral, Number: 1}
	if err := dispatcher.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(seen) != 1 || seen[0].ChannelID != "chan-1" {
		t.Fatalf("expected one delivered event, got %+v", seen)
	}

	// a different event type does not reach the subscriber
	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketClosed}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected no delivery for other event types, got %d", len(seen))
	}
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	dispatcher.Subscribe(EventTicketClaimed, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	called := false
	dispatcher.Subscribe(EventTicketClaimed, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketClaimed}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !called {
		t.Fatal("expected second handler to run despite first handler error")
	}
}
