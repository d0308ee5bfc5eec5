package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/events"
	"github.com/spec-kit/ticket-bot/internal/observability"
)

// NotificationService turns lifecycle events into logs and metrics.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketClaimed, n.handleTicketClaimed)
	n.dispatcher.Subscribe(events.EventTicketClosed, n.handleTicketClosed)
	n.dispatcher.Subscribe(events.EventTranscriptSaved, n.handleTranscriptSaved)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", n.fields(event)...)
	if n.metrics != nil {
		n.metrics.TicketsOpened.WithLabelValues(string(event.Ticket)).Inc()
	}
	return nil
}

func (n *NotificationService) handleTicketClaimed(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketClaimed", n.fields(event)...)
	if n.metrics != nil {
		n.metrics.TicketsClaimed.WithLabelValues(string(event.Ticket)).Inc()
	}
	return nil
}

func (n *NotificationService) handleTicketClosed(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketClosed", n.fields(event)...)
	if n.metrics != nil {
		n.metrics.TicketsClosed.WithLabelValues(string(event.Ticket)).Inc()
	}
	return nil
}

func (n *NotificationService) handleTranscriptSaved(ctx context.Context, event events.Event) error {
	n.logger.Info("TranscriptSaved", n.fields(event)...)
	if n.metrics != nil {
		n.metrics.TranscriptsSaved.Inc()
	}
	return nil
}

func (n *NotificationService) fields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("channel_id", event.ChannelID),
		zap.String("ticket_type", string(event.Ticket)),
		zap.Int("number", event.Number),
		zap.String("actor_id", event.ActorID),
	}
}
