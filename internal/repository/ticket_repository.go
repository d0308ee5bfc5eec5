package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

// TicketRecordRepository stores the authoritative per-ticket state, keyed by
// channel ID. The store is in-memory only: after a restart, records are
// rebuilt lazily from the channel topics (domain.RecordFromTopic).
type TicketRecordRepository interface {
	Put(ctx context.Context, record domain.TicketRecord) error
	Get(ctx context.Context, channelID string) (domain.TicketRecord, bool)
	Delete(ctx context.Context, channelID string)
	List(ctx context.Context) []domain.TicketRecord
}

type ticketRecordRepository struct {
	mu      sync.RWMutex
	records map[string]domain.TicketRecord
}

// NewTicketRecordRepository instantiates the in-memory store.
func NewTicketRecordRepository() TicketRecordRepository {
	return &ticketRecordRepository{
		records: make(map[string]domain.TicketRecord),
	}
}

func (r *ticketRecordRepository) Put(ctx context.Context, record domain.TicketRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ChannelID] = record
	return nil
}

func (r *ticketRecordRepository) Get(ctx context.Context, channelID string) (domain.TicketRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[channelID]
	return record, ok
}

func (r *ticketRecordRepository) Delete(ctx context.Context, channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, channelID)
}

func (r *ticketRecordRepository) List(ctx context.Context) []domain.TicketRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]domain.TicketRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	return records
}
