package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/persistence"
)

// CounterRepository issues sequential ticket numbers. Values are strictly
// increasing per type and never reused within a process.
type CounterRepository interface {
	Next(ctx context.Context, t domain.TicketType) (int, error)
	Snapshot(ctx context.Context) (map[domain.TicketType]int, error)
}

type fileCounterRepository struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
	counts map[string]int
}

// NewFileCounterRepository loads the counter file (or zero-initializes when
// it is missing or corrupt) and persists every increment back to it.
func NewFileCounterRepository(path string, logger *zap.Logger) CounterRepository {
	repo := &fileCounterRepository{
		path:   path,
		logger: logger,
		counts: persistence.LoadCounters(path, logger),
	}
	for _, t := range domain.TicketTypes() {
		if _, ok := repo.counts[string(t)]; !ok {
			repo.counts[string(t)] = 0
		}
	}
	return repo
}

func (r *fileCounterRepository) Next(ctx context.Context, t domain.TicketType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[string(t)]++
	next := r.counts[string(t)]

	// A failed write loses at most the durability of this increment; the
	// in-memory value is still handed out exactly once.
	if err := persistence.SaveCounters(r.path, r.counts); err != nil {
		r.logger.Warn("failed to persist counters", zap.String("path", r.path), zap.Error(err))
	}
	return next, nil
}

func (r *fileCounterRepository) Snapshot(ctx context.Context) (map[domain.TicketType]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[domain.TicketType]int, len(r.counts))
	for name, value := range r.counts {
		snapshot[domain.TicketType(name)] = value
	}
	return snapshot, nil
}
