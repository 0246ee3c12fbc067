package memory_journal_repo

import (
	"context"
	"sync"

	"reel_engine/internal/model"
	"reel_engine/internal/repository"
)

// defaultCapacity сколько записей хранится в памяти
const defaultCapacity = 1000

// Журнал в памяти, используется без PG_DSN
type repo struct {
	mtx      sync.RWMutex
	records  []model.SpinRecord
	capacity int

	spins       int
	totalBet    int
	totalPayout int
}

func NewJournalRepository(capacity int) repository.JournalRepository {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &repo{capacity: capacity}
}

func (r *repo) Append(_ context.Context, rec model.SpinRecord) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.records = append(r.records, rec)
	if len(r.records) > r.capacity {
		r.records = r.records[len(r.records)-r.capacity:]
	}
	return nil
}

func (r *repo) AddTotals(_ context.Context, bet, payout int) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.spins++
	r.totalBet += bet
	r.totalPayout += payout
	return nil
}

// Recent - последние limit записей, новые первыми
func (r *repo) Recent(_ context.Context, limit int) ([]model.SpinRecord, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if limit > len(r.records) {
		limit = len(r.records)
	}
	if limit <= 0 {
		return []model.SpinRecord{}, nil
	}
	out := make([]model.SpinRecord, 0, limit)
	for i := len(r.records) - 1; i >= len(r.records)-limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
