package journal

import (
	"context"
	"sync"

	"reel_engine/internal/model"
	"reel_engine/internal/repository"
	"reel_engine/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

const defaultQueueSize = 64

type serv struct {
	repo      repository.JournalRepository
	txManager trm.Manager
	log       *zap.Logger

	mtx     sync.Mutex
	queue   chan model.SpinRecord
	closed  bool
	started bool
	dropped int
	done    chan struct{}
}

// Service журнал с фоновой записью
type Service interface {
	service.JournalService
	Start(ctx context.Context)
	Stop()
	Dropped() int
}

// NewJournalService создаёт журнал поверх репозитория.
// Запись и итоги пишутся в одной транзакции txManager
func NewJournalService(
	repo repository.JournalRepository,
	txManager trm.Manager,
	log *zap.Logger,
	queueSize int,
) Service {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		repo:      repo,
		txManager: txManager,
		log:       log,
		queue:     make(chan model.SpinRecord, queueSize),
		done:      make(chan struct{}),
	}
}

// Commit ставит запись в очередь. При переполненной очереди запись теряется
func (s *serv) Commit(rec model.SpinRecord) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- rec:
	default:
		s.dropped++
		s.log.Warn("journal queue is full, record dropped",
			zap.String("spin_id", rec.ID),
			zap.Uint64("generation", rec.Generation),
		)
	}
}

// Start запускает запись очереди в репозиторий
func (s *serv) Start(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true
	go func() {
		defer close(s.done)
		for rec := range s.queue {
			if err := s.write(ctx, rec); err != nil {
				s.log.Error("failed to write journal record",
					zap.String("spin_id", rec.ID),
					zap.Uint64("generation", rec.Generation),
					zap.Error(err),
				)
			}
		}
	}()
}

// Stop закрывает очередь и ждёт, пока оставшиеся записи будут записаны
func (s *serv) Stop() {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	started := s.started
	s.mtx.Unlock()
	if started {
		<-s.done
	}
}

func (s *serv) Dropped() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.dropped
}

func (s *serv) Recent(ctx context.Context, limit int) ([]model.SpinRecord, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *serv) write(ctx context.Context, rec model.SpinRecord) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.Append(txCtx, rec); err != nil {
			return err
		}
		return s.repo.AddTotals(txCtx, rec.Bet, rec.Winnings)
	})
}
