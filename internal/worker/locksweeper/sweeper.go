// Package locksweeper periodically removes expired temporary locks.
// Expired locks are already ignored by every read, so the sweeper only keeps the table small.
package locksweeper

import (
	"context"
	"sync"
	"time"
)

// LockRepository удаление истекших блокировок
type LockRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Metrics учёт удаленных блокировок
type Metrics interface {
	RecordSweep(removed int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновая очистка temporary_locks
type Sweeper struct {
	repo     LockRepository
	metrics  Metrics
	interval time.Duration
	now      func() time.Time
	logger   Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New создает очиститель с заданным интервалом
func New(repo LockRepository, metrics Metrics, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		metrics:  metrics,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает очистку в отдельной горутине
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("LockSweeper: started, interval=%s", s.interval)
	go s.run(ctx)
}

// Stop останавливает очистку и ждёт завершения текущего прохода
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.stopCh:
			s.logger.Info("LockSweeper: stopped")
			return
		case <-ctx.Done():
			s.logger.Info("LockSweeper: context cancelled")
			return
		}
	}
}

// Sweep выполняет один проход очистки
func (s *Sweeper) Sweep(ctx context.Context) {
	removed, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("LockSweeper: failed to delete expired locks: %v", err)
		return
	}
	s.metrics.RecordSweep(removed)
	if removed > 0 {
		s.logger.Info("LockSweeper: removed %d expired lock(s)", removed)
	}
}
