package reconcile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	reconciler *StockReconciler
	interval   time.Duration
	log        *zap.Logger
	stopCh     chan struct{}
	doneCh     chan struct{}

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
}

func NewScheduler(reconciler *StockReconciler, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		reconciler: reconciler,
		interval:   interval,
		log:        log,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start запускает сверку остатков в отдельной горутине. Повторный вызов и вызов после Stop ничего не делают.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	select {
	case <-s.stopCh:
		return
	default:
	}
	s.started = true
	s.log.Info("starting stock reconcile scheduler", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop останавливает планировщик и ждёт завершения текущего прохода.
// Безопасен без Start и при повторном вызове.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.log.Info("stopping stock reconcile scheduler")
		s.mu.Lock()
		close(s.stopCh)
		started := s.started
		s.mu.Unlock()
		if !started {
			close(s.doneCh)
		}
	})
	<-s.doneCh
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// сразу при старте
	if _, err := s.reconciler.ReconcileStock(ctx); err != nil {
		s.log.Error("initial stock reconcile failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if _, err := s.reconciler.ReconcileStock(ctx); err != nil {
				s.log.Error("stock reconcile failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("stock reconcile stopped")
			return
		case <-ctx.Done():
			s.log.Info("stock reconcile cancelled")
			return
		}
	}
}
