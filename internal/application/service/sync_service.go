package service

import (
	"context"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"go.uber.org/zap"
)

// ConnectivityEvents is a Connectivity that also publishes transitions
type ConnectivityEvents interface {
	Connectivity
	Subscribe() <-chan bool
}

// SyncService is the only place that retries remote writes. It drains
// every queue when the connection comes back and on a timer while
// anything is pending.
type SyncService struct {
	receipts *ReceiptService
	rooms    *RoomService
	bills    *BillService
	menu     *MenuService
	state    repository.SyncStateStore
	conn     ConnectivityEvents
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSyncService creates a new sync service
func NewSyncService(
	receipts *ReceiptService,
	rooms *RoomService,
	bills *BillService,
	menu *MenuService,
	state repository.SyncStateStore,
	conn ConnectivityEvents,
	interval time.Duration,
	logger *zap.Logger,
) *SyncService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SyncService{
		receipts: receipts,
		rooms:    rooms,
		bills:    bills,
		menu:     menu,
		state:    state,
		conn:     conn,
		interval: interval,
		logger:   logger.With(zap.String("service", "sync")),
		now:      time.Now,
	}
}

func (s *SyncService) queues() []*SyncQueue {
	return []*SyncQueue{s.receipts.Queue(), s.rooms.Queue(), s.bills.Queue()}
}

// SyncAll drains the receipts, rooms and bills queues in that order
func (s *SyncService) SyncAll(ctx context.Context) (entity.SyncResult, error) {
	var total entity.SyncResult
	if !s.conn.IsOnline() {
		return total, nil
	}

	for _, q := range s.queues() {
		result, err := q.Drain(ctx)
		total.Add(result)
		if err != nil {
			return total, err
		}
	}

	if total.Failed == 0 {
		if err := s.state.SetLastSync(ctx, s.now().UnixMilli()); err != nil {
			return total, err
		}
	}
	return total, nil
}

// Status reports aggregate sync state; individual failures are not exposed
func (s *SyncService) Status(ctx context.Context) (*entity.SyncStatus, error) {
	pendingReceipts, err := s.receipts.PendingCount(ctx)
	if err != nil {
		return nil, err
	}
	pendingRooms, err := s.rooms.PendingCount(ctx)
	if err != nil {
		return nil, err
	}
	pendingBills, err := s.bills.PendingCount(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.state.LastSync(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.SyncStatus{
		Online:          s.conn.IsOnline(),
		PendingReceipts: pendingReceipts,
		PendingRooms:    pendingRooms,
		PendingBills:    pendingBills,
		LastSyncAt:      last,
	}, nil
}

// Reconcile requeues records left unsynced outside their queue
func (s *SyncService) Reconcile(ctx context.Context) error {
	for _, q := range s.queues() {
		if _, err := q.Reconcile(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncService) pending(ctx context.Context) (int, error) {
	total := 0
	for _, q := range s.queues() {
		n, err := q.Len(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Run blocks until ctx is done
func (s *SyncService) Run(ctx context.Context) {
	if err := s.Reconcile(ctx); err != nil {
		s.logger.Error("reconcile queues failed", zap.Error(err))
	}

	events := s.conn.Subscribe()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case online := <-events:
			if online {
				s.onReconnect(ctx)
			}
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *SyncService) onReconnect(ctx context.Context) {
	result, err := s.SyncAll(ctx)
	if err != nil {
		s.logger.Error("sync after reconnect failed", zap.Error(err))
	} else {
		s.logger.Info("synced after reconnect", zap.Int("success", result.Success), zap.Int("failed", result.Failed))
	}
	if _, err := s.receipts.PullRemote(ctx); err != nil {
		s.logger.Error("pull receipts failed", zap.Error(err))
	}
	if _, err := s.menu.Refresh(ctx); err != nil {
		s.logger.Error("refresh menu failed", zap.Error(err))
	}
}

func (s *SyncService) tick(ctx context.Context) {
	if !s.conn.IsOnline() {
		return
	}
	n, err := s.pending(ctx)
	if err != nil {
		s.logger.Error("read queues failed", zap.Error(err))
		return
	}
	if n == 0 {
		return
	}
	if _, err := s.SyncAll(ctx); err != nil {
		s.logger.Error("periodic sync failed", zap.Error(err))
	}
}
