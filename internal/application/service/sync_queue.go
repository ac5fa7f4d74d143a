package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"go.uber.org/zap"
)

// Connectivity reports whether the cloud database is currently reachable
type Connectivity interface {
	IsOnline() bool
}

// SyncTarget is the entity-specific half of the write-through loop
type SyncTarget interface {
	// Pending reports whether id is still cached locally and whether it is unsynced
	Pending(ctx context.Context, id string) (exists bool, unsynced bool, err error)
	// Push writes the current local state of id to the remote store
	Push(ctx context.Context, id string) error
	// SetSynced updates the cached synced flag of id
	SetSynced(ctx context.Context, id string, synced bool) error
	// UnsyncedIDs lists every cached record still flagged unsynced
	UnsyncedIDs(ctx context.Context) ([]string, error)
}

// SyncQueue tracks ids whose latest local state has not been confirmed
// remotely. Queue membership is the source of truth; the entity's synced
// flag mirrors it.
type SyncQueue struct {
	name   string
	store  repository.SyncQueueStore
	target SyncTarget
	conn   Connectivity
	logger *zap.Logger

	mu      sync.Mutex
	drainMu sync.Mutex
}

// NewSyncQueue creates a queue for one entity type
func NewSyncQueue(name string, store repository.SyncQueueStore, target SyncTarget, conn Connectivity, logger *zap.Logger) *SyncQueue {
	return &SyncQueue{
		name:   name,
		store:  store,
		target: target,
		conn:   conn,
		logger: logger.With(zap.String("queue", name)),
	}
}

// Name identifies the entity type the queue serves
func (q *SyncQueue) Name() string {
	return q.name
}

// Enqueue adds id; a no-op when already queued
func (q *SyncQueue) Enqueue(ctx context.Context, id string) error {
	return q.EnqueueMany(ctx, []string{id})
}

// EnqueueMany adds every id not yet queued
func (q *SyncQueue) EnqueueMany(ctx context.Context, ids []string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	queued, err := q.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s queue: %w", q.name, err)
	}
	seen := make(map[string]struct{}, len(queued))
	for _, id := range queued {
		seen[id] = struct{}{}
	}
	changed := false
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		queued = append(queued, id)
		changed = true
	}
	if !changed {
		return nil
	}
	return q.store.Save(ctx, queued)
}

// Dequeue removes id; a no-op when not queued
func (q *SyncQueue) Dequeue(ctx context.Context, id string) error {
	return q.DequeueMany(ctx, []string{id})
}

// DequeueMany removes every listed id
func (q *SyncQueue) DequeueMany(ctx context.Context, ids []string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	queued, err := q.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s queue: %w", q.name, err)
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := queued[:0]
	for _, id := range queued {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(queued) {
		return nil
	}
	return q.store.Save(ctx, kept)
}

// IDs returns a snapshot of the queued ids in insertion order
func (q *SyncQueue) IDs(ctx context.Context) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids, err := q.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s queue: %w", q.name, err)
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// Contains reports whether id is queued
func (q *SyncQueue) Contains(ctx context.Context, id string) (bool, error) {
	ids, err := q.IDs(ctx)
	if err != nil {
		return false, err
	}
	for _, queued := range ids {
		if queued == id {
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of queued ids
func (q *SyncQueue) Len(ctx context.Context) (int, error) {
	ids, err := q.IDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Submit is the write-through step run right after a local write: one
// immediate remote attempt, then either synced+dequeued or queued. Remote
// failures are logged, never returned; the returned error is local only.
func (q *SyncQueue) Submit(ctx context.Context, id string) (bool, error) {
	if !q.conn.IsOnline() {
		q.logger.Debug("offline, queued", zap.String("id", id))
		return false, q.markPending(ctx, id)
	}

	if err := q.target.Push(ctx, id); err != nil {
		q.logger.Warn("remote write failed, queued", zap.String("id", id), zap.Error(err))
		return false, q.markPending(ctx, id)
	}
	return true, q.markSynced(ctx, id)
}

// MarkPending flags id unsynced and queues it, for records whose remote
// copy is known to be stale.
func (q *SyncQueue) MarkPending(ctx context.Context, id string) error {
	return q.markPending(ctx, id)
}

// MarkSynced records that ids were written remotely by a batch call
func (q *SyncQueue) MarkSynced(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := q.target.SetSynced(ctx, id, true); err != nil {
			return err
		}
	}
	return q.DequeueMany(ctx, ids)
}

func (q *SyncQueue) markPending(ctx context.Context, id string) error {
	if err := q.target.SetSynced(ctx, id, false); err != nil {
		return err
	}
	return q.Enqueue(ctx, id)
}

func (q *SyncQueue) markSynced(ctx context.Context, id string) error {
	if err := q.target.SetSynced(ctx, id, true); err != nil {
		return err
	}
	return q.Dequeue(ctx, id)
}

// Drain replays the remote write for every queued id that is still
// unsynced. It does nothing while offline. Concurrent drains of the same
// queue run one after another.
func (q *SyncQueue) Drain(ctx context.Context) (entity.SyncResult, error) {
	var result entity.SyncResult
	if !q.conn.IsOnline() {
		return result, nil
	}

	q.drainMu.Lock()
	defer q.drainMu.Unlock()

	ids, err := q.IDs(ctx)
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		exists, unsynced, err := q.target.Pending(ctx, id)
		if err != nil {
			return result, err
		}
		if !exists || !unsynced {
			// orphaned or already written; keep the queue consistent
			if !exists {
				q.logger.Warn("dropping queued id with no local record", zap.String("id", id))
			}
			if err := q.Dequeue(ctx, id); err != nil {
				return result, err
			}
			continue
		}

		if err := q.target.Push(ctx, id); err != nil {
			q.logger.Warn("replay failed", zap.String("id", id), zap.Error(err))
			result.Failed++
			continue
		}
		if err := q.markSynced(ctx, id); err != nil {
			return result, err
		}
		result.Success++
	}

	if result.Success > 0 || result.Failed > 0 {
		q.logger.Info("drain finished", zap.Int("success", result.Success), zap.Int("failed", result.Failed))
	}
	return result, nil
}

// Reconcile queues every cached record flagged unsynced that is missing
// from the queue, e.g. after a crash between the local write and the
// enqueue.
func (q *SyncQueue) Reconcile(ctx context.Context) (int, error) {
	unsynced, err := q.target.UnsyncedIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(unsynced) == 0 {
		return 0, nil
	}
	before, err := q.Len(ctx)
	if err != nil {
		return 0, err
	}
	if err := q.EnqueueMany(ctx, unsynced); err != nil {
		return 0, err
	}
	after, err := q.Len(ctx)
	if err != nil {
		return 0, err
	}
	if after > before {
		q.logger.Info("requeued unsynced records", zap.Int("count", after-before))
	}
	return after - before, nil
}
