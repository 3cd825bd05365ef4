package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsWorker listens for PostgreSQL NOTIFY on the 'submission_changes'
// channel and batches dashboard refreshes: a burst of submissions inside
// one window produces a single recomputation.
type StatsWorker struct {
	pool    *pgxpool.Pool
	stats   *StatsService
	batchMs time.Duration

	mu    sync.Mutex
	dirty bool
}

// NewStatsWorker creates a stats refresh worker.
func NewStatsWorker(pool *pgxpool.Pool, stats *StatsService) *StatsWorker {
	return &StatsWorker{
		pool:    pool,
		stats:   stats,
		batchMs: 5 * time.Second,
	}
}

// Start begins listening for submission_changes notifications and
// refreshing the cached aggregates in batched windows.
func (w *StatsWorker) Start(ctx context.Context) {
	log.Printf("stats-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("stats-worker: stopping (context cancelled)")
				return
			}
			log.Printf("stats-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("stats-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on submission_changes,
// and marks the aggregates dirty; the flush loop recomputes them.
func (w *StatsWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN submission_changes")
	if err != nil {
		return err
	}
	log.Println("stats-worker: listening on submission_changes")

	// Start the batch flush goroutine
	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return err
		}

		w.mu.Lock()
		w.dirty = true
		w.mu.Unlock()
	}
}

// flushLoop periodically recomputes the aggregates when dirty.
func (w *StatsWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush recomputes the cached aggregates if any submission arrived since
// the last run.
func (w *StatsWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	w.dirty = false
	w.mu.Unlock()

	if _, err := w.stats.Refresh(ctx); err != nil {
		log.Printf("stats-worker: refresh error: %v", err)
		w.mu.Lock()
		w.dirty = true
		w.mu.Unlock()
	}
}
