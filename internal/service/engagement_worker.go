package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GabrielPedrotti/irecipes/internal/repository"
)

// EngagementWorker listens for PostgreSQL NOTIFY on the
// 'video_engagement' channel and batches counter repairs. A burst of
// likes and comments on one video produces a single recount per window.
type EngagementWorker struct {
	pool    *pgxpool.Pool
	videos  *repository.VideoRepo
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // video IDs waiting for a recount
}

// NewEngagementWorker creates an engagement recount worker.
func NewEngagementWorker(pool *pgxpool.Pool, videos *repository.VideoRepo, cache *CacheService) *EngagementWorker {
	return &EngagementWorker{
		pool:    pool,
		videos:  videos,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for video_engagement notifications and
// processing batches. Blocks until ctx is cancelled.
func (w *EngagementWorker) Start(ctx context.Context) {
	log.Printf("engagement-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("engagement-worker: stopping (context cancelled)")
				return
			}
			log.Printf("engagement-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("engagement-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on
// video_engagement, and collects notifications into batched windows.
func (w *EngagementWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, "LISTEN video_engagement"); err != nil {
		return err
	}
	log.Println("engagement-worker: listening on video_engagement")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID := notification.Payload
		if videoID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and recounts.
func (w *EngagementWorker) flushLoop(ctx context.Context) {
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

// flush drains the pending set and repairs each video's counters.
func (w *EngagementWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	recounted := 0
	for videoID := range batch {
		if err := w.videos.RecountEngagement(ctx, videoID); err != nil {
			log.Printf("engagement-worker: recount error for %s: %v", videoID, err)
			continue
		}

		if w.cache != nil {
			if err := w.cache.InvalidateVideo(ctx, videoID); err != nil {
				log.Printf("engagement-worker: cache invalidate error for %s: %v", videoID, err)
			}
		}

		recounted++
	}

	if recounted > 0 {
		log.Printf("engagement-worker: batch complete, %d videos recounted (from %d notifications)",
			recounted, len(batch))
	}
}
