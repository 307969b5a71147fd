package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/9mit/Youtube-Intelligence/internal/repository"
)

// archiveReport writes a finished report to the archive, best-effort.
// A nil repo (archiving disabled) and a failed insert are both fine;
// the request that produced the report already succeeded.
func archiveReport(ctx context.Context, repo *repository.ReportRepo, mode, subject string, report json.RawMessage) {
	if repo == nil {
		return
	}
	if err := repo.Insert(ctx, mode, subject, report); err != nil {
		log.Printf("archive: %s write failed: %v", mode, err)
	}
}

// ArchiveWorker is a periodic background job that prunes archive rows
// older than the retention window.
type ArchiveWorker struct {
	repo      *repository.ReportRepo
	retention time.Duration
	interval  time.Duration
	stopCh    chan struct{}
}

// NewArchiveWorker creates a worker that prunes every interval, keeping
// rows younger than retention.
func NewArchiveWorker(repo *repository.ReportRepo, retention, interval time.Duration) *ArchiveWorker {
	return &ArchiveWorker{
		repo:      repo,
		retention: retention,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the pruning loop. It runs one tick immediately, then
// every interval.
func (w *ArchiveWorker) Start(ctx context.Context) {
	log.Printf("archive-worker: starting (interval=%s, retention=%s)", w.interval, w.retention)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("archive-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("archive-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *ArchiveWorker) Stop() {
	close(w.stopCh)
}

func (w *ArchiveWorker) tick(ctx context.Context) {
	start := time.Now()
	cutoff := start.Add(-w.retention)

	pruned, err := w.repo.PruneOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("archive-worker: error: %v", err)
		return
	}

	log.Printf("archive-worker: tick complete — %d rows pruned (%s)",
		pruned, time.Since(start).Round(time.Millisecond))
}
