package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// SummaryRefresher periodically recomputes project summary snapshots and
// flips past-due tasks to overdue. Readers always get the last complete
// snapshot; the loop stops when its context is cancelled so a teardown
// cannot leave a ticker running.
type SummaryRefresher struct {
	projects ProjectService
	interval time.Duration

	mu        sync.RWMutex
	snapshots []ProjectSummary
}

func NewSummaryRefresher(projects ProjectService, interval time.Duration) *SummaryRefresher {
	return &SummaryRefresher{projects: projects, interval: interval}
}

func (r *SummaryRefresher) Run(ctx context.Context) {
	r.refresh()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("summary refresher stopped")
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

func (r *SummaryRefresher) refresh() {
	if n, err := r.projects.MarkOverdueTasks(); err != nil {
		log.Printf("summary refresher: failed to mark overdue tasks: %v", err)
	} else if n > 0 {
		log.Printf("summary refresher: marked %d tasks overdue", n)
	}

	summaries, err := r.projects.BuildAllSummaries()
	if err != nil {
		log.Printf("summary refresher: failed to build summaries: %v", err)
		return
	}

	r.mu.Lock()
	r.snapshots = summaries
	r.mu.Unlock()
}

// Snapshots returns a copy of the latest summaries.
func (r *SummaryRefresher) Snapshots() []ProjectSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ProjectSummary, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}
