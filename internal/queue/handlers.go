package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/iliyamo/movie-analytics/internal/analytics"
	"github.com/iliyamo/movie-analytics/internal/logger"
)

// BookingLog appends one line per TicketsBookedEvent to path.
func BookingLog(path string) Handler {
	var mu sync.Mutex
	return func(_ context.Context, body []byte) error {
		var ev TicketsBookedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line := fmt.Sprintf("[%s] Tickets booked | ticket_id=%d | title=%q | quantity=%d | remaining=%d | booked_by=%s\n",
			ev.BookedAt.UTC().Format(time.RFC3339), ev.TicketID, ev.Title, ev.Quantity, ev.Remaining, ev.BookedBy)

		mu.Lock()
		defer mu.Unlock()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("mkdir logs: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		if _, err := f.WriteString(line); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
		return nil
	}
}

// PurgeFunc drops cached HTTP responses and reports how many went.
type PurgeFunc func(ctx context.Context) (int64, error)

// RefreshDataset reloads the dashboard's dataset when a pipeline run
// completes, then purges cached responses.  Only the configured dataDir
// is reloaded, whatever directory the event names.  A failed reload keeps
// the previous dataset and skips the purge.
func RefreshDataset(cache *analytics.Cache, dataDir string, purge PurgeFunc, log *logger.Logger) Handler {
	return func(ctx context.Context, body []byte) error {
		var ev PipelineCompletedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		if ev.DataDir != "" && filepath.Clean(ev.DataDir) != filepath.Clean(dataDir) {
			log.Warn("pipeline wrote a different data dir", "run_id", ev.RunID, "event_dir", ev.DataDir, "serving", dataDir)
		}
		if _, err := cache.Refresh(dataDir); err != nil {
			return fmt.Errorf("refresh %s: %w", dataDir, err)
		}
		var purged int64
		if purge != nil {
			n, err := purge(ctx)
			if err != nil {
				log.Warn("response cache purge failed", "error", err)
			}
			purged = n
		}
		log.Info("dataset refreshed", "run_id", ev.RunID, "movies", ev.Movies, "purged", purged)
		return nil
	}
}
