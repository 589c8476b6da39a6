package queue

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/movie-analytics/internal/analytics"
	"github.com/iliyamo/movie-analytics/internal/dataset"
	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/pipeline"
)

func TestBookingLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	h := BookingLog(path)
	for i := 0; i < 2; i++ {
		body, _ := json.Marshal(TicketsBookedEvent{TicketID: 3, Title: "Epic Quest", Quantity: 2, Remaining: 8 - 2*i,
			BookedBy: "1", BookedAt: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)})
		if err := h(context.Background(), body); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `title="Epic Quest"`) || !strings.Contains(lines[1], "remaining=6") {
		t.Fatalf("log: %q", lines)
	}
	if err := h(context.Background(), []byte("{")); err == nil {
		t.Fatalf("want unmarshal error")
	}
}

func TestRefreshDataset(t *testing.T) {
	raw, out := t.TempDir(), t.TempDir()
	movies, sales, err := pipeline.Generate(pipeline.GenerateOptions{Movies: 10, SalesDays: 10, SalesTop: 2, Seed: 5,
		Now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := dataset.WriteRaw(raw, movies, sales); err != nil {
		t.Fatalf("write raw: %v", err)
	}
	res, err := (&pipeline.Runner{RawDir: raw, OutDir: out}).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	cache := analytics.NewCache()
	purged := false
	h := RefreshDataset(cache, out, func(context.Context) (int64, error) { purged = true; return 3, nil }, logger.Nop())
	body, _ := json.Marshal(PipelineCompletedEvent{RunID: res.RunID, DataDir: out, Movies: res.Movies})
	if err := h(context.Background(), body); err != nil {
		t.Fatalf("handle: %v", err)
	}
	a, err := cache.Get(out)
	if err != nil || a.Overview().TotalMovies != 10 {
		t.Fatalf("cache not refreshed: %v", err)
	}
	if !purged {
		t.Fatalf("purge not called")
	}

	purged = false
	h = RefreshDataset(cache, t.TempDir(), func(context.Context) (int64, error) { purged = true; return 0, nil }, logger.Nop())
	if err := h(context.Background(), body); err == nil || purged {
		t.Fatalf("failed reload should error without purging (purged=%v)", purged)
	}
}
