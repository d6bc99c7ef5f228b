package worker

import (
	"context"
	"testing"
	"time"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven/mocks"
	"github.com/meridian-labs/scanwatch-core/internal/core/services"
)

func newTestWorker(t *testing.T) (*Worker, *mocks.MockScanStore, *mocks.MockTaskQueue) {
	t.Helper()
	store := mocks.NewMockScanStore()
	queue := mocks.NewMockTaskQueue()
	w := New(Config{
		TaskQueue: queue,
		Ingest:    services.NewIngestService(store, nil),
	})
	return w, store, queue
}

// waitForRecords polls until the date has records or the deadline passes.
func waitForRecords(t *testing.T, store *mocks.MockScanStore, date string, want int) []*domain.ScanRecord {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		records, err := store.ReadSlotDocuments(context.Background(), date)
		if err == nil && len(records) >= want {
			return records
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d records on %s", want, date)
	return nil
}

func TestWorker_ProcessesRawMarkdown(t *testing.T) {
	w, store, queue := newTestWorker(t)
	ctx := context.Background()

	err := queue.Enqueue(ctx, &domain.IngestTask{
		ID:          "task-1",
		ScanDate:    "2026-08-24",
		RawMarkdown: "## AM Data\n**Mood:** Fresh.\n\n## PM Data\n**Mood:** Tired.\n",
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	records := waitForRecords(t, store, "2026-08-24", 2)
	if records[0].ScanTime != domain.ScanTimeMorning || records[1].ScanTime != domain.ScanTimeEvening {
		t.Errorf("slots: %s, %s", records[0].ScanTime, records[1].ScanTime)
	}
	if records[0].Mood != "Fresh." {
		t.Errorf("morning mood: %q", records[0].Mood)
	}
}

func TestWorker_PinnedSlot(t *testing.T) {
	w, store, queue := newTestWorker(t)
	ctx := context.Background()

	err := queue.Enqueue(ctx, &domain.IngestTask{
		ID:          "task-1",
		ScanDate:    "2026-08-24",
		ScanTime:    domain.ScanTimeMidday,
		RawMarkdown: "**Mood:** Focused.\n",
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	records := waitForRecords(t, store, "2026-08-24", 1)
	if records[0].ScanTime != domain.ScanTimeMidday {
		t.Errorf("expected pinned midday slot, got %s", records[0].ScanTime)
	}
	if records[0].RawMarkdown == "" {
		t.Error("raw markdown must be preserved")
	}
}

func TestWorker_InvalidTaskDoesNotStopLoop(t *testing.T) {
	w, store, queue := newTestWorker(t)
	ctx := context.Background()

	// First task is rejected by validation, second must still be processed.
	if err := queue.Enqueue(ctx, &domain.IngestTask{ID: "bad", ScanDate: "someday", RawMarkdown: "x"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := queue.Enqueue(ctx, &domain.IngestTask{ID: "good", ScanDate: "2026-08-24", RawMarkdown: "**Mood:** Calm.\n"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	waitForRecords(t, store, "2026-08-24", 1)
}

func TestWorker_StartIsIdempotent(t *testing.T) {
	w, _, _ := newTestWorker(t)
	ctx := context.Background()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.Start(ctx); err != nil {
		t.Errorf("second start: %v", err)
	}
	w.Stop()
}
