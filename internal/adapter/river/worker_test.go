package river_test

import (
	"context"
	"testing"

	goriver "github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	riveradapter "github.com/neomorfeo/dealerops/internal/adapter/river"
)

func TestNotificationWorker_LogsDelivery(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := &riveradapter.NotificationWorker{Logger: zap.New(core)}

	job := &goriver.Job[riveradapter.NotificationJobArgs]{
		JobRow: &rivertype.JobRow{ID: 11, Attempt: 1},
		Args: riveradapter.NotificationJobArgs{
			Event:    "website.status_changed",
			DealerID: "d-1",
			EntityID: "d-1",
			Details:  map[string]string{"status": "approved"},
		},
	}
	if err := w.Work(context.Background(), job); err != nil {
		t.Fatalf("Work failed: %v", err)
	}

	entries := logs.FilterMessage("notification delivered").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["kind"] != "website.status_changed" {
		t.Errorf("kind = %v, want %q", fields["kind"], "website.status_changed")
	}
	if fields["detail.status"] != "approved" {
		t.Errorf("detail.status = %v, want %q", fields["detail.status"], "approved")
	}
	if fields["job_id"] != int64(11) {
		t.Errorf("job_id = %v, want 11", fields["job_id"])
	}
}
