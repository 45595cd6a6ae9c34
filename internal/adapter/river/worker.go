package river

import (
	"context"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// NotificationWorker delivers lifecycle notifications. Delivery is a
// structured log line; outbound channels hang off this worker.
type NotificationWorker struct {
	river.WorkerDefaults[NotificationJobArgs]

	Logger *zap.Logger
}

// Work processes a single notification job.
func (w *NotificationWorker) Work(ctx context.Context, job *river.Job[NotificationJobArgs]) error {
	fields := []zap.Field{
		zap.String("kind", job.Args.Event),
		zap.String("dealer_id", job.Args.DealerID),
		zap.String("entity_id", job.Args.EntityID),
		zap.Int64("job_id", job.ID),
		zap.Int("attempt", job.Attempt),
	}
	for k, v := range job.Args.Details {
		fields = append(fields, zap.String("detail."+k, v))
	}
	w.Logger.Info("notification delivered", fields...)
	return nil
}
