package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/velora-beauty/velora/internal/audit"
)

// AuditRetentionJob prunes old audit log entries on a schedule.
type AuditRetentionJob struct {
	service *audit.Service
	logger  *slog.Logger
}

// NewAuditRetentionJob constructs the retention job handler.
func NewAuditRetentionJob(service *audit.Service, logger *slog.Logger) *AuditRetentionJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditRetentionJob{service: service, logger: logger}
}

// Handle processes TaskTypeAuditRetention tasks.
func (j *AuditRetentionJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload RetentionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Days <= 0 {
		return asynq.SkipRetry
	}
	result, err := j.service.Prune(ctx, nil, audit.PruneSpec{Days: payload.Days})
	if err != nil {
		j.logger.Error("audit retention", slog.Any("error", err))
		return err
	}
	j.logger.Info("audit retention complete",
		slog.Int64("deleted", result.DeletedCount),
		slog.String("cutoff", result.Cutoff))
	return nil
}
