package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/velora-beauty/velora/internal/mailer"
)

// SendEmailJob delivers queued transactional email over SMTP.
type SendEmailJob struct {
	mailer *mailer.Mailer
	logger *slog.Logger
}

// NewSendEmailJob constructs the email job handler.
func NewSendEmailJob(m *mailer.Mailer, logger *slog.Logger) *SendEmailJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendEmailJob{mailer: m, logger: logger}
}

// Handle processes TaskTypeSendEmail tasks.
func (j *SendEmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := j.mailer.Send(payload.To, payload.Subject, payload.HTML); err != nil {
		j.logger.Error("send email", slog.String("to", payload.To), slog.Any("error", err))
		return err
	}
	j.logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	return nil
}
