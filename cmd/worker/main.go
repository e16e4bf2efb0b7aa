package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/velora-beauty/velora/internal/app"
	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/mailer"
	"github.com/velora-beauty/velora/internal/store"
	"github.com/velora-beauty/velora/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	mongoClient, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("connect mongodb", slog.Any("error", err))
		os.Exit(1)
	}
	db := store.New(mongoClient, cfg.MongoDB)
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Warn("mongodb close", slog.Any("error", err))
		}
	}()

	auditRepo := audit.NewMongoRepository(db)
	recorder := audit.NewRecorder(auditRepo, logger)
	auditService := audit.NewService(auditRepo, recorder)

	smtp := mailer.New(mailer.Config{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	emailJob := jobs.NewSendEmailJob(smtp, logger)
	retentionJob := jobs.NewAuditRetentionJob(auditService, logger)

	var cron []jobs.CronRegistration
	if cfg.AuditRetentionDays > 0 {
		retentionTask, err := jobs.NewAuditRetentionTask(jobs.RetentionPayload{Days: cfg.AuditRetentionDays})
		if err != nil {
			logger.Error("build retention task", slog.Any("error", err))
			os.Exit(1)
		}
		cron = append(cron, jobs.CronRegistration{
			Spec:    "0 3 * * *",
			Task:    retentionTask,
			Options: []asynq.Option{asynq.MaxRetry(3)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSendEmail, Handler: emailJob.Handle},
			{Type: jobs.TaskTypeAuditRetention, Handler: retentionJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
