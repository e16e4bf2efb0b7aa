package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/velora-beauty/velora/internal/app"
	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/auth"
	"github.com/velora-beauty/velora/internal/bookings"
	"github.com/velora-beauty/velora/internal/cache"
	"github.com/velora-beauty/velora/internal/catalog"
	"github.com/velora-beauty/velora/internal/contact"
	"github.com/velora-beauty/velora/internal/rbac"
	"github.com/velora-beauty/velora/internal/resources"
	"github.com/velora-beauty/velora/internal/shared"
	"github.com/velora-beauty/velora/internal/store"
	"github.com/velora-beauty/velora/internal/templates"
	"github.com/velora-beauty/velora/internal/trainings"
	"github.com/velora-beauty/velora/internal/users"
	"github.com/velora-beauty/velora/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
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

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	sessionManager := shared.NewSessionManager(redisClient, "velora_session", cfg.SessionTTL, cfg.IsProduction())
	listingCache := cache.New(redisClient, cfg.CacheTTL)

	queueClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	catalogOfRoles := rbac.NewCatalog()
	guard := rbac.Middleware{Logger: logger}

	auditRepo := audit.NewMongoRepository(db)
	recorder := audit.NewRecorder(auditRepo, logger)
	auditService := audit.NewService(auditRepo, recorder)

	authService := auth.NewService(auth.NewMongoRepository(db), catalogOfRoles)
	usersService := users.NewService(users.NewRepository(db), catalogOfRoles, recorder)
	catalogService := catalog.NewService(catalog.NewRepository(db), listingCache, recorder)
	trainingsService := trainings.NewService(trainings.NewRepository(db), listingCache, recorder)
	resourcesService := resources.NewService(resources.NewRepository(db), recorder)
	templatesService := templates.NewService(templates.NewRepository(db), listingCache, recorder)
	notifier := bookings.NewEmailNotifier(templatesService, queueClient)
	bookingsService := bookings.NewService(bookings.NewRepository(db), recorder, notifier)
	enqueueEmail := func(ctx context.Context, payload jobs.SendEmailPayload) error {
		_, err := queueClient.EnqueueSendEmail(ctx, payload)
		return err
	}

	var forwardContact func(ctx context.Context, msg contact.Message) error
	if cfg.ContactInbox != "" {
		inbox := cfg.ContactInbox
		forwardContact = func(ctx context.Context, msg contact.Message) error {
			return enqueueEmail(ctx, jobs.SendEmailPayload{
				To:      inbox,
				Subject: "New contact message from " + msg.Name,
				HTML:    contact.ForwardBody(msg),
			})
		}
	}
	contactService := contact.NewService(db, recorder, forwardContact)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		Guard:          guard,

		AuthHandler:      auth.NewHandler(logger, authService, sessionManager, cfg.AdminSeedToken, !cfg.IsProduction()),
		UsersHandler:     users.NewHandler(logger, usersService),
		AuditHandler:     audit.NewHandler(logger, auditService),
		CatalogHandler:   catalog.NewHandler(logger, catalogService),
		TrainingsHandler: trainings.NewHandler(logger, trainingsService),
		BookingsHandler:  bookings.NewHandler(logger, bookingsService),
		ResourcesHandler: resources.NewHandler(logger, resourcesService),
		TemplatesHandler: templates.NewHandler(logger, templatesService, enqueueEmail),
		ContactHandler:   contact.NewHandler(logger, contactService),
		JobHandler:       jobs.NewHandler(inspector, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
