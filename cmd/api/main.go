package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/cache"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/memory"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/seed"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Store em memória + fixtures
	store := memory.NewStore()
	if err := seed.Load(store, time.Now()); err != nil {
		logrus.WithError(err).Fatal("❌ Falha ao carregar fixtures")
	}

	prospectRepo := memory.NewProspectRepository(store)
	taskRepo := memory.NewTaskRepository(store)
	contactRepo := memory.NewContactRepository(store)
	templateRepo := memory.NewTemplateRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	interactionRepo := memory.NewInteractionRepository(store)
	userDirectory := memory.NewUserDirectory(store)

	// 2. Sessão
	var (
		db  *sql.DB
		rdb *redis.Client
	)
	var sessions entity.SessionStore
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		rdb = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		sessions = cache.NewSessionStore(rdb, cfg.SessionTTL)
	case config.SessionBackendPostgres:
		conn, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			logrus.WithError(err).Fatal("❌ Falha ao conectar no Postgres")
		}
		db = conn
		defer db.Close()
		repo := database.NewSessionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			logrus.WithError(err).Fatal("❌ Falha ao preparar crm_kv")
		}
		sessions = repo
	default:
		sessions = memory.NewSessionStore()
	}
	logrus.WithField("backend", cfg.SessionBackend).Info("🔐 Sessão configurada")

	authUC := usecase.NewAuthUseCase(userDirectory, sessions)
	if user, err := authUC.Restore(ctx); err == nil {
		logrus.WithField("user", user.Email).Info("👤 Usuário da sessão anterior")
	}

	notificationUC := usecase.NewNotificationUseCase(notificationRepo, nil)

	// 3. Barramento de eventos: RabbitMQ se configurado, senão inline
	var (
		events  usecase.EventPublisher
		amqpCon *amqp091.Connection
	)
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logrus.WithError(err).Fatal("❌ Falha ao conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()
		amqpCon = rabbitMQ.Conn

		events = queue.NewProducer(rabbitMQ.Ch)
		eventWorker := queue.NewWorker(rabbitMQ.Ch, notificationUC)
		go func() {
			if err := eventWorker.Start(ctx, queue.QueueName); err != nil {
				logrus.WithError(err).Error("❌ Worker de eventos parou")
			}
		}()
	} else {
		events = queue.NewInlinePublisher(notificationUC)
	}

	// 4. Email (opcional)
	var emailSender usecase.EmailSender
	if cfg.Mail.Enabled() {
		emailSender = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.From, cfg.CompanyName)
	}

	// 5. UseCases
	transitionUC := usecase.NewStatusTransitionUseCase(prospectRepo, taskRepo, events, nil)
	interactionUC := usecase.NewRecordInteractionUseCase(prospectRepo, taskRepo, interactionRepo, authUC, events, nil, cfg.DefaultAssignee)
	prospectUC := usecase.NewProspectUseCase(prospectRepo, interactionRepo, nil)
	taskUC := usecase.NewTaskUseCase(taskRepo, authUC, events, nil, cfg.DefaultAssignee)
	messagingUC := usecase.NewMessagingUseCase(contactRepo, templateRepo, emailSender, nil, cfg.CompanyName)
	templateUC := usecase.NewTemplateUseCase(templateRepo, contactRepo, nil, cfg.CompanyName)
	dashboardUC := usecase.NewDashboardUseCase(prospectRepo, taskRepo, contactRepo, notificationRepo, nil)

	// 6. Gerador de notificações (uma instância por sessão)
	generator := worker.NewNotificationGenerator(notificationUC, cfg.NotificationInterval, cfg.NotificationProbability)
	go generator.Start(ctx)

	// 7. Router
	router := &handlers.Router{
		Auth:           handlers.NewAuthHandler(authUC),
		Prospects:      handlers.NewProspectHandler(prospectUC, transitionUC, interactionUC),
		Tasks:          handlers.NewTaskHandler(taskUC, transitionUC),
		Contacts:       handlers.NewContactHandler(messagingUC),
		Templates:      handlers.NewTemplateHandler(templateUC),
		Notifications:  handlers.NewNotificationHandler(notificationUC),
		Dashboard:      handlers.NewDashboardHandler(dashboardUC),
		Health:         handlers.NewHealthHandler(db, rdb, amqpCon, cfg.Mail.Enabled(), version),
		AllowedOrigins: cfg.CORSOrigins,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.HTTPPort).Info("🔥 Ligue CRM rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("❌ Servidor HTTP caiu")
		}
	}()

	<-ctx.Done()
	logrus.Info("🛑 Encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("❌ Shutdown forçado")
	}
}
