package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-bot/internal/api/http"
	"github.com/spec-kit/ticket-bot/internal/api/http/handlers"
	"github.com/spec-kit/ticket-bot/internal/bot"
	"github.com/spec-kit/ticket-bot/internal/config"
	"github.com/spec-kit/ticket-bot/internal/discord"
	"github.com/spec-kit/ticket-bot/internal/events"
	"github.com/spec-kit/ticket-bot/internal/observability"
	"github.com/spec-kit/ticket-bot/internal/persistence"
	"github.com/spec-kit/ticket-bot/internal/repository"
	"github.com/spec-kit/ticket-bot/internal/service"
	"github.com/spec-kit/ticket-bot/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	var counterRepo repository.CounterRepository
	var redisClient *persistence.Redis
	if cfg.Counter.Backend == config.CounterBackendRedis {
		redisClient = persistence.NewRedis(cfg.Redis, logger)
		defer redisClient.Close()
		counterRepo = repository.NewRedisCounterRepository(redisClient)
	} else {
		counterRepo = repository.NewFileCounterRepository(cfg.Counter.File, logger)
	}

	recordRepo := repository.NewTicketRecordRepository()
	dispatcher := events.NewInMemoryDispatcher(logger)

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Fatal("failed to create discord session", zap.Error(err))
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	gateway := discord.NewGateway(session)
	transcripts := service.NewTranscriptService(gateway, cfg.Transcript, logger)
	tickets := service.NewTicketService(cfg.Tickets, logger, service.TicketDependencies{
		Gateway:     gateway,
		CounterRepo: counterRepo,
		RecordRepo:  recordRepo,
		Transcripts: transcripts,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, metrics)
	worker.StartNotificationWorker(notificationService)

	router := bot.NewRouter(tickets, cfg.Discord, logger, metrics)
	router.Register(session)

	if err := session.Open(); err != nil {
		logger.Fatal("failed to connect to discord", zap.Error(err))
	}
	defer session.Close()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redisClient),
		Status:  handlers.NewStatusHandler(cfg.App.Name, cfg.App.Version, counterRepo),
		Metrics: metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
