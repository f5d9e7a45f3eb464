package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dreamhi/config"
	"dreamhi/cron"
	"dreamhi/database"
	bookingRepo "dreamhi/database/repository/bookings"
	liveSessionRepo "dreamhi/database/repository/livesession"
	notificationRepo "dreamhi/database/repository/notification"
	processRepo "dreamhi/database/repository/process"
	volunteerRepo "dreamhi/database/repository/volunteer"
	"dreamhi/handlers"
	"dreamhi/routes"
	"dreamhi/services/audition"
	"dreamhi/services/authz"
	"dreamhi/services/notification"
	"dreamhi/services/tasks"
	"dreamhi/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()

	// repositories.
	processes := processRepo.NewMongoProcessRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	sessions := liveSessionRepo.NewMongoLiveSessionRepo()
	volunteers := volunteerRepo.NewMongoVolunteerRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	for _, repo := range []indexed{processes, bookings, sessions, volunteers, notifications} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.Error(err))
		}
	}
	cancel()

	// Redis backs the period cache and token revocation; both are optional.
	var (
		periodCache audition.PeriodCache
		revocations *utils.TokenRevocations
	)
	redisClients := []*redis.Client{}
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: redis unavailable, running without period cache and token revocation", zap.Error(err))
	} else {
		periodCache = audition.NewRedisPeriodCache(utils.GetCacheClient(), config.AppConfig.PeriodCacheTTL)
		revocations = &utils.TokenRevocations{Client: utils.GetAuthCacheClient()}
		redisClients = append(redisClients, utils.GetCacheClient(), utils.GetAuthCacheClient())
	}

	// reminders.
	queueClient := asynq.NewClient(cron.RedisOpt(config.AppConfig))
	defer queueClient.Close()

	notificationService, err := notification.NewDefaultNotificationService(notifications, logger)
	if err != nil {
		logger.Fatal("main: failed to create notification service", zap.Error(err))
	}
	worker := cron.InitReminderWorker(bookings, notificationService, logger)

	// services.
	auditionService := audition.NewDefaultAuditionService(audition.Dependencies{
		Processes:    processes,
		Bookings:     bookings,
		LiveSessions: sessions,
		Lookup: &authz.RepositoryLookup{
			Processes:  processes,
			Volunteers: volunteers,
			Bookings:   bookings,
		},
		PeriodCache:  periodCache,
		Reminders:    tasks.NewAsynqReminderScheduler(queueClient),
		ReminderLead: config.AppConfig.ReminderLead,
		Location:     config.Location(),
		NewSessionID: audition.NewSessionID,
		Logger:       logger,
	})

	handlerBundle := &handlers.HandlerBundle{
		Logger:              logger,
		AuditionHandler:     handlers.NewAuditionHandler(auditionService, config.Location()),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		MaxRequestsPerMin:   config.AppConfig.MaxRequestsPerMin,
	}
	if revocations != nil {
		handlerBundle.Revocations = revocations
		handlerBundle.AuthHandler = handlers.NewAuthHandler(revocations)
	} else {
		handlerBundle.AuthHandler = handlers.NewAuthHandler(nil)
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, redisClients, database.MongoClient, time.Minute)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", config.GetEnv()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
