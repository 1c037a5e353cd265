package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicore/config"
	"clinicore/cron"
	"clinicore/database"
	appointmentRepo "clinicore/database/repository/appointment"
	doctorRepo "clinicore/database/repository/doctor"
	notificationRepo "clinicore/database/repository/notification"
	scheduleRepo "clinicore/database/repository/schedule"
	"clinicore/handlers"
	"clinicore/middleware"
	"clinicore/routes"
	"clinicore/services/booking"
	"clinicore/services/notification"
	"clinicore/services/payment"
	"clinicore/services/schedule"
	"clinicore/services/tasks"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitEventClient()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	docRepo := doctorRepo.NewGormDoctorRepo(database.DB)
	schedRepo := scheduleRepo.NewGormScheduleRepo(database.DB)
	apptRepo := appointmentRepo.NewGormAppointmentRepo(database.DB)
	notifRepo := notificationRepo.NewGormNotificationRepo(database.DB)

	// async expiry queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	expiryScheduler := &tasks.Scheduler{Client: asynqClient}

	// notification fan-out: rows persist first, pushes ride Redis pub/sub
	// so every instance's connected streams see them.
	hub := notification.NewHub(logger)
	fanInCtx, fanInCancel := context.WithCancel(context.Background())
	defer fanInCancel()
	go hub.RunRedisFanIn(fanInCtx, utils.GetEventClient())

	notificationService := &notification.DefaultNotificationService{
		Repo:       notifRepo,
		DoctorRepo: docRepo,
		Hub:        hub,
		Events:     utils.GetEventClient(),
		Logger:     logger,
	}

	sessionTTL := time.Duration(config.AppConfig.CheckoutTTLMinutes) * time.Minute
	gateway := payment.NewStripeGateway(logger, sessionTTL)

	bookingService := &booking.DefaultBookingService{
		DoctorRepo:   docRepo,
		ScheduleRepo: schedRepo,
		ApptRepo:     apptRepo,
		Gateway:      gateway,
		Notifier:     notificationService,
		Expiry:       expiryScheduler,
		Logger:       logger,
		SuccessURL:   config.AppConfig.CheckoutSuccessURL,
		CancelURL:    config.AppConfig.CheckoutCancelURL,
	}

	scheduleService := &schedule.DefaultScheduleService{
		DoctorRepo: docRepo,
		Repo:       schedRepo,
		Logger:     logger,
	}

	cron.InitExpiryWorker(bookingService)

	handlerSet := &routes.Handlers{
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Schedule:     handlers.NewScheduleHandler(scheduleService, logger),
		Notification: handlers.NewNotificationHandler(notificationService, hub, logger),
	}
	routes.SetupRoutes(router, handlerSet)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
