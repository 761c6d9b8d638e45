package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	"drnote/internal/application/reminder"
	appService "drnote/internal/application/service"

	// Infrastructure Layer
	"drnote/internal/infrastructure/database/sqlite"
	lineClient "drnote/internal/infrastructure/line"
	"drnote/internal/infrastructure/notification"
	"drnote/internal/infrastructure/scheduler"

	// Interfaces Layer
	"drnote/internal/interfaces/api/handler"
	apiMiddleware "drnote/internal/interfaces/api/middleware"
	"drnote/internal/interfaces/api/router"

	// Packages
	"drnote/internal/pkg/config"
	appLogger "drnote/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and the reminder scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// closers are released after the HTTP server stops, in reverse start order.
type closers struct {
	coordinator *reminder.Coordinator
	center      *notification.Center
	limiter     *apiMiddleware.RateLimiter
	db          *gorm.DB
}

func gracefulShutdown(apiServer *http.Server, res closers, log appLogger.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Shutdown HTTP server first so no new appointment mutations arrive.
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err)
	}

	// Drain queued reminder work, then stop the cron jobs
	log.Info("Stopping reminder subsystem...")
	res.coordinator.Close()
	res.center.Stop()
	res.limiter.Close()
	log.Info("Reminder subsystem stopped.")

	// Close database connection
	if err := sqlite.Close(res.db); err != nil {
		log.Error("Error closing database", err)
	} else {
		log.Info("Database connection closed.")
	}

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func runServer() error {
	// --- Initialization ---
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	appLog := appLogger.New(cfg.LogLevel)
	appLog.Info("Logger initialized.")

	// --- Infrastructure ---
	db, err := sqlite.Open(cfg.DBURL, appLog)
	if err != nil {
		return err
	}
	patientRepo := sqlite.NewPatientRepository(db)
	appointmentRepo := sqlite.NewAppointmentRepository(db)
	noteRepo := sqlite.NewNoteRepository(db)
	prescriptionRepo := sqlite.NewPrescriptionRepository(db)
	appLog.Info("Database and repositories initialized.")

	var (
		line      *lineClient.Client
		deliverer notification.Deliverer = notification.NewLogDeliverer(appLog)
		prompter  notification.Prompter
	)
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(cfg.ChannelSecret, cfg.ChannelAccessToken, cfg.PractitionerLineID, appLog)
		if err != nil {
			return err
		}
		deliverer = line
	} else {
		appLog.Warn("LINE is not configured; reminders are written to the log only.")
	}
	switch cfg.NotificationAuthorization {
	case config.AuthorizationGrant:
		prompter = notification.StaticPrompter{Granted: true}
	case config.AuthorizationDeny:
		prompter = notification.StaticPrompter{Granted: false}
	default:
		if line != nil {
			prompter = line
		} else {
			// Nobody to ask; the log deliverer is always reachable.
			prompter = notification.StaticPrompter{Granted: true}
		}
	}

	cronScheduler := scheduler.NewScheduler(cfg.Location, appLog)
	center := notification.NewCenter(
		cronScheduler,
		sqlite.NewPendingReminderRepository(db),
		sqlite.NewDeliveredReminderRepository(db),
		sqlite.NewNotificationSettingRepository(db),
		deliverer,
		prompter,
		appLog,
	)

	// --- Restore Schedules ---
	appLog.Info("Restoring pending reminders...")
	if err := center.Restore(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to restore pending reminders on startup", err)
	}

	// --- Reminder Subsystem ---
	coordinator := reminder.NewCoordinator(center, appLog, reminder.WithLocation(cfg.Location))
	coordinator.Initialize(context.Background())

	// --- Application Services ---
	patientSvc := appService.NewPatientService(patientRepo, appointmentRepo, noteRepo, prescriptionRepo, coordinator, appLog)
	recordSvc := appService.NewRecordService(patientRepo, noteRepo, prescriptionRepo, appLog)
	appointmentSvc := appService.NewAppointmentService(appointmentRepo, patientRepo, coordinator, appLog)
	notificationSvc := appService.NewNotificationService(center, coordinator, appLog)
	appLog.Info("Application services initialized.")

	// --- API Handlers ---
	limiter := apiMiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	routerCfg := &router.Config{
		PatientHandler:      handler.NewPatientHandler(patientSvc, appLog),
		RecordHandler:       handler.NewRecordHandler(recordSvc, appLog),
		AppointmentHandler:  handler.NewAppointmentHandler(appointmentSvc, appLog),
		NotificationHandler: handler.NewNotificationHandler(notificationSvc, appLog),
		RateLimiter:         limiter,
		Logger:              appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, notificationSvc, cfg.Location, appLog)
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, closers{
		coordinator: coordinator,
		center:      center,
		limiter:     limiter,
		db:          db,
	}, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("HTTP server ListenAndServe error", err)
		return fmt.Errorf("http server error: %w", err)
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
	return nil
}
