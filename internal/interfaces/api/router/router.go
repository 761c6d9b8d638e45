package router

import (
	"drnote/internal/interfaces/api/handler"
	apiMiddleware "drnote/internal/interfaces/api/middleware"
	"drnote/internal/pkg/logger"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	PatientHandler      *handler.PatientHandler
	RecordHandler       *handler.RecordHandler
	AppointmentHandler  *handler.AppointmentHandler
	NotificationHandler *handler.NotificationHandler
	LineHandler         *handler.LineHandler // nil when LINE is not configured
	RateLimiter         *apiMiddleware.RateLimiter
	Logger              logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Line-Signature"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RateLimiter != nil {
		// The LINE platform retries webhooks; never throttle them.
		e.Use(apiMiddleware.RateLimit(cfg.RateLimiter, func(c echo.Context) bool {
			return c.Path() == "/callback"
		}))
	}

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	patients := e.Group("/patients")
	patients.GET("", cfg.PatientHandler.List)
	patients.POST("", cfg.PatientHandler.Create)
	patients.GET("/:id", cfg.PatientHandler.Get)
	patients.PUT("/:id", cfg.PatientHandler.Update)
	patients.DELETE("/:id", cfg.PatientHandler.Delete)
	patients.GET("/:id/notes", cfg.RecordHandler.ListNotes)
	patients.POST("/:id/notes", cfg.RecordHandler.CreateNote)
	patients.PUT("/:id/notes/:noteID", cfg.RecordHandler.UpdateNote)
	patients.DELETE("/:id/notes/:noteID", cfg.RecordHandler.DeleteNote)
	patients.GET("/:id/prescriptions", cfg.RecordHandler.ListPrescriptions)
	patients.POST("/:id/prescriptions", cfg.RecordHandler.CreatePrescription)
	patients.PUT("/:id/prescriptions/:prescriptionID", cfg.RecordHandler.UpdatePrescription)
	patients.DELETE("/:id/prescriptions/:prescriptionID", cfg.RecordHandler.DeletePrescription)

	appointments := e.Group("/appointments")
	appointments.GET("", cfg.AppointmentHandler.List)
	appointments.POST("", cfg.AppointmentHandler.Create)
	appointments.GET("/:id", cfg.AppointmentHandler.Get)
	appointments.PUT("/:id", cfg.AppointmentHandler.Update)
	appointments.DELETE("/:id", cfg.AppointmentHandler.Delete)

	notifications := e.Group("/notifications")
	notifications.GET("/pending", cfg.NotificationHandler.Pending)
	notifications.GET("/delivered", cfg.NotificationHandler.Delivered)
	notifications.GET("/authorization", cfg.NotificationHandler.GetAuthorization)
	notifications.PUT("/authorization", cfg.NotificationHandler.UpdateAuthorization)

	// LINE Webhook Endpoint
	// Note: LINE Platform requires POST for webhook
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
