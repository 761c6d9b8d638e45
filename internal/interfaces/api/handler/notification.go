package handler

import (
	"drnote/internal/application/dto"
	"drnote/internal/application/service"
	"drnote/internal/domain/constant"
	"drnote/internal/pkg/logger"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultDeliveredLimit = 50

// NotificationHandler serves /notifications.
type NotificationHandler struct {
	notificationService service.NotificationService
	log                 logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, log: log}
}

// Pending handles GET /notifications/pending.
func (h *NotificationHandler) Pending(c echo.Context) error {
	pending, err := h.notificationService.ListPending(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pending)
}

// Delivered handles GET /notifications/delivered?limit=n.
func (h *NotificationHandler) Delivered(c echo.Context) error {
	limit := defaultDeliveredLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return badRequest(c, "invalid limit")
		}
		limit = n
	}
	delivered, err := h.notificationService.ListDelivered(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, delivered)
}

// GetAuthorization handles GET /notifications/authorization.
func (h *NotificationHandler) GetAuthorization(c echo.Context) error {
	auth, err := h.notificationService.GetAuthorization(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, auth)
}

// UpdateAuthorization handles PUT /notifications/authorization.
func (h *NotificationHandler) UpdateAuthorization(c echo.Context) error {
	var req dto.UpdateAuthorizationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	status, ok := constant.ParseAuthorizationStatus(req.Status)
	if !ok {
		return badRequest(c, fmt.Sprintf("unknown authorization status %q", req.Status))
	}
	auth, err := h.notificationService.SetAuthorization(c.Request().Context(), status)
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info(fmt.Sprintf("Notification authorization set to %s via API", status))
	return c.JSON(http.StatusOK, auth)
}
