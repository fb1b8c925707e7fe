package handler

import (
	"log/slog"
	"net/http"

	"sentinel/internal/delivery/http/response"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MonitoringHandlerParams holds dependencies for MonitoringHandler, injected by Fx.
type MonitoringHandlerParams struct {
	fx.In

	FeedUC usecase.FeedUsecase
	Logger *slog.Logger
}

// MonitoringHandler serves the read-only dashboard feed
type MonitoringHandler struct {
	feedUC usecase.FeedUsecase
	logger *slog.Logger
}

// NewMonitoringHandler is the constructor for MonitoringHandler
func NewMonitoringHandler(params MonitoringHandlerParams) *MonitoringHandler {
	return &MonitoringHandler{
		feedUC: params.FeedUC,
		logger: params.Logger,
	}
}

// RecentAlerts handles retrieving formatted recent alerts for the dashboard
func (h *MonitoringHandler) RecentAlerts(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"))
	touristID := c.QueryParam("tourist_id")

	items, err := h.feedUC.RecentAlerts(c.Request().Context(), limit, touristID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items, "Alert feed retrieved successfully")
}

// RecentZoneEvents handles retrieving formatted recent zone transitions
func (h *MonitoringHandler) RecentZoneEvents(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"))
	touristID := c.QueryParam("tourist_id")

	items, err := h.feedUC.RecentZoneEvents(c.Request().Context(), limit, touristID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items, "Zone event feed retrieved successfully")
}

// handleAppError handles application errors
func (h *MonitoringHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
