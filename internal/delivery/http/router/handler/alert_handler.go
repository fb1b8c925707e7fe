package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"sentinel/internal/delivery/http/response"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AlertHandlerParams holds dependencies for AlertHandler, injected by Fx.
type AlertHandlerParams struct {
	fx.In

	AlertUC usecase.AlertUsecase
	Logger  *slog.Logger
}

// AlertHandler holds dependencies for emergency alert handlers
type AlertHandler struct {
	alertUC usecase.AlertUsecase
	logger  *slog.Logger
}

// NewAlertHandler is the constructor for AlertHandler
func NewAlertHandler(params AlertHandlerParams) *AlertHandler {
	return &AlertHandler{
		alertUC: params.AlertUC,
		logger:  params.Logger,
	}
}

// PanicRequest represents the request body for a panic trigger
type PanicRequest struct {
	TouristID  string           `json:"tourist_id" validate:"required"`
	Location   *LocationPayload `json:"location,omitempty"`
	CapturedAt string           `json:"captured_at,omitempty"`
}

// LocationPayload is a reported coordinate pair. Range checks happen in the
// usecase so an out-of-range report is rejected, not silently clamped.
type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateAlertStatusRequest represents the request body for a status change
type UpdateAlertStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DispatchPanic handles a panic trigger from a tourist's device
func (h *AlertHandler) DispatchPanic(c echo.Context) error {
	var req PanicRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid panic payload")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.PanicInput{
		TouristID:  req.TouristID,
		CapturedAt: req.CapturedAt,
	}
	if req.Location != nil {
		input.Location = &usecase.LocationInput{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	receipt, err := h.alertUC.DispatchPanic(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, receipt, "Emergency alert dispatched")
}

// ListAlerts handles retrieving stored alerts, most recent first
func (h *AlertHandler) ListAlerts(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"))
	touristID := c.QueryParam("tourist_id")

	alerts, err := h.alertUC.ListRecent(c.Request().Context(), limit, touristID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, alerts, "Alerts retrieved successfully")
}

// UpdateAlertStatus handles acknowledging or resolving an alert
func (h *AlertHandler) UpdateAlertStatus(c echo.Context) error {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	var req UpdateAlertStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status payload")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	alert, err := h.alertUC.UpdateStatus(c.Request().Context(), alertID, req.Status)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, alert, "Alert status updated successfully")
}

// handleAppError handles application errors
func (h *AlertHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}

// parseLimit parses an optional limit query parameter. Zero means "use the
// configured default".
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}

	return limit
}
