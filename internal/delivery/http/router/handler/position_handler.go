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

// PositionHandlerParams holds dependencies for PositionHandler, injected by Fx.
type PositionHandlerParams struct {
	fx.In

	TrackingUC usecase.TrackingUsecase
	Logger     *slog.Logger
}

// PositionHandler holds dependencies for position ingestion handlers
type PositionHandler struct {
	trackingUC usecase.TrackingUsecase
	logger     *slog.Logger
}

// NewPositionHandler is the constructor for PositionHandler
func NewPositionHandler(params PositionHandlerParams) *PositionHandler {
	return &PositionHandler{
		trackingUC: params.TrackingUC,
		logger:     params.Logger,
	}
}

// PositionRequest represents a position sample submitted for ingestion
type PositionRequest struct {
	TouristID      string   `json:"tourist_id" validate:"required"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	CapturedAt     string   `json:"captured_at,omitempty"`
}

// IngestPosition handles one position sample and returns any confirmed zone
// transitions
func (h *PositionHandler) IngestPosition(c echo.Context) error {
	var req PositionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid position payload")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.PositionInput{
		TouristID:      req.TouristID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
		CapturedAt:     req.CapturedAt,
	}

	transitions, err := h.trackingUC.IngestSample(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"transitions": transitions,
	}, "Position sample processed")
}

// GetMembership handles retrieving the tracked zone membership of a tourist
func (h *PositionHandler) GetMembership(c echo.Context) error {
	touristID := c.Param("touristId")
	if touristID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing tourist ID")
	}

	return response.Success(c, http.StatusOK, h.trackingUC.Membership(touristID), "Membership retrieved successfully")
}

// handleAppError handles application errors
func (h *PositionHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
