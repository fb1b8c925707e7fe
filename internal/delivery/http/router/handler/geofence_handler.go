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

// GeofenceHandlerParams holds dependencies for GeofenceHandler, injected by Fx.
type GeofenceHandlerParams struct {
	fx.In

	GeofenceUC usecase.GeofenceUsecase
	Logger     *slog.Logger
}

// GeofenceHandler holds dependencies for zone registry handlers
type GeofenceHandler struct {
	geofenceUC usecase.GeofenceUsecase
	logger     *slog.Logger
}

// NewGeofenceHandler is the constructor for GeofenceHandler
func NewGeofenceHandler(params GeofenceHandlerParams) *GeofenceHandler {
	return &GeofenceHandler{
		geofenceUC: params.GeofenceUC,
		logger:     params.Logger,
	}
}

// ZonePayload is a single zone definition in a registry load request
type ZonePayload struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	Type         string  `json:"type"`
	IsActive     bool    `json:"is_active"`
}

// LoadZonesRequest represents the request body for a registry load. The full
// zone set is validated together; a single bad zone rejects the whole load.
type LoadZonesRequest struct {
	Zones []ZonePayload `json:"zones" validate:"required"`
}

// LoadZones handles a full-set replacement of the zone registry
func (h *GeofenceHandler) LoadZones(c echo.Context) error {
	var req LoadZonesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid zone registry payload")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	zones := make([]usecase.ZoneInput, 0, len(req.Zones))
	for _, zone := range req.Zones {
		zones = append(zones, usecase.ZoneInput{
			ID:           zone.ID,
			Name:         zone.Name,
			Latitude:     zone.Latitude,
			Longitude:    zone.Longitude,
			RadiusMeters: zone.RadiusMeters,
			Type:         zone.Type,
			IsActive:     zone.IsActive,
		})
	}

	snapshot, err := h.geofenceUC.LoadZones(c.Request().Context(), zones)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Zone registry loaded successfully")
}

// GetSnapshot handles retrieving the currently published registry snapshot
func (h *GeofenceHandler) GetSnapshot(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.geofenceUC.Snapshot(), "Zone registry retrieved successfully")
}

// handleAppError handles application errors
func (h *GeofenceHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
