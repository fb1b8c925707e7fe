// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"sentinel/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AlertHandler      *handler.AlertHandler
	GeofenceHandler   *handler.GeofenceHandler
	PositionHandler   *handler.PositionHandler
	MonitoringHandler *handler.MonitoringHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	alertHandler      *handler.AlertHandler
	geofenceHandler   *handler.GeofenceHandler
	positionHandler   *handler.PositionHandler
	monitoringHandler *handler.MonitoringHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		alertHandler:      params.AlertHandler,
		geofenceHandler:   params.GeofenceHandler,
		positionHandler:   params.PositionHandler,
		monitoringHandler: params.MonitoringHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Emergency alert routes
	alertGroup := e.Group("/alerts")
	{
		alertGroup.POST("/panic", r.alertHandler.DispatchPanic)
		alertGroup.GET("", r.alertHandler.ListAlerts)
		alertGroup.PATCH("/:id/status", r.alertHandler.UpdateAlertStatus)
	}

	// Position ingestion routes
	positionGroup := e.Group("/positions")
	{
		positionGroup.POST("", r.positionHandler.IngestPosition)
		positionGroup.GET("/:touristId/membership", r.positionHandler.GetMembership)
	}

	// Monitoring dashboard feed
	monitoringGroup := e.Group("/monitoring")
	{
		monitoringGroup.GET("/alerts", r.monitoringHandler.RecentAlerts)
		monitoringGroup.GET("/zone-events", r.monitoringHandler.RecentZoneEvents)
	}

	// Zone registry administration
	adminGroup := e.Group("/admin")
	{
		adminGroup.POST("/geofences", r.geofenceHandler.LoadZones)
		adminGroup.GET("/geofences", r.geofenceHandler.GetSnapshot)
	}
}
