// Package api exposes the resolution engine over HTTP for the surrounding
// application: autocomplete suggestions, fuzzy resolution for the
// speech-to-text pipeline, and name correction. The engine itself stays a
// library; this package is the thin hosting surface.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medadhere/drugresolver/config"
	"github.com/medadhere/drugresolver/internal/metrics"
	"github.com/medadhere/drugresolver/services"
)

// API holds dependencies for the HTTP handlers.
type API struct {
	resolver services.Resolver
	status   services.StatusReporter
	settings *config.Settings
}

// NewAPI creates the API handler structure.
func NewAPI(resolver services.Resolver, status services.StatusReporter, settings *config.Settings) *API {
	return &API{
		resolver: resolver,
		status:   status,
		settings: settings,
	}
}

// SetupRoutes defines all routes of the resolution service.
func SetupRoutes(router *gin.Engine, resolver services.Resolver, status services.StatusReporter, settings *config.Settings) {
	apiHandler := NewAPI(resolver, status, settings)

	router.Use(RequestIDMiddleware(), RequestLogMiddleware())

	router.GET("/health", apiHandler.HealthCheckHandler)
	if settings.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/suggest", apiHandler.SuggestHandler)  // autocomplete path
		apiRoutes.GET("/resolve", apiHandler.ResolveHandler)  // fuzzy resolution with kinds/scores
		apiRoutes.POST("/correct", apiHandler.CorrectHandler) // STT post-processing path
		apiRoutes.GET("/records/exact", apiHandler.FindExactHandler)
	}
}

// HealthCheckHandler reports liveness plus the loader's readiness state.
// A degraded engine (dataset source unavailable) still reports 200: the
// process is healthy, it just answers with empty results.
func (api *API) HealthCheckHandler(c *gin.Context) {
	status := api.status.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"ready":        status.Ready,
		"degraded":     status.Degraded,
		"record_count": status.RecordCount,
	})
}
