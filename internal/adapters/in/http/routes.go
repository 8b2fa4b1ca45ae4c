package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the API, /health and /metrics on e.
func RegisterRoutes(e *echo.Echo, s *Server, gatherer prometheus.Gatherer) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")
	api.GET("/transitions", s.CanTransition)
	api.POST("/expirations/sweep", s.SweepExpirations)

	docs := api.Group("/documents", RequireScope)
	docs.POST("", s.CreateDocument)
	docs.POST("/:id/transitions", s.ApplyTransition)
	docs.POST("/:id/versions", s.CreateVersion)
	docs.POST("/:id/activate", s.ActivateVersion)
	docs.GET("/:id/lineage", s.GetLineage)
	docs.GET("/:id/history", s.GetHistory)
}
