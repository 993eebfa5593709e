package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/meetdesk/dashboard/docs"
	"github.com/meetdesk/dashboard/internal/infrastructure/http/handlers"
)

// RegisterOps mounts the operational endpoints: health probes, Prometheus
// metrics and the API documentation. db and rdb may be nil when the
// corresponding backend is not in use.
func RegisterOps(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
