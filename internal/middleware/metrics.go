package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "plume_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// NotificationsEmitted counts persisted notifications by type.
var NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "plume_notifications_emitted_total",
	Help: "Total number of notifications created by type",
}, []string{"type"})

// MediaReleaseFailures counts best-effort media release attempts that failed.
var MediaReleaseFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "plume_media_release_failures_total",
	Help: "Total number of failed media resource releases",
})

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The instance is shared: the underlying collectors register once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware registers the /metrics endpoint and returns the request
// instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus, app *fiber.App) fiber.Handler {
	prom.RegisterAt(app, "/metrics")
	return prom.Middleware
}
