package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/williandsn10/asbarberpro/internal/api"
	"github.com/williandsn10/asbarberpro/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger wraps the go-redis ping so tests can stub it.
type RedisPinger interface {
	Ping(ctx context.Context) error
}

type redisPing func(ctx context.Context) error

func (f redisPing) Ping(ctx context.Context) error { return f(ctx) }

// @Summary      Health check
// @Description  Reports database and Redis reachability. Responds 503 when either is down.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func healthHandler(database Pinger, rdb RedisPinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		resp := api.HealthResponse{Status: "ok", Database: "ok", Redis: "ok"}
		code := http.StatusOK

		if err := database.PingContext(ctx); err != nil {
			logger.Error("health: database unreachable", "error", err)
			resp.Database = "unavailable"
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if rdb != nil {
			if err := rdb.Ping(ctx); err != nil {
				logger.Error("health: redis unreachable", "error", err)
				resp.Redis = "unavailable"
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		} else {
			resp.Redis = ""
		}

		c.JSON(code, resp)
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
