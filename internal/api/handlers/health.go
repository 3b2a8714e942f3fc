package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/lineupiq/pkg/database"
)

// HealthStatus is the payload for health and readiness checks.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves health and readiness endpoints.
type HealthHandler struct {
	db     *database.DB
	redis  *redis.Client
	logger *logrus.Logger
}

func NewHealthHandler(db *database.DB, redis *redis.Client, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  redis,
		logger: logger,
	}
}

// GetHealth returns the basic health status. The database is required; the
// report cache only degrades service when down.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := HealthStatus{
		Status:    "ok",
		Service:   "lineupiq",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if err := h.db.HealthCheck(); err != nil {
		response.Status = "unhealthy"
		response.Checks["database"] = "failed: " + err.Error()
	} else {
		response.Checks["database"] = "ok"
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		if response.Status == "ok" {
			response.Status = "degraded"
		}
		response.Checks["redis"] = "failed: " + err.Error()
	} else {
		response.Checks["redis"] = "ok"
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// GetReady reports readiness to take traffic.
func (h *HealthHandler) GetReady(c *gin.Context) {
	if err := h.db.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthStatus{
			Status:    "not_ready",
			Service:   "lineupiq",
			Timestamp: time.Now(),
			Checks:    map[string]string{"database": "failed: " + err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, HealthStatus{
		Status:    "ready",
		Service:   "lineupiq",
		Timestamp: time.Now(),
	})
}
