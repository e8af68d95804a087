package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse defines the data the Health
// REST endpoint returns.
type HealthResponse struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Health is used to determine if matchd is healthy. It touches
// neither the job registry nor the cache.
func Health(c echo.Context) error {
	return c.JSON(
		http.StatusOK,
		HealthResponse{
			Status:    Healthy,
			Timestamp: time.Now().UTC(),
		},
	)
}

// Status enumerates the health statuses of matchd.
type Status string

const (
	// Healthy implies matchd is having no major issues.
	Healthy Status = "healthy"
)
