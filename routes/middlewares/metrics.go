package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/metrics"
)

// Metrics records every request in prometheus and the access log.
func Metrics(c *fiber.Ctx) error {
	start := time.Now()

	metrics.IncInFlight()
	defer metrics.DecInFlight()

	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	path := c.Route().Path
	duration := time.Since(start)

	metrics.RecordHTTPRequest(c.Method(), path, strconv.Itoa(status), duration)

	config.Logger.WithFields(map[string]interface{}{
		"method":   c.Method(),
		"path":     c.Path(),
		"route":    path,
		"status":   status,
		"duration": duration.String(),
		"ip":       c.IP(),
	}).Info("request")

	return err
}
