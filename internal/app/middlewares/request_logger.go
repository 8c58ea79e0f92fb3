package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type RequestLogger struct {
	logger *logrus.Logger
}

func NewRequestLogger(logger *logrus.Logger) *RequestLogger {
	return &RequestLogger{
		logger: logger,
	}
}

// Handle tags the request with an id, echoes it back and logs the request
// once it has been served.
func (m *RequestLogger) Handle(c *fiber.Ctx) error {
	start := time.Now()

	requestID := c.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Locals("request_id", requestID)
	c.Set(RequestIDHeader, requestID)

	err := c.Next()
	if err != nil {
		// Render now so the logged status is the one the client sees.
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	entry := m.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"latency_ms": time.Since(start).Milliseconds(),
	})
	if status >= fiber.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Info("request served")
	}

	return nil
}
