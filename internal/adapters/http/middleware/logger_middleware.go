package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookshelf/pkg/logger"
)

// NewLoggerMiddleware логирует каждый запрос и передает ошибки обработчиков в errorHandler.
func NewLoggerMiddleware(errorHandler fiber.ErrorHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		c.Set(HeaderRequestID, requestID)

		requestCtx := logger.NewRequestIDContext(c.Context(), requestID)
		c.Locals(localsRequestContext, requestCtx)

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)

		log.Debug(requestCtx, "Request started")

		if err := c.Next(); err != nil {
			if handlerErr := errorHandler(c, err); handlerErr != nil {
				log.Error(requestCtx, "Failed to send error response", zap.Error(handlerErr))
			}
		}

		log.Info(requestCtx, "Request completed",
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)))
		return nil
	}
}
