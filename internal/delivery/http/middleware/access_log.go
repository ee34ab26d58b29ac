package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()

		// Auth middleware runs inside Next, so the user id is only
		// present for requests that passed token verification.
		user := "-"
		if uid, ok := c.Locals(CtxUserIDKey).(uuid.UUID); ok {
			user = uid.String()
		}

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"http=access rid=%s ip=%s method=%s path=%s status=%d user=%s latency=%s bytes=%d ua=%q",
				rid, c.IP(), c.Method(), c.OriginalURL(), status, user, dur,
				c.Response().Header.ContentLength(), c.Get("User-Agent"),
			)
		}

		return err
	}
}
