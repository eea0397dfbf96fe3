package requestid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header carrying the request ID in and out.
const HeaderName = "X-Request-ID"

// New returns middleware that ensures every request carries an ID.
// An inbound X-Request-ID is honored so callers can correlate across
// services; otherwise a fresh UUID is generated. The ID is stored in
// locals under "request_id" for logger.WithRequestID and echoed in the
// response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("request_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
