package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the generated RayID.
const HeaderName = "X-Ray-Id"

// LocalsKey is the fiber.Ctx.Locals key the RayID is stored under.
const LocalsKey = "ray_id"

// New returns a Fiber handler that assigns a RayID to every request.
// An inbound X-Ray-Id header is honoured so upstream proxies can trace calls.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
