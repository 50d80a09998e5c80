package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RayIDHeader is the response header carrying the request id.
const RayIDHeader = "X-Ray-Id"

// RayID assigns every request a unique id, stored in the request locals
// under "ray_id" and echoed in the response headers. A client-supplied id
// is kept so traces can span services.
func RayID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RayIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(RayIDHeader, rid)
		return c.Next()
	}
}
