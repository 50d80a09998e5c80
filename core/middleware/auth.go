package middleware

import (
	"crypto/subtle"

	"netbox-importer/core/server"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader is the request header carrying the API key.
const APIKeyHeader = "X-API-Key"

// Auth validates the API key on every request. An empty configured key
// disables the check.
func Auth(cfg server.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.AuthEnabled() {
			return c.Next()
		}
		key := c.Get(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid api key",
			})
		}
		return c.Next()
	}
}
