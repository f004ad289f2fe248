// middleware/drop_auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DropKeyMiddleware guards the ingest routes with the shared drop API key.
// The key comes in X-Api-Key or as a bearer token. With no key configured,
// ingest is open and a warning is logged at startup.
func DropKeyMiddleware(expectedKey string) fiber.Handler {
	if expectedKey == "" {
		log.Println("⚠️  DROP_API_KEY not set — ingest routes are unauthenticated")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		key := c.Get("X-Api-Key")
		if key == "" {
			key = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		}

		if key != expectedKey {
			log.Printf("🚫 [DROP_AUTH] invalid or missing API key for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing drop API key",
			})
		}
		return c.Next()
	}
}
