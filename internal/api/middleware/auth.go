package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/kyc-labs/facematch/internal/domain"
)

// HeaderAPIKey is the header carrying the shared API key.
const HeaderAPIKey = "X-API-Key"

// APIKeyAuth guards the verification routes with a single shared key. With
// no key configured the middleware is a pass-through, which keeps local
// development friction-free.
func APIKeyAuth(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Next()
		}

		provided := c.Get(HeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return domain.ErrUnauthorized
		}

		return c.Next()
	}
}
