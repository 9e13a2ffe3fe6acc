package handlers

import (
	applog "multiciber/internal/log"
	"multiciber/internal/services"

	"github.com/gofiber/fiber/v2"
)

const tokenCookie = "token"

// RequireUser verifies the session token cookie and stores the owner identity
// in locals. Missing, malformed, and expired tokens all yield the same 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Cookies(tokenCookie)
		if tok == "" {
			return fail(c, fiber.StatusUnauthorized, "unauthorized")
		}
		u, err := auth.VerifyToken(tok)
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return fail(c, fiber.StatusUnauthorized, "unauthorized")
		}
		c.Locals("user", u)
		c.Locals("ownerID", u.ID)
		return c.Next()
	}
}

func ownerID(c *fiber.Ctx) string {
	oid, _ := c.Locals("ownerID").(string)
	return oid
}
