package api

import (
	"github.com/gofiber/fiber/v2"
)

const CookieName = "jwt_token"

// authenticated resolves the session cookie to an account and stashes both
// in the request locals. The actor's identity always comes from the verified
// session; client supplied identity headers are never trusted.
func (v *Deps) authenticated(c *fiber.Ctx) error {
	token := c.Cookies(CookieName)
	if len(token) == 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	account, session, err := v.Auth.Authenticate(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals("user", account)
	c.Locals("session", session)

	return c.Next()
}
