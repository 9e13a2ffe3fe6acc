package handlers

import (
	"errors"
	"time"

	"multiciber/internal/domain"
	applog "multiciber/internal/log"
	"multiciber/internal/services"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func setTokenCookie(c *fiber.Ctx, tok string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    tok,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind HTTPS
		Expires:  time.Now().Add(ttl),
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if !parseBody(c, &req) {
		return badRequest(c, "email and password are required")
	}
	email, emailOK := validate.Email(req.Email)
	name, nameOK := validate.Name(req.Name)
	if !emailOK || !nameOK {
		return badRequest(c, "invalid name or email")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "password must be 8-64 characters with letters and digits")
	}

	u, tok, err := h.Auth.Register(name, email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return badRequest(c, err.Error())
		}
		return svcError(c, "auth.register.fail", err)
	}
	setTokenCookie(c, tok, h.Auth.TokenTTL)
	applog.Audit(c, "auth.register", map[string]any{"email": email})
	return created(c, u)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if !parseBody(c, &req) {
		return badRequest(c, "email and password are required")
	}
	email, okEmail := validate.Email(req.Email)
	if !okEmail {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	u, tok, err := h.Auth.Login(email, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrBadCreds) {
			return svcError(c, "auth.login.fail", err)
		}
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	setTokenCookie(c, tok, h.Auth.TokenTTL)
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return ok(c, u)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return ok(c, nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return ok(c, u)
}
