package handlers

import (
	"errors"

	applog "multiciber/internal/log"
	"multiciber/internal/services"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

type settingsRequest struct {
	BusinessName  string `json:"businessName"`
	Currency      string `json:"currency" validate:"omitempty,len=3"`
	CatalogPublic *bool  `json:"catalogPublic"`
}

// GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.Settings.Get(ownerID(c))
	if err != nil {
		return svcError(c, "settings.get.fail", err)
	}
	return ok(c, s)
}

// PUT /api/settings
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req settingsRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid settings payload")
	}
	s, err := h.Settings.Update(ownerID(c), services.SettingsInput{
		BusinessName:  req.BusinessName,
		Currency:      req.Currency,
		CatalogPublic: req.CatalogPublic,
	})
	if err != nil {
		return svcError(c, "settings.update.fail", err)
	}
	applog.Audit(c, "settings.update", map[string]any{"slug": s.Slug})
	return ok(c, s)
}

// GET /api/public/:slug — unauthenticated storefront catalog.
func (h *SettingsHandler) PublicCatalog(c *fiber.Ctx) error {
	slug, okSlug := validate.Slug(c.Params("slug"))
	if !okSlug {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	cat, err := h.Settings.Catalog(slug)
	if err != nil {
		if errors.Is(err, services.ErrCatalogUnavailable) {
			return fail(c, fiber.StatusNotFound, "not found")
		}
		return svcError(c, "public.catalog.fail", err)
	}
	return ok(c, cat)
}
