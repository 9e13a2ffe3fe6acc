package handlers

import (
	applog "multiciber/internal/log"
	"multiciber/internal/services"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type categoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder" validate:"min=0"`
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.Catalog.ListCategories(ownerID(c))
	if err != nil {
		return svcError(c, "category.list.fail", err)
	}
	return ok(c, out)
}

// POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req categoryRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid category payload")
	}
	name, okName := validate.Name(req.Name)
	if !okName {
		return badRequest(c, "invalid category name")
	}
	cat, err := h.Catalog.CreateCategory(ownerID(c), services.CategoryInput{
		Name: name, Color: req.Color, Icon: req.Icon, SortOrder: req.SortOrder,
	})
	if err != nil {
		return svcError(c, "category.create.fail", err)
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID})
	return created(c, cat)
}

// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	var req categoryRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid category payload")
	}
	cat, err := h.Catalog.UpdateCategory(ownerID(c), id, services.CategoryInput{
		Name: req.Name, Color: req.Color, Icon: req.Icon, SortOrder: req.SortOrder,
	})
	if err != nil {
		return svcError(c, "category.update.fail", err)
	}
	return ok(c, cat)
}

// DELETE /api/categories/:id — refused while active products reference the name.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if err := h.Catalog.DeleteCategory(ownerID(c), id); err != nil {
		return svcError(c, "category.delete.fail", err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return ok(c, nil)
}
