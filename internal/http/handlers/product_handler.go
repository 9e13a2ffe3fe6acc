package handlers

import (
	applog "multiciber/internal/log"
	"multiciber/internal/services"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"min=0"`
	Cost     float64 `json:"cost" validate:"min=0"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Stock    int     `json:"stock" validate:"min=0"`
	MinStock int     `json:"minStock" validate:"min=0"`
	Barcode  string  `json:"barcode"`
	ImageURL string  `json:"imageUrl"`
}

func (r productRequest) toInput() (services.ProductInput, bool) {
	barcode, okBar := validate.Barcode(r.Barcode)
	name, okName := validate.Name(r.Name)
	if !okBar || !okName {
		return services.ProductInput{}, false
	}
	return services.ProductInput{
		Name:     name,
		Price:    decimal.NewFromFloat(r.Price),
		Cost:     decimal.NewFromFloat(r.Cost),
		Category: r.Category,
		Unit:     r.Unit,
		Stock:    r.Stock,
		MinStock: r.MinStock,
		Barcode:  barcode,
		ImageURL: r.ImageURL,
	}, true
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid product payload")
	}
	in, okIn := req.toInput()
	if !okIn {
		return badRequest(c, "invalid name or barcode")
	}
	p, err := h.Catalog.CreateProduct(ownerID(c), in)
	if err != nil {
		return svcError(c, "product.create.fail", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return created(c, p)
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.Catalog.ListProducts(ownerID(c), c.Query("category"), c.Query("q"))
	if err != nil {
		return svcError(c, "product.list.fail", err)
	}
	return ok(c, out)
}

// GET /api/products/low-stock
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.Catalog.LowStock(ownerID(c))
	if err != nil {
		return svcError(c, "product.lowstock.fail", err)
	}
	return ok(c, out)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	p, err := h.Catalog.GetProduct(ownerID(c), id)
	if err != nil {
		return svcError(c, "product.get.fail", err)
	}
	return ok(c, p)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	var req productRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid product payload")
	}
	in, okIn := req.toInput()
	if !okIn {
		return badRequest(c, "invalid name or barcode")
	}
	p, err := h.Catalog.UpdateProduct(ownerID(c), id, in)
	if err != nil {
		return svcError(c, "product.update.fail", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": p.ID})
	return ok(c, p)
}

// DELETE /api/products/:id — soft delete only.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if err := h.Catalog.DeleteProduct(ownerID(c), id); err != nil {
		return svcError(c, "product.delete.fail", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return ok(c, nil)
}
