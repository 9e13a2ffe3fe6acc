package handlers

import (
	"multiciber/internal/domain"
	applog "multiciber/internal/log"
	"multiciber/internal/services"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SaleHandler struct {
	Sales *services.SaleService
}

type saleItemRequest struct {
	ProductName string  `json:"productName" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"min=0"`
}

type createSaleRequest struct {
	Type          string            `json:"type" validate:"required,oneof=product free"`
	Status        string            `json:"status" validate:"required,oneof=paid debt"`
	PaymentMethod string            `json:"paymentMethod" validate:"required"`
	Items         []saleItemRequest `json:"items" validate:"dive"`
	Amount        float64           `json:"amount" validate:"min=0"`
	Discount      float64           `json:"discount" validate:"min=0"`
	PaidAmount    float64           `json:"paidAmount" validate:"min=0"`
	ClientID      string            `json:"clientId"`
	Notes         string            `json:"notes"`
}

type updateSaleRequest struct {
	Status        *string  `json:"status" validate:"omitempty,oneof=paid debt"`
	Notes         *string  `json:"notes"`
	PaymentMethod *string  `json:"paymentMethod"`
	ClientID      *string  `json:"clientId"`
	PaidAmount    *float64 `json:"paidAmount" validate:"omitempty,min=0"`
}

// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req createSaleRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid sale payload")
	}
	in := services.CreateSaleInput{
		Type:          domain.SaleType(req.Type),
		Status:        domain.SaleStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
		Amount:        decimal.NewFromFloat(req.Amount),
		Discount:      decimal.NewFromFloat(req.Discount),
		PaidAmount:    decimal.NewFromFloat(req.PaidAmount),
		ClientID:      req.ClientID,
		Notes:         req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, services.SaleItemInput{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   decimal.NewFromFloat(it.UnitPrice),
		})
	}
	sale, err := h.Sales.Create(ownerID(c), in)
	if err != nil {
		return svcError(c, "sale.create.fail", err)
	}
	applog.Audit(c, "sale.create", map[string]any{"sale_id": sale.ID, "total": sale.Total.String()})
	return created(c, sale)
}

// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	status := domain.SaleStatus(c.Query("status"))
	if status != "" && status != domain.SalePaid && status != domain.SaleDebt {
		return badRequest(c, "invalid status filter")
	}
	sales, err := h.Sales.List(ownerID(c), status, c.QueryInt("limit"))
	if err != nil {
		return svcError(c, "sale.list.fail", err)
	}
	return ok(c, sales)
}

// GET /api/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	sale, err := h.Sales.Get(ownerID(c), id)
	if err != nil {
		return svcError(c, "sale.get.fail", err)
	}
	return ok(c, sale)
}

// PUT /api/sales/:id — a present paidAmount triggers settlement.
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	var req updateSaleRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid sale payload")
	}
	in := services.UpdateSaleInput{
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		ClientID:      req.ClientID,
	}
	if req.Status != nil {
		st := domain.SaleStatus(*req.Status)
		in.Status = &st
	}
	if req.PaidAmount != nil {
		amt := decimal.NewFromFloat(*req.PaidAmount)
		in.PaidAmount = &amt
	}
	sale, err := h.Sales.Update(ownerID(c), id, in)
	if err != nil {
		return svcError(c, "sale.update.fail", err)
	}
	applog.Audit(c, "sale.update", map[string]any{"sale_id": sale.ID, "status": sale.Status})
	return ok(c, sale)
}

// DELETE /api/sales/:id — hard delete; payment rows are kept.
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if err := h.Sales.Delete(ownerID(c), id); err != nil {
		return svcError(c, "sale.delete.fail", err)
	}
	applog.Audit(c, "sale.delete", map[string]any{"sale_id": id})
	return ok(c, nil)
}
