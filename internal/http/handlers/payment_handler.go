package handlers

import (
	"multiciber/internal/domain"
	"multiciber/internal/repos"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	Payments *repos.PaymentRepo
}

// GET /api/payments?referenceType=sale&referenceId=...
// Payments are append-only, so this surface only reads.
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	refType := c.Query("referenceType")
	refID := c.Query("referenceId")

	if refType != "" || refID != "" {
		if refType != string(domain.RefSale) && refType != string(domain.RefExpense) {
			return badRequest(c, "referenceType must be sale or expense")
		}
		id, okID := validate.ID(refID)
		if !okID {
			return badRequest(c, "invalid referenceId")
		}
		out, err := h.Payments.ListByReference(ownerID(c), domain.ReferenceType(refType), id)
		if err != nil {
			return svcError(c, "payment.list.fail", err)
		}
		return ok(c, out)
	}

	out, err := h.Payments.List(ownerID(c), c.QueryInt("limit"))
	if err != nil {
		return svcError(c, "payment.list.fail", err)
	}
	return ok(c, out)
}
