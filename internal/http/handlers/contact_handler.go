package handlers

import (
	"multiciber/internal/domain"
	applog "multiciber/internal/log"
	"multiciber/internal/repos"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ContactHandler serves /api/clients and /api/suppliers; both are the same
// contact shape over different tables.
type ContactHandler struct {
	Clients   *repos.ContactRepo
	Suppliers *repos.ContactRepo
	Sales     *repos.SaleRepo
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (h *ContactHandler) repoFor(kind string) *repos.ContactRepo {
	if kind == "supplier" {
		return h.Suppliers
	}
	return h.Clients
}

func (h *ContactHandler) list(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.repoFor(kind).List(ownerID(c))
		if err != nil {
			return svcError(c, kind+".list.fail", err)
		}
		return ok(c, out)
	}
}

func (h *ContactHandler) create(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactRequest
		if !parseBody(c, &req) {
			return badRequest(c, "name is required")
		}
		name, okName := validate.Name(req.Name)
		phone, okPhone := validate.Phone(req.Phone)
		if !okName || !okPhone {
			return badRequest(c, "invalid name or phone")
		}
		contact := domain.Contact{
			ID:      uuid.NewString(),
			OwnerID: ownerID(c),
			Name:    name,
			Phone:   phone,
			Email:   req.Email,
			Address: req.Address,
			Notes:   req.Notes,
		}
		if err := h.repoFor(kind).Insert(&contact); err != nil {
			return svcError(c, kind+".create.fail", err)
		}
		applog.Audit(c, kind+".create", map[string]any{"id": contact.ID})
		return created(c, contact)
	}
}

func (h *ContactHandler) update(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, okID := validate.ID(c.Params("id"))
		if !okID {
			return fail(c, fiber.StatusNotFound, "not found")
		}
		var req contactRequest
		if !parseBody(c, &req) {
			return badRequest(c, "name is required")
		}
		name, okName := validate.Name(req.Name)
		phone, okPhone := validate.Phone(req.Phone)
		if !okName || !okPhone {
			return badRequest(c, "invalid name or phone")
		}
		contact := domain.Contact{
			ID:      id,
			OwnerID: ownerID(c),
			Name:    name,
			Phone:   phone,
			Email:   req.Email,
			Address: req.Address,
			Notes:   req.Notes,
		}
		if err := h.repoFor(kind).Update(&contact); err != nil {
			return svcError(c, kind+".update.fail", err)
		}
		return ok(c, contact)
	}
}

func (h *ContactHandler) delete(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, okID := validate.ID(c.Params("id"))
		if !okID {
			return fail(c, fiber.StatusNotFound, "not found")
		}
		if err := h.repoFor(kind).SoftDelete(ownerID(c), id); err != nil {
			return svcError(c, kind+".delete.fail", err)
		}
		applog.Audit(c, kind+".delete", map[string]any{"id": id})
		return ok(c, nil)
	}
}

func (h *ContactHandler) ListClients(c *fiber.Ctx) error    { return h.list("client")(c) }
func (h *ContactHandler) CreateClient(c *fiber.Ctx) error   { return h.create("client")(c) }
func (h *ContactHandler) UpdateClient(c *fiber.Ctx) error   { return h.update("client")(c) }
func (h *ContactHandler) DeleteClient(c *fiber.Ctx) error   { return h.delete("client")(c) }
func (h *ContactHandler) ListSuppliers(c *fiber.Ctx) error  { return h.list("supplier")(c) }
func (h *ContactHandler) CreateSupplier(c *fiber.Ctx) error { return h.create("supplier")(c) }
func (h *ContactHandler) UpdateSupplier(c *fiber.Ctx) error { return h.update("supplier")(c) }
func (h *ContactHandler) DeleteSupplier(c *fiber.Ctx) error { return h.delete("supplier")(c) }

// GET /api/clients/:id/debt — outstanding debt across the client's sales.
func (h *ContactHandler) ClientDebt(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if _, err := h.Clients.Get(ownerID(c), id); err != nil {
		return svcError(c, "client.debt.fail", err)
	}
	debt, err := h.Sales.DebtByClient(ownerID(c), id)
	if err != nil {
		return svcError(c, "client.debt.fail", err)
	}
	return ok(c, fiber.Map{"clientId": id, "debt": debt})
}
