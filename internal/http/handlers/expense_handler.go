package handlers

import (
	"multiciber/internal/domain"
	applog "multiciber/internal/log"
	"multiciber/internal/services"
	"multiciber/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ExpenseHandler struct {
	Expenses *services.ExpenseService
}

type createExpenseRequest struct {
	Description   string  `json:"description" validate:"required"`
	Amount        float64 `json:"amount" validate:"min=0"`
	Category      string  `json:"category"`
	SupplierID    string  `json:"supplierId"`
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending paid"`
	Recurring     bool    `json:"recurring"`
	Frequency     string  `json:"frequency" validate:"omitempty,oneof=daily weekly monthly yearly"`
	ExpenseDate   string  `json:"expenseDate" validate:"omitempty,datetime=2006-01-02"`
}

type updateExpenseRequest struct {
	Description   *string  `json:"description"`
	Amount        *float64 `json:"amount" validate:"omitempty,min=0"`
	Category      *string  `json:"category"`
	SupplierID    *string  `json:"supplierId"`
	PaymentMethod *string  `json:"paymentMethod"`
	Status        *string  `json:"status" validate:"omitempty,oneof=pending paid"`
	Recurring     *bool    `json:"recurring"`
	Frequency     *string  `json:"frequency" validate:"omitempty,oneof=daily weekly monthly yearly"`
	ExpenseDate   *string  `json:"expenseDate" validate:"omitempty,datetime=2006-01-02"`
}

// POST /api/expenses
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var req createExpenseRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid expense payload")
	}
	e, err := h.Expenses.Create(ownerID(c), services.CreateExpenseInput{
		Description:   req.Description,
		Amount:        decimal.NewFromFloat(req.Amount),
		Category:      req.Category,
		SupplierID:    req.SupplierID,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.ExpenseStatus(req.Status),
		Recurring:     req.Recurring,
		Frequency:     req.Frequency,
		ExpenseDate:   req.ExpenseDate,
	})
	if err != nil {
		return svcError(c, "expense.create.fail", err)
	}
	applog.Audit(c, "expense.create", map[string]any{"expense_id": e.ID, "amount": e.Amount.String()})
	return created(c, e)
}

// GET /api/expenses
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	status := domain.ExpenseStatus(c.Query("status"))
	if status != "" && status != domain.ExpensePending && status != domain.ExpensePaid {
		return badRequest(c, "invalid status filter")
	}
	out, err := h.Expenses.List(ownerID(c), status, c.QueryInt("limit"))
	if err != nil {
		return svcError(c, "expense.list.fail", err)
	}
	return ok(c, out)
}

// GET /api/expenses/:id
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	e, err := h.Expenses.Get(ownerID(c), id)
	if err != nil {
		return svcError(c, "expense.get.fail", err)
	}
	return ok(c, e)
}

// PUT /api/expenses/:id — pending→paid creates the settlement Payment.
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	var req updateExpenseRequest
	if !parseBody(c, &req) {
		return badRequest(c, "invalid expense payload")
	}
	in := services.UpdateExpenseInput{
		Description:   req.Description,
		Category:      req.Category,
		SupplierID:    req.SupplierID,
		PaymentMethod: req.PaymentMethod,
		Recurring:     req.Recurring,
		Frequency:     req.Frequency,
		ExpenseDate:   req.ExpenseDate,
	}
	if req.Amount != nil {
		amt := decimal.NewFromFloat(*req.Amount)
		in.Amount = &amt
	}
	if req.Status != nil {
		st := domain.ExpenseStatus(*req.Status)
		in.Status = &st
	}
	e, err := h.Expenses.Update(ownerID(c), id, in)
	if err != nil {
		return svcError(c, "expense.update.fail", err)
	}
	applog.Audit(c, "expense.update", map[string]any{"expense_id": e.ID, "status": e.Status})
	return ok(c, e)
}

// DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if err := h.Expenses.Delete(ownerID(c), id); err != nil {
		return svcError(c, "expense.delete.fail", err)
	}
	applog.Audit(c, "expense.delete", map[string]any{"expense_id": id})
	return ok(c, nil)
}
