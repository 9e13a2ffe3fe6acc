package services

import (
	"errors"

	"multiciber/internal/domain"
	"multiciber/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrDescriptionRequired = errors.New("expense requires a description")

type CreateExpenseInput struct {
	Description   string
	Amount        decimal.Decimal
	Category      string
	SupplierID    string
	PaymentMethod string
	Status        domain.ExpenseStatus
	Recurring     bool
	Frequency     string
	ExpenseDate   string // YYYY-MM-DD, defaults to today
}

type UpdateExpenseInput struct {
	Description   *string
	Amount        *decimal.Decimal
	Category      *string
	SupplierID    *string
	PaymentMethod *string
	Status        *domain.ExpenseStatus
	Recurring     *bool
	Frequency     *string
	ExpenseDate   *string
}

// ExpenseService mirrors the sale engine for the pending→paid transition:
// exactly one Payment row per settlement event, written in the same
// transaction as the status change. Expenses have no partial-payment concept.
type ExpenseService struct {
	Expenses *repos.ExpenseRepo
}

func NewExpenseService(expenses *repos.ExpenseRepo) *ExpenseService {
	return &ExpenseService{Expenses: expenses}
}

func (s *ExpenseService) Create(ownerID string, in CreateExpenseInput) (domain.Expense, error) {
	if in.Description == "" {
		return domain.Expense{}, ErrDescriptionRequired
	}
	if in.Amount.IsNegative() {
		return domain.Expense{}, ErrBadAmount
	}
	e := domain.Expense{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Description:   in.Description,
		Amount:        in.Amount,
		Category:      in.Category,
		SupplierID:    in.SupplierID,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
		Recurring:     in.Recurring,
		Frequency:     in.Frequency,
		ExpenseDate:   in.ExpenseDate,
		CreatedAt:     repos.Now(),
	}
	if e.Status == "" {
		e.Status = domain.ExpensePending
	}
	if e.PaymentMethod == "" {
		e.PaymentMethod = "cash"
	}
	if e.ExpenseDate == "" {
		e.ExpenseDate = repos.Now()[:10]
	}
	if err := s.Expenses.Insert(&e); err != nil {
		return domain.Expense{}, err
	}
	// An expense created directly as paid is a settlement event too.
	if e.Status == domain.ExpensePaid {
		if err := s.Expenses.Update(&e, s.paymentFor(&e)); err != nil {
			return domain.Expense{}, err
		}
	}
	return e, nil
}

func (s *ExpenseService) Update(ownerID, id string, in UpdateExpenseInput) (domain.Expense, error) {
	e, err := s.Expenses.Get(ownerID, id)
	if err != nil {
		return domain.Expense{}, err
	}
	wasPaid := e.Status == domain.ExpensePaid

	if in.Description != nil {
		if *in.Description == "" {
			return domain.Expense{}, ErrDescriptionRequired
		}
		e.Description = *in.Description
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return domain.Expense{}, ErrBadAmount
		}
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.SupplierID != nil {
		e.SupplierID = *in.SupplierID
	}
	if in.PaymentMethod != nil && *in.PaymentMethod != "" {
		e.PaymentMethod = *in.PaymentMethod
	}
	if in.Recurring != nil {
		e.Recurring = *in.Recurring
	}
	if in.Frequency != nil {
		e.Frequency = *in.Frequency
	}
	if in.ExpenseDate != nil && *in.ExpenseDate != "" {
		e.ExpenseDate = *in.ExpenseDate
	}
	if in.Status != nil {
		e.Status = *in.Status
	}

	var pay *domain.Payment
	if !wasPaid && e.Status == domain.ExpensePaid {
		pay = s.paymentFor(&e)
	}
	if err := s.Expenses.Update(&e, pay); err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}

func (s *ExpenseService) paymentFor(e *domain.Expense) *domain.Payment {
	return &domain.Payment{
		ID:            uuid.NewString(),
		OwnerID:       e.OwnerID,
		ReferenceType: domain.RefExpense,
		ReferenceID:   e.ID,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
		PaymentDate:   repos.Now(),
	}
}

func (s *ExpenseService) Get(ownerID, id string) (domain.Expense, error) {
	return s.Expenses.Get(ownerID, id)
}

func (s *ExpenseService) List(ownerID string, status domain.ExpenseStatus, limit int) ([]domain.Expense, error) {
	return s.Expenses.List(ownerID, status, limit)
}

func (s *ExpenseService) Delete(ownerID, id string) error {
	return s.Expenses.Delete(ownerID, id)
}
