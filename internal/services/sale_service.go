package services

import (
	"errors"

	"multiciber/internal/domain"
	"multiciber/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyItems     = errors.New("sale requires at least one item")
	ErrAmountRequired = errors.New("free-form sale requires a positive amount")
	ErrBadQuantity    = errors.New("item quantity must be at least 1")
	ErrNegativeTotal  = errors.New("discount exceeds subtotal")
	ErrBadAmount      = errors.New("amount cannot be negative")
)

// FreeSaleItemName is the synthetic line item carried by free-form sales so
// the subtotal/total invariants hold uniformly.
const FreeSaleItemName = "Venta libre"

type SaleItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

type CreateSaleInput struct {
	Type          domain.SaleType
	Status        domain.SaleStatus
	PaymentMethod string
	Items         []SaleItemInput
	Amount        decimal.Decimal // free-form sales only
	Discount      decimal.Decimal
	PaidAmount    decimal.Decimal // only meaningful when Status is debt
	ClientID      string
	Notes         string
}

type UpdateSaleInput struct {
	Status        *domain.SaleStatus
	Notes         *string
	PaymentMethod *string
	ClientID      *string
	PaidAmount    *decimal.Decimal
}

// SaleService is the settlement engine: it owns every derived field on a sale
// (subtotal, total, paid/debt split, status) so handlers never compute money.
type SaleService struct {
	Sales    *repos.SaleRepo
	Products *repos.ProductRepo
}

func NewSaleService(sales *repos.SaleRepo, products *repos.ProductRepo) *SaleService {
	return &SaleService{Sales: sales, Products: products}
}

func (s *SaleService) Create(ownerID string, in CreateSaleInput) (domain.Sale, error) {
	sale := domain.Sale{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Type:          in.Type,
		PaymentMethod: in.PaymentMethod,
		Discount:      in.Discount,
		ClientID:      in.ClientID,
		Notes:         in.Notes,
		CreatedAt:     repos.Now(),
	}
	if in.Discount.IsNegative() {
		return domain.Sale{}, ErrBadAmount
	}

	if in.Type == domain.SaleFree {
		if !in.Amount.IsPositive() {
			return domain.Sale{}, ErrAmountRequired
		}
		sale.Items = []domain.SaleItem{{
			SaleID:      sale.ID,
			ProductName: FreeSaleItemName,
			Quantity:    1,
			UnitPrice:   in.Amount,
			LineTotal:   in.Amount,
		}}
	} else {
		if len(in.Items) == 0 {
			return domain.Sale{}, ErrEmptyItems
		}
		for _, it := range in.Items {
			if it.Quantity < 1 {
				return domain.Sale{}, ErrBadQuantity
			}
			if it.UnitPrice.IsNegative() {
				return domain.Sale{}, ErrBadAmount
			}
			line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			sale.Items = append(sale.Items, domain.SaleItem{
				SaleID:      sale.ID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				LineTotal:   line,
			})
		}
	}

	sale.Subtotal = decimal.Zero
	for _, it := range sale.Items {
		sale.Subtotal = sale.Subtotal.Add(it.LineTotal)
	}
	sale.Total = sale.Subtotal.Sub(sale.Discount)
	if sale.Total.IsNegative() {
		return domain.Sale{}, ErrNegativeTotal
	}

	switch in.Status {
	case domain.SaleDebt:
		paid := clamp(in.PaidAmount, sale.Total)
		sale.PaidAmount = paid
		sale.DebtAmount = sale.Total.Sub(paid)
		sale.Status = domain.SaleDebt
		if sale.DebtAmount.IsZero() {
			sale.Status = domain.SalePaid
		}
	default:
		sale.Status = domain.SalePaid
		sale.PaidAmount = sale.Total
		sale.DebtAmount = decimal.Zero
	}

	if err := s.Sales.Insert(&sale); err != nil {
		return domain.Sale{}, err
	}

	// Product-type sales maintain stock by item name. Names that match no
	// active product (ad-hoc lines) are simply skipped by the UPDATE.
	if sale.Type == domain.SaleProduct {
		for _, it := range sale.Items {
			if err := s.Products.DecrementStock(ownerID, it.ProductName, it.Quantity); err != nil {
				return domain.Sale{}, err
			}
		}
	}
	return sale, nil
}

// RecordPayment applies a new cumulative paid amount and recomputes the
// debt/status split. Applying the same amount twice is a no-op: the second
// call produces no payment delta and the same final state.
func (s *SaleService) RecordPayment(ownerID, saleID string, newPaid decimal.Decimal, method string) (domain.Sale, error) {
	sale, err := s.Sales.Get(ownerID, saleID)
	if err != nil {
		return domain.Sale{}, err
	}
	return s.settle(&sale, newPaid, method)
}

func (s *SaleService) settle(sale *domain.Sale, newPaid decimal.Decimal, method string) (domain.Sale, error) {
	if newPaid.IsNegative() {
		return domain.Sale{}, ErrBadAmount
	}
	paid := clamp(newPaid, sale.Total)
	delta := paid.Sub(sale.PaidAmount)

	sale.PaidAmount = paid
	sale.DebtAmount = sale.Total.Sub(paid)
	if sale.DebtAmount.IsZero() {
		sale.Status = domain.SalePaid
		sale.PaidAmount = sale.Total
	} else {
		sale.Status = domain.SaleDebt
	}
	if method != "" {
		sale.PaymentMethod = method
	}

	var pay *domain.Payment
	if delta.IsPositive() {
		pay = &domain.Payment{
			ID:            uuid.NewString(),
			OwnerID:       sale.OwnerID,
			ReferenceType: domain.RefSale,
			ReferenceID:   sale.ID,
			Amount:        delta,
			PaymentMethod: sale.PaymentMethod,
			PaymentDate:   repos.Now(),
		}
	}
	if err := s.Sales.UpdateSettlement(sale, pay); err != nil {
		return domain.Sale{}, err
	}
	return *sale, nil
}

// Update applies a partial field set. A present PaidAmount triggers the
// settlement recomputation; setting status to paid without an amount settles
// the full total.
func (s *SaleService) Update(ownerID, saleID string, in UpdateSaleInput) (domain.Sale, error) {
	sale, err := s.Sales.Get(ownerID, saleID)
	if err != nil {
		return domain.Sale{}, err
	}
	if in.Notes != nil {
		sale.Notes = *in.Notes
	}
	if in.ClientID != nil {
		sale.ClientID = *in.ClientID
	}
	method := ""
	if in.PaymentMethod != nil {
		method = *in.PaymentMethod
	}

	switch {
	case in.PaidAmount != nil:
		return s.settle(&sale, *in.PaidAmount, method)
	case in.Status != nil && *in.Status == domain.SalePaid && sale.Status == domain.SaleDebt:
		return s.settle(&sale, sale.Total, method)
	default:
		if method != "" {
			sale.PaymentMethod = method
		}
		if err := s.Sales.UpdateSettlement(&sale, nil); err != nil {
			return domain.Sale{}, err
		}
		return sale, nil
	}
}

// Delete hard-deletes the sale. Related Payment rows stay behind as audit
// trail; orphaned references are tolerated.
func (s *SaleService) Delete(ownerID, saleID string) error {
	return s.Sales.Delete(ownerID, saleID)
}

func (s *SaleService) Get(ownerID, saleID string) (domain.Sale, error) {
	return s.Sales.Get(ownerID, saleID)
}

func (s *SaleService) List(ownerID string, status domain.SaleStatus, limit int) ([]domain.Sale, error) {
	return s.Sales.List(ownerID, status, limit)
}

func clamp(v, max decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}
