package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"multiciber/internal/domain"
	"multiciber/internal/repos"
	"multiciber/internal/services"
)

const owner = "u-demo"

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	// keep the single in-memory database on one connection
	db.SetMaxOpenConns(1)
	return db
}

func newSaleService(db *sqlx.DB) *services.SaleService {
	return services.NewSaleService(repos.NewSaleRepo(db), repos.NewProductRepo(db))
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func twoItems() []services.SaleItemInput {
	// subtotal 100
	return []services.SaleItemInput{
		{ProductName: "Coca Cola 600ml", Quantity: 2, UnitPrice: dec(20)},
		{ProductName: "Papas fritas", Quantity: 4, UnitPrice: dec(15)},
	}
}

func TestSaleCreate_Totals(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	sale, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SalePaid,
		PaymentMethod: "cash",
		Items:         twoItems(),
		Discount:      dec(10),
	})
	require.NoError(t, err)

	require.True(t, sale.Subtotal.Equal(dec(100)), "subtotal=%s", sale.Subtotal)
	require.True(t, sale.Total.Equal(dec(90)), "total=%s", sale.Total)
	require.Equal(t, domain.SalePaid, sale.Status)
	require.True(t, sale.PaidAmount.Equal(dec(90)))
	require.True(t, sale.DebtAmount.IsZero())

	// line totals were recomputed server-side
	require.Len(t, sale.Items, 2)
	require.True(t, sale.Items[0].LineTotal.Equal(dec(40)))
}

func TestSaleCreate_EmptyItemsRejected(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	_, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SalePaid,
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, services.ErrEmptyItems)

	// nothing persisted
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM sales`))
	require.Zero(t, n)
}

func TestSaleCreate_DiscountExceedsSubtotal(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	_, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SalePaid,
		PaymentMethod: "cash",
		Items:         twoItems(),
		Discount:      dec(150),
	})
	require.ErrorIs(t, err, services.ErrNegativeTotal)
}

func TestSaleCreate_FreeForm(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	_, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleFree,
		Status:        domain.SalePaid,
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, services.ErrAmountRequired)

	sale, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleFree,
		Status:        domain.SalePaid,
		PaymentMethod: "cash",
		Amount:        dec(35),
	})
	require.NoError(t, err)
	require.True(t, sale.Total.Equal(dec(35)))
	require.Len(t, sale.Items, 1)
	require.Equal(t, services.FreeSaleItemName, sale.Items[0].ProductName)
}

func TestSaleCreate_DecrementsStock(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	// seeded Coca Cola starts at 48
	_, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SalePaid,
		PaymentMethod: "cash",
		Items:         []services.SaleItemInput{{ProductName: "Coca Cola 600ml", Quantity: 3, UnitPrice: dec(1.5)}},
	})
	require.NoError(t, err)

	var stock int
	require.NoError(t, db.Get(&stock, `SELECT stock FROM products WHERE id='p-cola'`))
	require.Equal(t, 45, stock)
}

func TestRecordPayment_SettlesAndIsIdempotent(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	sale, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SaleDebt,
		PaymentMethod: "cash",
		Items:         twoItems(),
		Discount:      dec(10),
	})
	require.NoError(t, err)
	require.Equal(t, domain.SaleDebt, sale.Status)
	require.True(t, sale.DebtAmount.Equal(dec(90)))

	// partial payment: 40 paid, 50 outstanding
	got, err := svc.RecordPayment(owner, sale.ID, dec(40), "")
	require.NoError(t, err)
	require.Equal(t, domain.SaleDebt, got.Status)
	require.True(t, got.PaidAmount.Equal(dec(40)))
	require.True(t, got.DebtAmount.Equal(dec(50)))
	require.True(t, got.PaidAmount.Add(got.DebtAmount).Equal(got.Total))

	// same amount again: same state, no extra payment row
	again, err := svc.RecordPayment(owner, sale.ID, dec(40), "")
	require.NoError(t, err)
	require.Equal(t, got.Status, again.Status)
	require.True(t, again.PaidAmount.Equal(got.PaidAmount))
	require.True(t, again.DebtAmount.Equal(got.DebtAmount))

	var payments int
	require.NoError(t, db.Get(&payments,
		`SELECT COUNT(*) FROM payments WHERE reference_type='sale' AND reference_id=?`, sale.ID))
	require.Equal(t, 1, payments)

	// settle in full
	final, err := svc.RecordPayment(owner, sale.ID, dec(90), "")
	require.NoError(t, err)
	require.Equal(t, domain.SalePaid, final.Status)
	require.True(t, final.DebtAmount.IsZero())
	require.True(t, final.PaidAmount.Equal(dec(90)))

	// delta payment of 50 was recorded
	var total decimal.Decimal
	require.NoError(t, db.Get(&total,
		`SELECT COALESCE(SUM(amount),0) FROM payments WHERE reference_type='sale' AND reference_id=?`, sale.ID))
	require.True(t, total.Equal(dec(90)), "payments sum=%s", total)
}

func TestRecordPayment_FullAmountImmediately(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	sale, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SaleDebt,
		PaymentMethod: "cash",
		Items:         twoItems(),
		Discount:      dec(10),
	})
	require.NoError(t, err)

	got, err := svc.RecordPayment(owner, sale.ID, dec(90), "card")
	require.NoError(t, err)
	require.Equal(t, domain.SalePaid, got.Status)
	require.True(t, got.DebtAmount.IsZero())
	require.Equal(t, "card", got.PaymentMethod)
}

func TestSaleUpdate_StatusPaidWithoutAmountSettlesFull(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	sale, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SaleDebt,
		PaymentMethod: "cash",
		Items:         twoItems(),
	})
	require.NoError(t, err)

	paid := domain.SalePaid
	got, err := svc.Update(owner, sale.ID, services.UpdateSaleInput{Status: &paid})
	require.NoError(t, err)
	require.Equal(t, domain.SalePaid, got.Status)
	require.True(t, got.PaidAmount.Equal(got.Total))
	require.True(t, got.DebtAmount.IsZero())
}

func TestSaleDelete_KeepsPaymentRows(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	sale, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SaleDebt,
		PaymentMethod: "cash",
		Items:         twoItems(),
	})
	require.NoError(t, err)
	_, err = svc.RecordPayment(owner, sale.ID, dec(30), "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, sale.ID))

	_, err = svc.Get(owner, sale.ID)
	require.Error(t, err)

	var items, payments int
	require.NoError(t, db.Get(&items, `SELECT COUNT(*) FROM sale_items WHERE sale_id=?`, sale.ID))
	require.Zero(t, items)
	require.NoError(t, db.Get(&payments, `SELECT COUNT(*) FROM payments WHERE reference_id=?`, sale.ID))
	require.Equal(t, 1, payments, "payment rows survive the hard delete")
}

func TestSale_OwnerScoping(t *testing.T) {
	db := memdb(t)
	svc := newSaleService(db)

	sale, err := svc.Create(owner, services.CreateSaleInput{
		Type:          domain.SaleProduct,
		Status:        domain.SalePaid,
		PaymentMethod: "cash",
		Items:         twoItems(),
	})
	require.NoError(t, err)

	_, err = svc.Get("u-other", sale.ID)
	require.Error(t, err)
	_, err = svc.RecordPayment("u-other", sale.ID, dec(10), "")
	require.Error(t, err)
	require.Error(t, svc.Delete("u-other", sale.ID))
}
