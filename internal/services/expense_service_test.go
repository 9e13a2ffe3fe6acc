package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"multiciber/internal/domain"
	"multiciber/internal/repos"
	"multiciber/internal/services"
)

func TestExpenseSettlement_PendingToPaidCreatesOnePayment(t *testing.T) {
	db := memdb(t)
	svc := services.NewExpenseService(repos.NewExpenseRepo(db))

	exp, err := svc.Create(owner, services.CreateExpenseInput{
		Description: "Internet mensual",
		Amount:      dec(25),
		Category:    "servicios",
	})
	require.NoError(t, err)
	require.Equal(t, domain.ExpensePending, exp.Status)

	paid := domain.ExpensePaid
	method := "cash"
	got, err := svc.Update(owner, exp.ID, services.UpdateExpenseInput{
		Status:        &paid,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	require.Equal(t, domain.ExpensePaid, got.Status)

	var ps []domain.Payment
	require.NoError(t, db.Select(&ps,
		`SELECT id, owner_id, reference_type, reference_id, amount, payment_method, created_at
		 FROM payments WHERE reference_id=?`, exp.ID))
	require.Len(t, ps, 1)
	require.Equal(t, domain.RefExpense, ps[0].ReferenceType)
	require.True(t, ps[0].Amount.Equal(dec(25)))
	require.Equal(t, "cash", ps[0].PaymentMethod)

	// re-marking as paid must not add another payment
	_, err = svc.Update(owner, exp.ID, services.UpdateExpenseInput{Status: &paid})
	require.NoError(t, err)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM payments WHERE reference_id=?`, exp.ID))
	require.Equal(t, 1, n)
}

func TestExpenseCreate_AsPaidRecordsPayment(t *testing.T) {
	db := memdb(t)
	svc := services.NewExpenseService(repos.NewExpenseRepo(db))

	exp, err := svc.Create(owner, services.CreateExpenseInput{
		Description:   "Compra de hielo",
		Amount:        dec(12.5),
		Status:        domain.ExpensePaid,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM payments WHERE reference_id=?`, exp.ID))
	require.Equal(t, 1, n)
}

func TestExpenseCreate_Defaults(t *testing.T) {
	db := memdb(t)
	svc := services.NewExpenseService(repos.NewExpenseRepo(db))

	_, err := svc.Create(owner, services.CreateExpenseInput{Amount: dec(5)})
	require.ErrorIs(t, err, services.ErrDescriptionRequired)

	exp, err := svc.Create(owner, services.CreateExpenseInput{
		Description: "Renta",
		Amount:      dec(200),
	})
	require.NoError(t, err)
	require.Equal(t, domain.ExpensePending, exp.Status)
	require.Equal(t, "cash", exp.PaymentMethod)
	require.NotEmpty(t, exp.ExpenseDate)

	// pending expense leaves the ledger untouched
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM payments WHERE reference_id=?`, exp.ID))
	require.Zero(t, n)
}

func TestExpense_OwnerScoping(t *testing.T) {
	db := memdb(t)
	svc := services.NewExpenseService(repos.NewExpenseRepo(db))

	exp, err := svc.Create(owner, services.CreateExpenseInput{Description: "Luz", Amount: dec(40)})
	require.NoError(t, err)

	_, err = svc.Get("u-other", exp.ID)
	require.Error(t, err)
	require.Error(t, svc.Delete("u-other", exp.ID))
}
