package repos

import (
	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ExpenseRepo struct{ db *sqlx.DB }

func NewExpenseRepo(db *sqlx.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

const expenseCols = `
  id, owner_id, description, amount, category, COALESCE(supplier_id,'') AS supplier_id,
  payment_method, status, recurring, frequency, expense_date,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ExpenseRepo) Insert(e *domain.Expense) error {
	_, err := r.db.Exec(`
	  INSERT INTO expenses(id,owner_id,description,amount,category,supplier_id,payment_method,status,recurring,frequency,expense_date,created_at)
	  VALUES(?,?,?,?,?,NULLIF(?,''),?,?,?,?,?,?)
	`, e.ID, e.OwnerID, e.Description, e.Amount, e.Category, e.SupplierID,
		e.PaymentMethod, e.Status, e.Recurring, e.Frequency, e.ExpenseDate, e.CreatedAt)
	return err
}

func (r *ExpenseRepo) Get(ownerID, id string) (domain.Expense, error) {
	var e domain.Expense
	err := r.db.Get(&e, `SELECT `+expenseCols+` FROM expenses WHERE owner_id=? AND id=?`, ownerID, id)
	return e, err
}

func (r *ExpenseRepo) List(ownerID string, status domain.ExpenseStatus, limit int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 100
	}
	where := `owner_id=?`
	args := []any{ownerID}
	if status != "" {
		where += ` AND status=?`
		args = append(args, status)
	}
	args = append(args, limit)
	var out []domain.Expense
	err := r.db.Select(&out, `
	  SELECT `+expenseCols+` FROM expenses WHERE `+where+`
	  ORDER BY datetime(created_at) DESC LIMIT ?
	`, args...)
	return out, err
}

// Update persists the expense and, when the pending→paid transition fired,
// the settlement Payment row in the same transaction.
func (r *ExpenseRepo) Update(e *domain.Expense, pay *domain.Payment) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE expenses
	  SET description=?, amount=?, category=?, supplier_id=NULLIF(?,''), payment_method=?, status=?, recurring=?, frequency=?, expense_date=?, updated_at=?
	  WHERE owner_id=? AND id=?
	`, e.Description, e.Amount, e.Category, e.SupplierID, e.PaymentMethod,
		e.Status, e.Recurring, e.Frequency, e.ExpenseDate, Now(), e.OwnerID, e.ID)
	if err != nil {
		return err
	}
	if err := oneRow(res); err != nil {
		return err
	}
	if pay != nil {
		if err := insertPaymentTx(tx, pay); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ExpenseRepo) Delete(ownerID, id string) error {
	res, err := r.db.Exec(`DELETE FROM expenses WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
