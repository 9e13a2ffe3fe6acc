package repos

import (
	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

const saleCols = `
  id, owner_id, type, payment_method, status, subtotal, discount, total,
  paid_amount, debt_amount, COALESCE(client_id,'') AS client_id, notes,
  created_at, COALESCE(updated_at,'') AS updated_at`

// Insert writes the sale header and its line items in one transaction, so a
// failure persists nothing.
func (r *SaleRepo) Insert(s *domain.Sale) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO sales(id,owner_id,type,payment_method,status,subtotal,discount,total,paid_amount,debt_amount,client_id,notes,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,NULLIF(?,''),?,?)
	`, s.ID, s.OwnerID, s.Type, s.PaymentMethod, s.Status, s.Subtotal, s.Discount, s.Total,
		s.PaidAmount, s.DebtAmount, s.ClientID, s.Notes, s.CreatedAt); err != nil {
		return err
	}
	for _, it := range s.Items {
		if _, err := tx.Exec(`
		  INSERT INTO sale_items(sale_id,product_name,quantity,unit_price,line_total)
		  VALUES(?,?,?,?,?)
		`, s.ID, it.ProductName, it.Quantity, it.UnitPrice, it.LineTotal); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SaleRepo) Get(ownerID, id string) (domain.Sale, error) {
	var s domain.Sale
	if err := r.db.Get(&s, `SELECT `+saleCols+` FROM sales WHERE owner_id=? AND id=?`, ownerID, id); err != nil {
		return domain.Sale{}, err
	}
	if err := r.db.Select(&s.Items, `
	  SELECT sale_id, product_name, quantity, unit_price, line_total
	  FROM sale_items WHERE sale_id=? ORDER BY rowid
	`, id); err != nil {
		return domain.Sale{}, err
	}
	return s, nil
}

func (r *SaleRepo) List(ownerID string, status domain.SaleStatus, limit int) ([]domain.Sale, error) {
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
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleCols+` FROM sales WHERE `+where+`
	  ORDER BY datetime(created_at) DESC LIMIT ?
	`, args...)
	return out, err
}

// UpdateSettlement persists recomputed settlement fields and, when a payment
// event occurred, its append-only Payment row in the same transaction.
func (r *SaleRepo) UpdateSettlement(s *domain.Sale, pay *domain.Payment) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE sales
	  SET status=?, payment_method=?, paid_amount=?, debt_amount=?, client_id=NULLIF(?,''), notes=?, updated_at=?
	  WHERE owner_id=? AND id=?
	`, s.Status, s.PaymentMethod, s.PaidAmount, s.DebtAmount, s.ClientID, s.Notes, Now(), s.OwnerID, s.ID)
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

// Delete hard-deletes the sale and its items. Payment rows referencing the
// sale are kept on purpose (audit trail).
func (r *SaleRepo) Delete(ownerID, id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM sales WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	if err := oneRow(res); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sale_items WHERE sale_id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// DebtByClient sums outstanding debt for one client.
func (r *SaleRepo) DebtByClient(ownerID, clientID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Get(&total, `
	  SELECT COALESCE(SUM(debt_amount),0) FROM sales
	  WHERE owner_id=? AND client_id=? AND status='debt'
	`, ownerID, clientID)
	return total, err
}
