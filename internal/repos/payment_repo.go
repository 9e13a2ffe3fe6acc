package repos

import (
	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PaymentRepo struct{ db *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentCols = `
  id, owner_id, reference_type, reference_id, amount, payment_method,
  payment_date, created_at`

func insertPaymentTx(tx *sqlx.Tx, p *domain.Payment) error {
	_, err := tx.Exec(`
	  INSERT INTO payments(id,owner_id,reference_type,reference_id,amount,payment_method,payment_date,created_at)
	  VALUES(?,?,?,?,?,?,?,?)
	`, p.ID, p.OwnerID, p.ReferenceType, p.ReferenceID, p.Amount, p.PaymentMethod, p.PaymentDate, Now())
	return err
}

func (r *PaymentRepo) List(ownerID string, limit int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Payment
	err := r.db.Select(&out, `
	  SELECT `+paymentCols+` FROM payments WHERE owner_id=?
	  ORDER BY datetime(created_at) DESC LIMIT ?
	`, ownerID, limit)
	return out, err
}

func (r *PaymentRepo) ListByReference(ownerID string, refType domain.ReferenceType, refID string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.Select(&out, `
	  SELECT `+paymentCols+` FROM payments
	  WHERE owner_id=? AND reference_type=? AND reference_id=?
	  ORDER BY datetime(created_at)
	`, ownerID, refType, refID)
	return out, err
}
