package repos

import (
	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ContactRepo serves both clients and suppliers; the two tables share a shape
// and differ only in what references them.
type ContactRepo struct {
	db    *sqlx.DB
	table string
}

func NewClientRepo(db *sqlx.DB) *ContactRepo   { return &ContactRepo{db: db, table: "clients"} }
func NewSupplierRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db, table: "suppliers"} }

const contactCols = `id, owner_id, name, phone, email, address, notes, is_active, created_at`

func (r *ContactRepo) List(ownerID string) ([]domain.Contact, error) {
	var out []domain.Contact
	err := r.db.Select(&out, `
	  SELECT `+contactCols+` FROM `+r.table+`
	  WHERE owner_id=? AND is_active=1 ORDER BY name
	`, ownerID)
	return out, err
}

func (r *ContactRepo) Get(ownerID, id string) (domain.Contact, error) {
	var c domain.Contact
	err := r.db.Get(&c, `
	  SELECT `+contactCols+` FROM `+r.table+` WHERE owner_id=? AND id=? AND is_active=1
	`, ownerID, id)
	return c, err
}

func (r *ContactRepo) Insert(c *domain.Contact) error {
	c.IsActive = true
	c.CreatedAt = Now()
	_, err := r.db.Exec(`
	  INSERT INTO `+r.table+`(id,owner_id,name,phone,email,address,notes,is_active,created_at)
	  VALUES(?,?,?,?,?,?,?,1,?)
	`, c.ID, c.OwnerID, c.Name, c.Phone, c.Email, c.Address, c.Notes, c.CreatedAt)
	return err
}

func (r *ContactRepo) Update(c *domain.Contact) error {
	res, err := r.db.Exec(`
	  UPDATE `+r.table+` SET name=?, phone=?, email=?, address=?, notes=?
	  WHERE owner_id=? AND id=? AND is_active=1
	`, c.Name, c.Phone, c.Email, c.Address, c.Notes, c.OwnerID, c.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *ContactRepo) SoftDelete(ownerID, id string) error {
	res, err := r.db.Exec(`
	  UPDATE `+r.table+` SET is_active=0 WHERE owner_id=? AND id=? AND is_active=1
	`, ownerID, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
