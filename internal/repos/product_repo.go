package repos

import (
	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, owner_id, name, price, cost, category, unit, stock, min_stock, barcode,
  image_url, is_active, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Insert(p *domain.Product) error {
	p.CreatedAt = Now()
	_, err := r.db.Exec(`
	  INSERT INTO products(id,owner_id,name,price,cost,category,unit,stock,min_stock,barcode,image_url,is_active,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,1,?)
	`, p.ID, p.OwnerID, p.Name, p.Price, p.Cost, p.Category, p.Unit, p.Stock, p.MinStock, p.Barcode, p.ImageURL, p.CreatedAt)
	return err
}

func (r *ProductRepo) Get(ownerID, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+` FROM products WHERE owner_id=? AND id=? AND is_active=1
	`, ownerID, id)
	return p, err
}

// List returns active products, optionally filtered by free-text category
// and/or a name/barcode search term.
func (r *ProductRepo) List(ownerID, category, q string) ([]domain.Product, error) {
	where := `owner_id=? AND is_active=1`
	args := []any{ownerID}
	if category != "" {
		where += ` AND category=?`
		args = append(args, category)
	}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR barcode=?)`
		args = append(args, "%"+q+"%", q)
	}
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY name`, args...)
	return out, err
}

func (r *ProductRepo) LowStock(ownerID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE owner_id=? AND is_active=1 AND stock <= min_stock
	  ORDER BY stock, name
	`, ownerID)
	return out, err
}

func (r *ProductRepo) Update(p *domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name=?, price=?, cost=?, category=?, unit=?, stock=?, min_stock=?, barcode=?, image_url=?, updated_at=?
	  WHERE owner_id=? AND id=? AND is_active=1
	`, p.Name, p.Price, p.Cost, p.Category, p.Unit, p.Stock, p.MinStock, p.Barcode, p.ImageURL, Now(), p.OwnerID, p.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// SoftDelete marks the product inactive. Products are never hard-deleted.
func (r *ProductRepo) SoftDelete(ownerID, id string) error {
	res, err := r.db.Exec(`
	  UPDATE products SET is_active=0, updated_at=? WHERE owner_id=? AND id=? AND is_active=1
	`, Now(), ownerID, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// DecrementStock subtracts sold units for a named active product, flooring at
// zero. Selling below stock is allowed for a POS; the floor keeps the CHECK
// constraint satisfied.
func (r *ProductRepo) DecrementStock(ownerID, name string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE products SET stock = MAX(stock - ?, 0), updated_at=?
	  WHERE owner_id=? AND LOWER(name)=LOWER(?) AND is_active=1
	`, qty, Now(), ownerID, name)
	return err
}

func (r *ProductRepo) BarcodeTaken(barcode, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE barcode=? AND id != ?`, barcode, excludeID)
	return n > 0, err
}

func (r *ProductRepo) NameTaken(ownerID, name, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM products
	  WHERE owner_id=? AND LOWER(name)=LOWER(?) AND is_active=1 AND id != ?
	`, ownerID, name, excludeID)
	return n > 0, err
}

// ActiveCountByCategory backs the category-deletion guard.
func (r *ProductRepo) ActiveCountByCategory(ownerID, category string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM products
	  WHERE owner_id=? AND is_active=1 AND LOWER(category)=LOWER(?)
	`, ownerID, category)
	return n, err
}
