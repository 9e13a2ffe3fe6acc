package repos

import (
	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ownerID string) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, owner_id, name, color, icon, sort_order, created_at
	  FROM categories WHERE owner_id=?
	  ORDER BY sort_order, name
	`, ownerID)
	return out, err
}

func (r *CategoryRepo) Get(ownerID, id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, owner_id, name, color, icon, sort_order, created_at
	  FROM categories WHERE owner_id=? AND id=?
	`, ownerID, id)
	return c, err
}

func (r *CategoryRepo) Insert(c *domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id,owner_id,name,color,icon,sort_order,created_at)
	  VALUES(?,?,?,?,?,?,?)
	`, c.ID, c.OwnerID, c.Name, c.Color, c.Icon, c.SortOrder, Now())
	return err
}

func (r *CategoryRepo) Update(c *domain.Category) error {
	res, err := r.db.Exec(`
	  UPDATE categories SET name=?, color=?, icon=?, sort_order=? WHERE owner_id=? AND id=?
	`, c.Name, c.Color, c.Icon, c.SortOrder, c.OwnerID, c.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *CategoryRepo) NameTaken(ownerID, name, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM categories
	  WHERE owner_id=? AND LOWER(name)=LOWER(?) AND id != ?
	`, ownerID, name, excludeID)
	return n > 0, err
}

func (r *CategoryRepo) Delete(ownerID, id string) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
