package repos

import (
	"database/sql"
	"errors"

	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

const settingsCols = `
  owner_id, business_name, currency, slug, catalog_public,
  created_at, COALESCE(updated_at,'') AS updated_at`

// GetOrCreate returns the owner's settings row, creating the default singleton
// on first access.
func (r *SettingsRepo) GetOrCreate(ownerID string) (domain.Settings, error) {
	var s domain.Settings
	err := r.db.Get(&s, `SELECT `+settingsCols+` FROM settings WHERE owner_id=?`, ownerID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Settings{}, err
	}
	if _, err := r.db.Exec(`
	  INSERT INTO settings(owner_id,business_name,currency,created_at) VALUES(?,?,?,?)
	  ON CONFLICT(owner_id) DO NOTHING
	`, ownerID, "", "USD", Now()); err != nil {
		return domain.Settings{}, err
	}
	err = r.db.Get(&s, `SELECT `+settingsCols+` FROM settings WHERE owner_id=?`, ownerID)
	return s, err
}

func (r *SettingsRepo) Update(s *domain.Settings) error {
	res, err := r.db.Exec(`
	  UPDATE settings SET business_name=?, currency=?, slug=?, catalog_public=?, updated_at=?
	  WHERE owner_id=?
	`, s.BusinessName, s.Currency, s.Slug, s.CatalogPublic, Now(), s.OwnerID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *SettingsRepo) BySlug(slug string) (domain.Settings, error) {
	var s domain.Settings
	err := r.db.Get(&s, `SELECT `+settingsCols+` FROM settings WHERE slug=?`, slug)
	return s, err
}

func (r *SettingsRepo) SlugTaken(slug, excludeOwner string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM settings WHERE slug=? AND owner_id != ?`, slug, excludeOwner)
	return n > 0, err
}
