package services

import (
	"errors"
	"strings"

	"multiciber/internal/domain"
	"multiciber/internal/repos"

	"github.com/google/uuid"
)

var ErrCatalogUnavailable = errors.New("catalog not available")

type SettingsInput struct {
	BusinessName  string
	Currency      string
	CatalogPublic *bool
}

type PublicCatalog struct {
	BusinessName string           `json:"businessName"`
	Currency     string           `json:"currency"`
	Products     []domain.Product `json:"products"`
}

type SettingsService struct {
	Settings *repos.SettingsRepo
	Products *repos.ProductRepo
}

func NewSettingsService(settings *repos.SettingsRepo, products *repos.ProductRepo) *SettingsService {
	return &SettingsService{Settings: settings, Products: products}
}

func (s *SettingsService) Get(ownerID string) (domain.Settings, error) {
	return s.Settings.GetOrCreate(ownerID)
}

// Update applies the input and lazily generates the storefront slug the first
// time a business name is known.
func (s *SettingsService) Update(ownerID string, in SettingsInput) (domain.Settings, error) {
	st, err := s.Settings.GetOrCreate(ownerID)
	if err != nil {
		return domain.Settings{}, err
	}
	if in.BusinessName != "" {
		st.BusinessName = in.BusinessName
	}
	if in.Currency != "" {
		st.Currency = in.Currency
	}
	if in.CatalogPublic != nil {
		st.CatalogPublic = *in.CatalogPublic
	}
	if st.Slug == "" && st.BusinessName != "" {
		slug, err := s.uniqueSlug(st.BusinessName, ownerID)
		if err != nil {
			return domain.Settings{}, err
		}
		st.Slug = slug
	}
	if err := s.Settings.Update(&st); err != nil {
		return domain.Settings{}, err
	}
	return st, nil
}

func (s *SettingsService) uniqueSlug(name, ownerID string) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "tienda"
	}
	slug := base
	for {
		taken, err := s.Settings.SlugTaken(slug, ownerID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + uuid.NewString()[:4]
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || '0' <= r && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Catalog resolves a public storefront by slug. Owners who have not opted in
// look the same as missing slugs.
func (s *SettingsService) Catalog(slug string) (PublicCatalog, error) {
	st, err := s.Settings.BySlug(slug)
	if err != nil {
		if repos.IsNotFound(err) {
			return PublicCatalog{}, ErrCatalogUnavailable
		}
		return PublicCatalog{}, err
	}
	if !st.CatalogPublic {
		return PublicCatalog{}, ErrCatalogUnavailable
	}
	products, err := s.Products.List(st.OwnerID, "", "")
	if err != nil {
		return PublicCatalog{}, err
	}
	return PublicCatalog{BusinessName: st.BusinessName, Currency: st.Currency, Products: products}, nil
}
