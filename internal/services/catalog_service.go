package services

import (
	"errors"

	"multiciber/internal/domain"
	"multiciber/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNameRequired   = errors.New("name is required")
	ErrNameTaken      = errors.New("a product with that name already exists")
	ErrBarcodeTaken   = errors.New("barcode already in use")
	ErrCategoryExists = errors.New("category already exists")
	ErrCategoryInUse  = errors.New("category is referenced by active products")
)

type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Category string
	Unit     string
	Stock    int
	MinStock int
	Barcode  string
	ImageURL string
}

type CategoryInput struct {
	Name      string
	Color     string
	Icon      string
	SortOrder int
}

// CatalogService covers products and their display categories. The two are
// joined by name equality only; Product.Category stays free text.
type CatalogService struct {
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo
}

func NewCatalogService(products *repos.ProductRepo, categories *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Products: products, Categories: categories}
}

func (s *CatalogService) CreateProduct(ownerID string, in ProductInput) (domain.Product, error) {
	if err := s.checkProduct(ownerID, in, ""); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Name:     in.Name,
		Price:    in.Price,
		Cost:     in.Cost,
		Category: in.Category,
		Unit:     in.Unit,
		Stock:    in.Stock,
		MinStock: in.MinStock,
		Barcode:  in.Barcode,
		ImageURL: in.ImageURL,
		IsActive: true,
	}
	if p.Unit == "" {
		p.Unit = "unidad"
	}
	if err := s.Products.Insert(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ownerID, id string, in ProductInput) (domain.Product, error) {
	p, err := s.Products.Get(ownerID, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.checkProduct(ownerID, in, id); err != nil {
		return domain.Product{}, err
	}
	p.Name = in.Name
	p.Price = in.Price
	p.Cost = in.Cost
	p.Category = in.Category
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.Barcode = in.Barcode
	p.ImageURL = in.ImageURL
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	if err := s.Products.Update(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) checkProduct(ownerID string, in ProductInput, excludeID string) error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return ErrBadAmount
	}
	if in.Stock < 0 || in.MinStock < 0 {
		return ErrBadAmount
	}
	if taken, err := s.Products.NameTaken(ownerID, in.Name, excludeID); err != nil {
		return err
	} else if taken {
		return ErrNameTaken
	}
	if in.Barcode != "" {
		if taken, err := s.Products.BarcodeTaken(in.Barcode, excludeID); err != nil {
			return err
		} else if taken {
			return ErrBarcodeTaken
		}
	}
	return nil
}

func (s *CatalogService) DeleteProduct(ownerID, id string) error {
	return s.Products.SoftDelete(ownerID, id)
}

func (s *CatalogService) GetProduct(ownerID, id string) (domain.Product, error) {
	return s.Products.Get(ownerID, id)
}

func (s *CatalogService) ListProducts(ownerID, category, q string) ([]domain.Product, error) {
	return s.Products.List(ownerID, category, q)
}

func (s *CatalogService) LowStock(ownerID string) ([]domain.Product, error) {
	return s.Products.LowStock(ownerID)
}

func (s *CatalogService) ListCategories(ownerID string) ([]domain.Category, error) {
	return s.Categories.List(ownerID)
}

func (s *CatalogService) CreateCategory(ownerID string, in CategoryInput) (domain.Category, error) {
	if in.Name == "" {
		return domain.Category{}, ErrNameRequired
	}
	if taken, err := s.Categories.NameTaken(ownerID, in.Name, ""); err != nil {
		return domain.Category{}, err
	} else if taken {
		return domain.Category{}, ErrCategoryExists
	}
	c := domain.Category{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Color:     in.Color,
		Icon:      in.Icon,
		SortOrder: in.SortOrder,
	}
	if err := s.Categories.Insert(&c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ownerID, id string, in CategoryInput) (domain.Category, error) {
	c, err := s.Categories.Get(ownerID, id)
	if err != nil {
		return domain.Category{}, err
	}
	if in.Name == "" {
		return domain.Category{}, ErrNameRequired
	}
	if taken, err := s.Categories.NameTaken(ownerID, in.Name, id); err != nil {
		return domain.Category{}, err
	} else if taken {
		return domain.Category{}, ErrCategoryExists
	}
	c.Name = in.Name
	c.Color = in.Color
	c.Icon = in.Icon
	c.SortOrder = in.SortOrder
	if err := s.Categories.Update(&c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// DeleteCategory refuses while any active product still references the
// category name.
func (s *CatalogService) DeleteCategory(ownerID, id string) error {
	c, err := s.Categories.Get(ownerID, id)
	if err != nil {
		return err
	}
	n, err := s.Products.ActiveCountByCategory(ownerID, c.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	return s.Categories.Delete(ownerID, id)
}
