package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"multiciber/internal/repos"
	"multiciber/internal/services"
)

func newCatalogService(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(repos.NewProductRepo(db), repos.NewCategoryRepo(db))
}

func TestProductCreate_Validation(t *testing.T) {
	db := memdb(t)
	svc := newCatalogService(db)

	_, err := svc.CreateProduct(owner, services.ProductInput{Price: dec(1)})
	require.ErrorIs(t, err, services.ErrNameRequired)

	_, err = svc.CreateProduct(owner, services.ProductInput{Name: "Chicle", Price: dec(-1)})
	require.ErrorIs(t, err, services.ErrBadAmount)

	// seeded product names are unique per owner, case-insensitive
	_, err = svc.CreateProduct(owner, services.ProductInput{Name: "coca cola 600ml", Price: dec(2)})
	require.ErrorIs(t, err, services.ErrNameTaken)

	// seeded barcode is globally unique
	_, err = svc.CreateProduct(owner, services.ProductInput{Name: "Refresco", Price: dec(2), Barcode: "7501055300891"})
	require.ErrorIs(t, err, services.ErrBarcodeTaken)
}

func TestProductSoftDelete_FreesName(t *testing.T) {
	db := memdb(t)
	svc := newCatalogService(db)

	p, err := svc.CreateProduct(owner, services.ProductInput{Name: "Chicle", Price: dec(0.5)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(owner, p.ID))

	_, err = svc.GetProduct(owner, p.ID)
	require.Error(t, err)

	// inactive rows drop out of the uniqueness scope
	_, err = svc.CreateProduct(owner, services.ProductInput{Name: "Chicle", Price: dec(0.6)})
	require.NoError(t, err)
}

func TestProductLowStock(t *testing.T) {
	db := memdb(t)
	svc := newCatalogService(db)

	_, err := svc.CreateProduct(owner, services.ProductInput{Name: "Pilas AA", Price: dec(3), Stock: 2, MinStock: 5})
	require.NoError(t, err)

	low, err := svc.LowStock(owner)
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Pilas AA", low[0].Name)
}

func TestCategoryDelete_GuardedByActiveProducts(t *testing.T) {
	db := memdb(t)
	svc := newCatalogService(db)

	// seeded Bebidas has two active products
	err := svc.DeleteCategory(owner, "cat-bebidas")
	require.ErrorIs(t, err, services.ErrCategoryInUse)

	// Papeleria frees up once its only product is retired
	require.NoError(t, svc.DeleteProduct(owner, "p-cuaderno"))
	require.NoError(t, svc.DeleteCategory(owner, "cat-papeleria"))

	cats, err := svc.ListCategories(owner)
	require.NoError(t, err)
	require.Len(t, cats, 2)
}

func TestCategoryCreate_DuplicateName(t *testing.T) {
	db := memdb(t)
	svc := newCatalogService(db)

	_, err := svc.CreateCategory(owner, services.CategoryInput{Name: "Bebidas"})
	require.ErrorIs(t, err, services.ErrCategoryExists)

	c, err := svc.CreateCategory(owner, services.CategoryInput{Name: "Limpieza", Color: "#888888"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
}
