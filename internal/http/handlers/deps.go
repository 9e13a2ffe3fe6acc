package handlers

import (
	"multiciber/internal/repos"
	"multiciber/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler   *ProductHandler
	CategoryHandler  *CategoryHandler
	SaleHandler      *SaleHandler
	ExpenseHandler   *ExpenseHandler
	PaymentHandler   *PaymentHandler
	ContactHandler   *ContactHandler
	DashboardHandler *DashboardHandler
	SettingsHandler  *SettingsHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	expRepo := repos.NewExpenseRepo(db)
	payRepo := repos.NewPaymentRepo(db)
	clientRepo := repos.NewClientRepo(db)
	supplierRepo := repos.NewSupplierRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)
	statsRepo := repos.NewStatsRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, catRepo)
	saleSvc := services.NewSaleService(saleRepo, prodRepo)
	expSvc := services.NewExpenseService(expRepo)
	statsSvc := services.NewStatsService(statsRepo)
	settingsSvc := services.NewSettingsService(settingsRepo, prodRepo)

	return &Deps{
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		SaleHandler:      &SaleHandler{Sales: saleSvc},
		ExpenseHandler:   &ExpenseHandler{Expenses: expSvc},
		PaymentHandler:   &PaymentHandler{Payments: payRepo},
		ContactHandler:   &ContactHandler{Clients: clientRepo, Suppliers: supplierRepo, Sales: saleRepo},
		DashboardHandler: &DashboardHandler{Stats: statsSvc},
		SettingsHandler:  &SettingsHandler{Settings: settingsSvc},
	}
}
