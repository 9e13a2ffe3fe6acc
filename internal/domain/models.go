package domain

import "github.com/shopspring/decimal"

type SaleStatus string

const (
	SalePaid SaleStatus = "paid"
	SaleDebt SaleStatus = "debt"
)

type SaleType string

const (
	SaleProduct SaleType = "product"
	SaleFree    SaleType = "free"
)

type ExpenseStatus string

const (
	ExpensePending ExpenseStatus = "pending"
	ExpensePaid    ExpenseStatus = "paid"
)

type ReferenceType string

const (
	RefSale    ReferenceType = "sale"
	RefExpense ReferenceType = "expense"
)

type Product struct {
	ID        string          `db:"id" json:"id"`
	OwnerID   string          `db:"owner_id" json:"-"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Cost      decimal.Decimal `db:"cost" json:"cost"`
	Category  string          `db:"category" json:"category"`
	Unit      string          `db:"unit" json:"unit"`
	Stock     int             `db:"stock" json:"stock"`
	MinStock  int             `db:"min_stock" json:"minStock"`
	Barcode   string          `db:"barcode" json:"barcode,omitempty"`
	ImageURL  string          `db:"image_url" json:"imageUrl,omitempty"`
	IsActive  bool            `db:"is_active" json:"isActive"`
	CreatedAt string          `db:"created_at" json:"createdAt"`
	UpdatedAt string          `db:"updated_at" json:"updatedAt,omitempty"`
}

type SaleItem struct {
	SaleID      string          `db:"sale_id" json:"-"`
	ProductName string          `db:"product_name" json:"productName"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	LineTotal   decimal.Decimal `db:"line_total" json:"lineTotal"`
}

// Sale carries the settled amounts. Invariant: paid_amount + debt_amount ==
// total while status is debt; debt_amount == 0 while status is paid.
type Sale struct {
	ID            string          `db:"id" json:"id"`
	OwnerID       string          `db:"owner_id" json:"-"`
	Type          SaleType        `db:"type" json:"type"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	Status        SaleStatus      `db:"status" json:"status"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaidAmount    decimal.Decimal `db:"paid_amount" json:"paidAmount"`
	DebtAmount    decimal.Decimal `db:"debt_amount" json:"debtAmount"`
	ClientID      string          `db:"client_id" json:"clientId,omitempty"`
	Notes         string          `db:"notes" json:"notes,omitempty"`
	CreatedAt     string          `db:"created_at" json:"createdAt"`
	UpdatedAt     string          `db:"updated_at" json:"updatedAt,omitempty"`
	Items         []SaleItem      `db:"-" json:"items,omitempty"`
}

type Expense struct {
	ID            string          `db:"id" json:"id"`
	OwnerID       string          `db:"owner_id" json:"-"`
	Description   string          `db:"description" json:"description"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Category      string          `db:"category" json:"category"`
	SupplierID    string          `db:"supplier_id" json:"supplierId,omitempty"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	Status        ExpenseStatus   `db:"status" json:"status"`
	Recurring     bool            `db:"recurring" json:"recurring"`
	Frequency     string          `db:"frequency" json:"frequency,omitempty"`
	ExpenseDate   string          `db:"expense_date" json:"expenseDate"`
	CreatedAt     string          `db:"created_at" json:"createdAt"`
	UpdatedAt     string          `db:"updated_at" json:"updatedAt,omitempty"`
}

// Payment is an append-only settlement record. Rows are never updated or
// deleted, even when the referenced sale is hard-deleted.
type Payment struct {
	ID            string          `db:"id" json:"id"`
	OwnerID       string          `db:"owner_id" json:"-"`
	ReferenceType ReferenceType   `db:"reference_type" json:"referenceType"`
	ReferenceID   string          `db:"reference_id" json:"referenceId"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	PaymentDate   string          `db:"payment_date" json:"paymentDate"`
	CreatedAt     string          `db:"created_at" json:"createdAt"`
}

// Contact is the shared shape for clients and suppliers; the two live in
// separate tables and differ only in what references them.
type Contact struct {
	ID        string `db:"id" json:"id"`
	OwnerID   string `db:"owner_id" json:"-"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Email     string `db:"email" json:"email,omitempty"`
	Address   string `db:"address" json:"address,omitempty"`
	Notes     string `db:"notes" json:"notes,omitempty"`
	IsActive  bool   `db:"is_active" json:"isActive"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Category struct {
	ID        string `db:"id" json:"id"`
	OwnerID   string `db:"owner_id" json:"-"`
	Name      string `db:"name" json:"name"`
	Color     string `db:"color" json:"color,omitempty"`
	Icon      string `db:"icon" json:"icon,omitempty"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// Settings is the one-per-owner business configuration row.
type Settings struct {
	OwnerID       string `db:"owner_id" json:"-"`
	BusinessName  string `db:"business_name" json:"businessName"`
	Currency      string `db:"currency" json:"currency"`
	Slug          string `db:"slug" json:"slug,omitempty"`
	CatalogPublic bool   `db:"catalog_public" json:"catalogPublic"`
	CreatedAt     string `db:"created_at" json:"createdAt"`
	UpdatedAt     string `db:"updated_at" json:"updatedAt,omitempty"`
}
