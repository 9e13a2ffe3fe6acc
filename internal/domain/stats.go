package domain

import "github.com/shopspring/decimal"

type PeriodStats struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

type MonthStats struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
}

type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type DayStats struct {
	Date         string          `json:"date"` // YYYY-MM-DD, server-local
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

// DashboardStats is the reporting payload for GET /api/dashboard/stats.
type DashboardStats struct {
	Today              PeriodStats                `json:"today"`
	Month              MonthStats                 `json:"month"`
	TopProduct         *TopProduct                `json:"topProduct"`
	Last7Days          []DayStats                 `json:"last7Days"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
}
