package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"multiciber/internal/repos"
	"multiciber/internal/services"
)

// fixed clock so window boundaries are deterministic
var statsNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

func seedSale(t *testing.T, db *sqlx.DB, id, status string, total float64, createdAt string, items ...string) {
	t.Helper()
	_, err := db.Exec(`
	  INSERT INTO sales (id, owner_id, type, payment_method, status, subtotal, discount, total, paid_amount, debt_amount, created_at)
	  VALUES (?, ?, 'product', 'cash', ?, ?, 0, ?, ?, ?, ?)`,
		id, owner, status, total, total,
		map[string]float64{"paid": total, "debt": 0}[status],
		map[string]float64{"paid": 0, "debt": total}[status],
		createdAt)
	require.NoError(t, err)
	for i, name := range items {
		_, err := db.Exec(`
		  INSERT INTO sale_items (sale_id, product_name, quantity, unit_price, line_total)
		  VALUES (?, ?, ?, 1, ?)`, id, name, i+1, float64(i+1))
		require.NoError(t, err)
	}
}

func seedExpense(t *testing.T, db *sqlx.DB, id, status, category string, amount float64, date string) {
	t.Helper()
	_, err := db.Exec(`
	  INSERT INTO expenses (id, owner_id, description, amount, category, status, expense_date)
	  VALUES (?, ?, ?, ?, ?, ?, ?)`, id, owner, "gasto "+id, amount, category, status, date)
	require.NoError(t, err)
}

func at(t time.Time) string { return t.Format(repos.TimeLayout) }

func TestDashboard_TodayCountsPaidOnly(t *testing.T) {
	db := memdb(t)
	svc := services.NewStatsService(repos.NewStatsRepo(db))

	today := statsNow
	seedSale(t, db, "s-1", "paid", 30, at(today.Add(-2*time.Hour)))
	seedSale(t, db, "s-2", "paid", 45, at(today.Add(-1*time.Hour)))
	seedSale(t, db, "s-3", "debt", 100, at(today.Add(-30*time.Minute)))
	// yesterday, outside the window
	seedSale(t, db, "s-4", "paid", 999, at(today.AddDate(0, 0, -1)))

	stats, err := svc.Dashboard(owner, statsNow)
	require.NoError(t, err)
	require.True(t, stats.Today.Revenue.Equal(dec(75)), "today revenue=%s", stats.Today.Revenue)
	require.Equal(t, 2, stats.Today.Transactions)
}

func TestDashboard_MonthRevenueExpensesProfit(t *testing.T) {
	db := memdb(t)
	svc := services.NewStatsService(repos.NewStatsRepo(db))

	seedSale(t, db, "s-1", "paid", 200, "2025-06-02 10:00:00")
	seedSale(t, db, "s-2", "paid", 300, "2025-06-10 10:00:00")
	seedSale(t, db, "s-3", "debt", 500, "2025-06-11 10:00:00")
	// previous month
	seedSale(t, db, "s-4", "paid", 50, "2025-05-31 23:59:59")

	seedExpense(t, db, "e-1", "paid", "servicios", 80, "2025-06-03")
	seedExpense(t, db, "e-2", "paid", "", 20, "2025-06-05")
	// pending expenses are not spent money yet
	seedExpense(t, db, "e-3", "pending", "renta", 400, "2025-06-07")
	// previous month
	seedExpense(t, db, "e-4", "paid", "servicios", 15, "2025-05-30")

	stats, err := svc.Dashboard(owner, statsNow)
	require.NoError(t, err)
	require.True(t, stats.Month.Revenue.Equal(dec(500)))
	require.Equal(t, 2, stats.Month.Transactions)
	require.True(t, stats.Month.Expenses.Equal(dec(100)))
	require.True(t, stats.Month.Profit.Equal(dec(400)))

	require.Len(t, stats.ExpensesByCategory, 2)
	require.True(t, stats.ExpensesByCategory["servicios"].Equal(dec(80)))
	require.True(t, stats.ExpensesByCategory["otros"].Equal(dec(20)), "blank category folds into otros")
}

func TestDashboard_TopProductTieBreaksByName(t *testing.T) {
	db := memdb(t)
	svc := services.NewStatsService(repos.NewStatsRepo(db))

	seedSale(t, db, "s-1", "paid", 10, "2025-06-05 09:00:00")
	seedSale(t, db, "s-2", "paid", 10, "2025-06-06 09:00:00")
	mustExec(t, db, `INSERT INTO sale_items (sale_id, product_name, quantity, unit_price, line_total) VALUES
	  ('s-1', 'Zanahoria', 5, 1, 5),
	  ('s-2', 'Aguacate', 3, 1, 3),
	  ('s-2', 'Aguacate', 2, 1, 2)`)
	// debt sales never reach the leaderboard
	seedSale(t, db, "s-3", "debt", 50, "2025-06-07 09:00:00")
	mustExec(t, db, `INSERT INTO sale_items (sale_id, product_name, quantity, unit_price, line_total)
	  VALUES ('s-3', 'Mango', 40, 1, 40)`)

	stats, err := svc.Dashboard(owner, statsNow)
	require.NoError(t, err)
	require.NotNil(t, stats.TopProduct)
	require.Equal(t, "Aguacate", stats.TopProduct.Name)
	require.Equal(t, 5, stats.TopProduct.Quantity)
}

func TestDashboard_TopProductNilWhenNoSales(t *testing.T) {
	db := memdb(t)
	svc := services.NewStatsService(repos.NewStatsRepo(db))

	stats, err := svc.Dashboard(owner, statsNow)
	require.NoError(t, err)
	require.Nil(t, stats.TopProduct)
}

func TestDashboard_Last7DaysFillsGaps(t *testing.T) {
	db := memdb(t)
	svc := services.NewStatsService(repos.NewStatsRepo(db))

	seedSale(t, db, "s-1", "paid", 40, "2025-06-13 12:00:00")
	seedSale(t, db, "s-2", "paid", 60, "2025-06-15 08:00:00")
	// eight days back, outside the series
	seedSale(t, db, "s-3", "paid", 70, "2025-06-07 12:00:00")

	stats, err := svc.Dashboard(owner, statsNow)
	require.NoError(t, err)
	require.Len(t, stats.Last7Days, 7)

	// ascending days from 06-09 through 06-15
	for i, ds := range stats.Last7Days {
		want := fmt.Sprintf("2025-06-%02d", 9+i)
		require.Equal(t, want, ds.Date)
	}
	require.True(t, stats.Last7Days[0].Revenue.IsZero())
	require.True(t, stats.Last7Days[4].Revenue.Equal(dec(40)))
	require.True(t, stats.Last7Days[6].Revenue.Equal(dec(60)))
	require.Equal(t, 1, stats.Last7Days[6].Transactions)
}

func TestDashboard_EmptyLedger(t *testing.T) {
	db := memdb(t)
	svc := services.NewStatsService(repos.NewStatsRepo(db))

	stats, err := svc.Dashboard(owner, statsNow)
	require.NoError(t, err)
	require.True(t, stats.Today.Revenue.IsZero())
	require.Zero(t, stats.Today.Transactions)
	require.True(t, stats.Month.Profit.IsZero())
	require.Len(t, stats.Last7Days, 7)
	require.Empty(t, stats.ExpensesByCategory)
}

func mustExec(t *testing.T, db *sqlx.DB, q string, args ...any) {
	t.Helper()
	_, err := db.Exec(q, args...)
	require.NoError(t, err)
}
