package repos

import (
	"multiciber/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// StatsRepo holds the read-only aggregation queries behind the dashboard.
// Sale windows are half-open [from, to) over created_at; expense windows are
// inclusive date ranges over expense_date. Only paid rows count.
type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

type revenueRow struct {
	Revenue      decimal.Decimal `db:"revenue"`
	Transactions int             `db:"transactions"`
}

func (r *StatsRepo) Revenue(ownerID, from, to string) (decimal.Decimal, int, error) {
	var row revenueRow
	err := r.db.Get(&row, `
	  SELECT COALESCE(SUM(total),0) AS revenue, COUNT(*) AS transactions
	  FROM sales
	  WHERE owner_id=? AND status='paid' AND created_at >= ? AND created_at < ?
	`, ownerID, from, to)
	return row.Revenue, row.Transactions, err
}

// TopProduct returns nil when no paid sale items fall in the window.
// Ties break lexicographically by product name.
func (r *StatsRepo) TopProduct(ownerID, from, to string) (*domain.TopProduct, error) {
	var tp domain.TopProduct
	err := r.db.Get(&tp, `
	  SELECT si.product_name AS name, SUM(si.quantity) AS quantity
	  FROM sale_items si
	  JOIN sales s ON s.id = si.sale_id
	  WHERE s.owner_id=? AND s.status='paid' AND s.created_at >= ? AND s.created_at < ?
	  GROUP BY si.product_name
	  ORDER BY quantity DESC, si.product_name ASC
	  LIMIT 1
	`, ownerID, from, to)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &tp, nil
}

type dayRow struct {
	Day          string          `db:"day"`
	Revenue      decimal.Decimal `db:"revenue"`
	Transactions int             `db:"transactions"`
}

// DailyRevenue groups paid sales by calendar day. Days without sales are
// absent; the service fills the gaps.
func (r *StatsRepo) DailyRevenue(ownerID, from, to string) (map[string]domain.DayStats, error) {
	var rows []dayRow
	err := r.db.Select(&rows, `
	  SELECT date(created_at) AS day, COALESCE(SUM(total),0) AS revenue, COUNT(*) AS transactions
	  FROM sales
	  WHERE owner_id=? AND status='paid' AND created_at >= ? AND created_at < ?
	  GROUP BY date(created_at)
	`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.DayStats, len(rows))
	for _, d := range rows {
		out[d.Day] = domain.DayStats{Date: d.Day, Revenue: d.Revenue, Transactions: d.Transactions}
	}
	return out, nil
}

func (r *StatsRepo) ExpenseTotal(ownerID, fromDate, toDate string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Get(&total, `
	  SELECT COALESCE(SUM(amount),0)
	  FROM expenses
	  WHERE owner_id=? AND status='paid' AND expense_date >= ? AND expense_date <= ?
	`, ownerID, fromDate, toDate)
	return total, err
}

type categoryTotalRow struct {
	Category string          `db:"category"`
	Total    decimal.Decimal `db:"total"`
}

func (r *StatsRepo) ExpensesByCategory(ownerID, fromDate, toDate string) (map[string]decimal.Decimal, error) {
	var rows []categoryTotalRow
	err := r.db.Select(&rows, `
	  SELECT category, COALESCE(SUM(amount),0) AS total
	  FROM expenses
	  WHERE owner_id=? AND status='paid' AND expense_date >= ? AND expense_date <= ?
	  GROUP BY category
	`, ownerID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		name := row.Category
		if name == "" {
			name = "otros"
		}
		out[name] = out[name].Add(row.Total)
	}
	return out, nil
}
