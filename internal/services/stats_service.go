package services

import (
	"time"

	"multiciber/internal/domain"
	"multiciber/internal/repos"

	"github.com/shopspring/decimal"
)

// StatsService computes the dashboard aggregates. Read-only, owner-scoped.
// Windows are derived from the caller-supplied clock in server-local time.
type StatsService struct {
	Stats *repos.StatsRepo
}

func NewStatsService(stats *repos.StatsRepo) *StatsService {
	return &StatsService{Stats: stats}
}

func (s *StatsService) Dashboard(ownerID string, now time.Time) (domain.DashboardStats, error) {
	var out domain.DashboardStats

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	weekStart := dayStart.AddDate(0, 0, -6)
	tomorrow := dayStart.AddDate(0, 0, 1)

	revenue, count, err := s.Stats.Revenue(ownerID, stamp(dayStart), stamp(tomorrow))
	if err != nil {
		return out, err
	}
	out.Today = domain.PeriodStats{Revenue: revenue, Transactions: count}

	revenue, count, err = s.Stats.Revenue(ownerID, stamp(monthStart), stamp(nextMonth))
	if err != nil {
		return out, err
	}
	expenses, err := s.Stats.ExpenseTotal(ownerID, day(monthStart), day(nextMonth.AddDate(0, 0, -1)))
	if err != nil {
		return out, err
	}
	out.Month = domain.MonthStats{
		Revenue:      revenue,
		Transactions: count,
		Expenses:     expenses,
		Profit:       revenue.Sub(expenses),
	}

	out.TopProduct, err = s.Stats.TopProduct(ownerID, stamp(monthStart), stamp(nextMonth))
	if err != nil {
		return out, err
	}

	byDay, err := s.Stats.DailyRevenue(ownerID, stamp(weekStart), stamp(tomorrow))
	if err != nil {
		return out, err
	}
	out.Last7Days = make([]domain.DayStats, 0, 7)
	for d := weekStart; d.Before(tomorrow); d = d.AddDate(0, 0, 1) {
		key := day(d)
		if ds, ok := byDay[key]; ok {
			out.Last7Days = append(out.Last7Days, ds)
		} else {
			out.Last7Days = append(out.Last7Days, domain.DayStats{Date: key, Revenue: decimal.Zero})
		}
	}

	out.ExpensesByCategory, err = s.Stats.ExpensesByCategory(ownerID, day(monthStart), day(nextMonth.AddDate(0, 0, -1)))
	if err != nil {
		return out, err
	}
	return out, nil
}

func stamp(t time.Time) string { return t.Format(repos.TimeLayout) }
func day(t time.Time) string   { return t.Format("2006-01-02") }
