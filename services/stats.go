package services

import (
	"context"
	"time"

	"finance-api/models"

	"github.com/shopspring/decimal"
)

// Reporting operations. All of them take an inclusive [start, end] range;
// an inverted range is accepted and simply matches nothing, which callers
// asked for explicitly rather than treating it as a validation failure.

// Report lists the caller's transactions inside the range.
func (s *FinanceService) Report(ctx context.Context, user *models.User, start, end time.Time) ([]models.Transaction, error) {
	return s.store.ListTransactionsInRange(ctx, user.ID, start, end)
}

// Stats returns the income/expense totals and their difference. All three
// fields are always present; an empty range yields zeros, not an error.
func (s *FinanceService) Stats(ctx context.Context, user *models.User, start, end time.Time) (*models.Stats, error) {
	income, err := s.store.SumAmounts(ctx, user.ID, start, end, models.TypeIncome)
	if err != nil {
		return nil, err
	}
	expense, err := s.store.SumAmounts(ctx, user.ID, start, end, models.TypeExpense)
	if err != nil {
		return nil, err
	}
	stats := BuildStats(income, expense)
	return &stats, nil
}

// CategoryBreakdown returns the per-category expense totals that feed the
// pie chart. Income is excluded. An empty breakdown is ErrNoData so the
// chart client can show a message instead of rendering an empty image.
func (s *FinanceService) CategoryBreakdown(ctx context.Context, user *models.User, start, end time.Time) ([]models.CategoryTotal, error) {
	totals, err := s.store.SumByCategory(ctx, user.ID, start, end, models.TypeExpense)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, ErrNoData
	}
	return totals, nil
}

// BuildStats fixes the aggregation arithmetic in one place:
// balance = income - expense, computed in decimal, never floats.
func BuildStats(income, expense decimal.Decimal) models.Stats {
	return models.Stats{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}
