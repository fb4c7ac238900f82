package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. The type column is a closed enum, anything else is
// rejected before it reaches the database.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	Type            string          `json:"type"`
	UserID          string          `json:"-"`
	CategoryID      string          `json:"category_id"`
}

type TransactionRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"category_id" binding:"required"`
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	Type            string          `json:"type" binding:"required,oneof=income expense"`
}

// Stats is the period summary over a date range. All three fields are
// always set, zero when nothing matched.
type Stats struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CategoryTotal is one row of the expense breakdown that feeds the chart.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}
