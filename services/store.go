package services

import (
	"context"
	"database/sql"
	"time"

	"finance-api/models"
	"finance-api/utils"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Storage is the persistence gateway consumed by the service layer. Every
// category/transaction operation is scoped to a user id; there is no
// unscoped query surface, which keeps the ownership invariant in one place.
type Storage interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	SetTOTPSecret(ctx context.Context, userID, encryptedSecret string) error
	SetTOTPEnabled(ctx context.Context, userID string, enabled bool) error

	CreateCategory(ctx context.Context, userID, name string) (*models.Category, error)
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID, name string) (*models.Category, error)

	CreateTransaction(ctx context.Context, userID string, req models.TransactionRequest) (*models.Transaction, error)
	ListTransactionsInRange(ctx context.Context, userID string, start, end time.Time) ([]models.Transaction, error)
	SumAmounts(ctx context.Context, userID string, start, end time.Time, txType string) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, userID string, start, end time.Time, txType string) ([]models.CategoryTotal, error)
}

const uniqueViolation = "23505"

// Store is the Postgres implementation of Storage.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	var totpSecret sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, totp_secret, totp_enabled, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &totpSecret, &user.TOTPEnabled, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.TOTPSecret = totpSecret.String
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := models.User{Email: email, PasswordHash: passwordHash}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, email, passwordHash).Scan(&user.ID, &user.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) SetTOTPSecret(ctx context.Context, userID, encryptedSecret string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = $1, totp_enabled = FALSE WHERE id = $2
	`, encryptedSecret, userID)
	return err
}

func (s *Store) SetTOTPEnabled(ctx context.Context, userID string, enabled bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_enabled = $1 WHERE id = $2
	`, enabled, userID)
	return err
}

func (s *Store) CreateCategory(ctx context.Context, userID, name string) (*models.Category, error) {
	category := models.Category{Name: name, UserID: userID}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`, name, userID).Scan(&category.ID)

	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, user_id
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory renames a category. The WHERE clause scopes by owner, so a
// non-owner gets ErrNotFound without ever learning the row exists.
func (s *Store) UpdateCategory(ctx context.Context, userID, categoryID, name string) (*models.Category, error) {
	category := models.Category{ID: categoryID, Name: name, UserID: userID}

	err := s.db.QueryRowContext(ctx, `
		UPDATE categories SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id
	`, name, categoryID, userID).Scan(&category.ID)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateTransaction inserts a transaction after checking, inside the same
// database transaction, that the referenced category belongs to the same
// user. A foreign category yields ErrNotFound.
func (s *Store) CreateTransaction(ctx context.Context, userID string, req models.TransactionRequest) (*models.Transaction, error) {
	record := models.Transaction{
		Amount:          req.Amount,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		Type:            req.Type,
		UserID:          userID,
		CategoryID:      req.CategoryID,
	}

	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		var owned bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)
		`, req.CategoryID, userID).Scan(&owned)
		if err != nil {
			return err
		}
		if !owned {
			return ErrNotFound
		}

		return tx.QueryRowContext(ctx, `
			INSERT INTO transactions (amount, description, transaction_date, type, user_id, category_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, req.Amount, req.Description, req.TransactionDate, req.Type, userID, req.CategoryID).Scan(&record.ID, &record.CreatedAt)
	})

	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) ListTransactionsInRange(ctx context.Context, userID string, start, end time.Time) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, COALESCE(description, ''), transaction_date, created_at, type, user_id, category_id
		FROM transactions
		WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date <= $3
		ORDER BY transaction_date
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Description, &t.TransactionDate, &t.CreatedAt, &t.Type, &t.UserID, &t.CategoryID); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// SumAmounts totals one transaction type over an inclusive date range.
// COALESCE guarantees a decimal zero, never NULL, when nothing matched.
func (s *Store) SumAmounts(ctx context.Context, userID string, start, end time.Time, txType string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND transaction_date >= $3 AND transaction_date <= $4
	`, userID, txType, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumByCategory returns one row per category that has at least one matching
// transaction; categories with nothing in range are omitted, not zeroed.
func (s *Store) SumByCategory(ctx context.Context, userID string, start, end time.Time, txType string) ([]models.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = $2 AND t.transaction_date >= $3 AND t.transaction_date <= $4
		GROUP BY c.name
		ORDER BY total DESC
	`, userID, txType, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Name, &ct.Total); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}
