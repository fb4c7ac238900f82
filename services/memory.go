package services

import (
	"context"
	"sync"
	"time"

	"finance-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory Storage used by tests and local development.
// It mirrors the Postgres store's semantics, including ownership scoping
// and the category check on transaction creation.
type MemoryStore struct {
	mu           sync.RWMutex
	users        []*models.User
	categories   []*models.Category
	transactions []*models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			dup := *u
			return &dup, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users = append(m.users, user)

	dup := *user
	return &dup, nil
}

func (m *MemoryStore) SetTOTPSecret(_ context.Context, userID, encryptedSecret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == userID {
			u.TOTPSecret = encryptedSecret
			u.TOTPEnabled = false
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) SetTOTPEnabled(_ context.Context, userID string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == userID {
			u.TOTPEnabled = enabled
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) CreateCategory(_ context.Context, userID, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	category := &models.Category{
		ID:     uuid.New().String(),
		Name:   name,
		UserID: userID,
	}
	m.categories = append(m.categories, category)

	dup := *category
	return &dup, nil
}

func (m *MemoryStore) ListCategories(_ context.Context, userID string) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateCategory(_ context.Context, userID, categoryID, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.ID == categoryID && c.UserID == userID {
			c.Name = name
			dup := *c
			return &dup, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateTransaction(_ context.Context, userID string, req models.TransactionRequest) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned := false
	for _, c := range m.categories {
		if c.ID == req.CategoryID && c.UserID == userID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrNotFound
	}

	tx := &models.Transaction{
		ID:              uuid.New().String(),
		Amount:          req.Amount,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		CreatedAt:       time.Now(),
		Type:            req.Type,
		UserID:          userID,
		CategoryID:      req.CategoryID,
	}
	m.transactions = append(m.transactions, tx)

	dup := *tx
	return &dup, nil
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func (m *MemoryStore) ListTransactionsInRange(_ context.Context, userID string, start, end time.Time) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID && inRange(t.TransactionDate, start, end) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *MemoryStore) SumAmounts(_ context.Context, userID string, start, end time.Time, txType string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := decimal.Zero
	for _, t := range m.transactions {
		if t.UserID == userID && t.Type == txType && inRange(t.TransactionDate, start, end) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (m *MemoryStore) SumByCategory(_ context.Context, userID string, start, end time.Time, txType string) ([]models.CategoryTotal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make(map[string]string, len(m.categories))
	for _, c := range m.categories {
		names[c.ID] = c.Name
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range m.transactions {
		if t.UserID != userID || t.Type != txType || !inRange(t.TransactionDate, start, end) {
			continue
		}
		name := names[t.CategoryID]
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] = totals[name].Add(t.Amount)
	}

	var out []models.CategoryTotal
	for _, name := range order {
		out = append(out, models.CategoryTotal{Name: name, Total: totals[name]})
	}
	return out, nil
}
