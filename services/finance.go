package services

import (
	"context"
	"errors"

	"finance-api/models"
	"finance-api/utils"
)

// FinanceService composes the credential store, the token issuer and the
// persistence gateway into the user-facing operations. Every operation
// resolves the caller first and scopes every downstream call to that user.
type FinanceService struct {
	store  Storage
	tokens *utils.TokenManager
	cipher *utils.Cipher
}

// NewFinanceService wires the service. cipher may be nil, in which case the
// 2FA endpoints report an error instead of storing secrets in the clear.
func NewFinanceService(store Storage, tokens *utils.TokenManager, cipher *utils.Cipher) *FinanceService {
	return &FinanceService{store: store, tokens: tokens, cipher: cipher}
}

// Register creates a user. The byte-length cap exists because bcrypt
// silently truncates longer inputs.
func (s *FinanceService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if len(password) > utils.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// The unique constraint is the authority on duplicates; no pre-check
	// so two concurrent registrations cannot both pass.
	return s.store.CreateUser(ctx, email, hash)
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password produce the same error.
func (s *FinanceService) Login(ctx context.Context, email, password, totpCode string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	if user.TOTPEnabled {
		if totpCode == "" {
			return "", ErrTOTPRequired
		}
		secret, err := s.totpSecret(user)
		if err != nil {
			return "", err
		}
		if !utils.VerifyTOTP(secret, totpCode) {
			return "", ErrInvalidCredentials
		}
	}

	return s.tokens.Generate(user.Email)
}

// CurrentUser resolves a token subject to a user row. A subject without a
// matching row fails closed.
func (s *FinanceService) CurrentUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	return user, err
}

func (s *FinanceService) CreateCategory(ctx context.Context, user *models.User, name string) (*models.Category, error) {
	return s.store.CreateCategory(ctx, user.ID, name)
}

func (s *FinanceService) ListCategories(ctx context.Context, user *models.User) ([]models.Category, error) {
	return s.store.ListCategories(ctx, user.ID)
}

func (s *FinanceService) RenameCategory(ctx context.Context, user *models.User, categoryID, name string) (*models.Category, error) {
	return s.store.UpdateCategory(ctx, user.ID, categoryID, name)
}

// RecordTransaction validates input and inserts. The gateway rejects
// categories owned by anyone else.
func (s *FinanceService) RecordTransaction(ctx context.Context, user *models.User, req models.TransactionRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		return nil, ErrInvalidType
	}
	return s.store.CreateTransaction(ctx, user.ID, req)
}

// ============================================================================
// 2FA MANAGEMENT
// ============================================================================

var errCipherNotConfigured = errors.New("2FA is not configured on this server")

// SetupTOTP generates a fresh secret, stores it encrypted and disabled, and
// returns the provisioning URL. Enabling requires a verified code.
func (s *FinanceService) SetupTOTP(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	if s.cipher == nil {
		return nil, errCipherNotConfigured
	}

	secret, url, err := utils.GenerateTOTPSecret(user.Email)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt([]byte(secret))
	if err != nil {
		return nil, err
	}
	if err := s.store.SetTOTPSecret(ctx, user.ID, encrypted); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{Secret: secret, URL: url}, nil
}

// ConfirmTOTP enables 2FA once the user proves they hold the secret.
func (s *FinanceService) ConfirmTOTP(ctx context.Context, user *models.User, code string) error {
	secret, err := s.totpSecret(user)
	if err != nil {
		return err
	}
	if !utils.VerifyTOTP(secret, code) {
		return ErrInvalidCredentials
	}
	return s.store.SetTOTPEnabled(ctx, user.ID, true)
}

func (s *FinanceService) DisableTOTP(ctx context.Context, user *models.User) error {
	return s.store.SetTOTPEnabled(ctx, user.ID, false)
}

func (s *FinanceService) totpSecret(user *models.User) (string, error) {
	if s.cipher == nil {
		return "", errCipherNotConfigured
	}
	if user.TOTPSecret == "" {
		return "", ErrInvalidCredentials
	}
	secret, err := s.cipher.Decrypt(user.TOTPSecret)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
