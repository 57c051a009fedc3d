package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/models"
	"github.com/sonit/feedbacksite/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = apierrors.Duplicate("username already exists")
	ErrEmailTaken         = apierrors.Duplicate("email already exists")
	ErrAccountTaken       = apierrors.Duplicate("username or email already exists")
	ErrInvalidCredentials = apierrors.Authentication("invalid username or password")
	ErrAccountNotFound    = apierrors.Missing("account not found")
	ErrInvalidUsername    = apierrors.Validation(fmt.Sprintf("username must be between %d and %d characters", constants.MinUsernameLength, constants.MaxUsernameLength))
	ErrInvalidEmail       = apierrors.Validation("email must be a valid email address")
	ErrEmailTooLong       = apierrors.Validation(fmt.Sprintf("email must be at most %d characters", constants.MaxEmailLength))
	ErrEmptyUpdate        = apierrors.Validation("no fields to update")

	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles account related business logic.
type AuthService struct {
	store repository.Store
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store) *AuthService {
	return &AuthService{
		store: store,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := ensureUsernameFree(ctx, tx, username, 0); err != nil {
			return err
		}
		if err := ensureEmailFree(ctx, tx, email, 0); err != nil {
			return err
		}

		if err := tx.Accounts().Create(ctx, account); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAccountTaken
			}
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated account.
// Unknown usernames and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.Account, error) {
	account, err := s.store.Accounts().FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *AuthService) GetAccount(ctx context.Context, id uint64) (*models.Account, error) {
	account, err := s.store.Accounts().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return account, nil
}

// UpdateAccountInput holds the fields to change. Nil fields are left untouched.
type UpdateAccountInput struct {
	Username *string
	Email    *string
	Password *string
}

// UpdateAccount applies a partial update to an account.
func (s *AuthService) UpdateAccount(ctx context.Context, id uint64, input UpdateAccountInput) (*models.Account, error) {
	if input.Username == nil && input.Email == nil && input.Password == nil {
		return nil, ErrEmptyUpdate
	}

	var (
		username, email, passwordHash string
		err                           error
	)
	if input.Username != nil {
		if username, err = normalizeUsername(*input.Username); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if email, err = normalizeEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		if err := ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		if passwordHash, err = hashPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	var account *models.Account
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		found, err := tx.Accounts().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to find account: %w", err)
		}

		if input.Username != nil {
			if err := ensureUsernameFree(ctx, tx, username, id); err != nil {
				return err
			}
			found.Username = username
		}
		if input.Email != nil {
			if err := ensureEmailFree(ctx, tx, email, id); err != nil {
				return err
			}
			found.Email = email
		}
		if input.Password != nil {
			found.PasswordHash = passwordHash
		}

		if err := tx.Accounts().Update(ctx, found); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAccountTaken
			}
			return fmt.Errorf("failed to update account: %w", err)
		}

		account = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account with all of its tabs, sub-tabs and feedback.
func (s *AuthService) DeleteAccount(ctx context.Context, id uint64) error {
	return s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Accounts().FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to find account: %w", err)
		}

		if err := tx.Accounts().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return nil
	})
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n < constants.MinUsernameLength || n > constants.MaxUsernameLength {
		return "", ErrInvalidUsername
	}
	return username, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if utf8.RuneCountInString(email) > constants.MaxEmailLength {
		return "", ErrEmailTooLong
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToHashPassword, err)
	}
	return string(hashed), nil
}

// ensureUsernameFree fails when another account than self holds username.
func ensureUsernameFree(ctx context.Context, tx repository.Store, username string, self uint64) error {
	existing, err := tx.Accounts().FindByUsername(ctx, username)
	if err == nil {
		if existing.ID != self {
			return ErrUsernameTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

func ensureEmailFree(ctx context.Context, tx repository.Store, email string, self uint64) error {
	existing, err := tx.Accounts().FindByEmail(ctx, email)
	if err == nil {
		if existing.ID != self {
			return ErrEmailTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}
