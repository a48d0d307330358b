package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"cheeseblog/app/models"
	"cheeseblog/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes of its input.
const maxBcryptPassword = 72

// passwordKey returns the bytes fed to bcrypt. Longer passwords are
// reduced to a base64 SHA-256 digest so every byte still counts.
func passwordKey(password string) []byte {
	if len(password) <= maxBcryptPassword {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// AuthService handles registration and credential checks
type AuthService struct {
	accountRepo repositories.AccountRepository
	cost        int
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo repositories.AccountRepository) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		cost:        bcrypt.DefaultCost,
	}
}

// SetHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) SetHashCost(cost int) {
	s.cost = cost
}

// Register creates an account with a hashed password
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.Account, error) {
	account := &models.Account{Email: email, Name: name}
	account.BeforeCreate()

	if _, err := s.accountRepo.GetByEmail(ctx, account.Email); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	account.Password = string(hash)

	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return account, nil
}

// Login checks the credentials and returns the matching account
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), passwordKey(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return account, nil
}

// Account loads an account by id
func (s *AuthService) Account(ctx context.Context, id int) (*models.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}
