package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/minibank/internal/domain"
)

// AuthUseCase handles registration and credential verification.
type AuthUseCase struct {
	userRepo   UserRepository
	idGen      IDGenerator
	bcryptCost int
}

// NewAuthUseCase creates a new AuthUseCase. A non-positive cost falls
// back to the bcrypt default.
func NewAuthUseCase(userRepo UserRepository, idGen IDGenerator, bcryptCost int) *AuthUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &AuthUseCase{
		userRepo:   userRepo,
		idGen:      idGen,
		bcryptCost: bcryptCost,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email    string
	Password string
}

// Register creates a new user with a hashed password. Email uniqueness
// is enforced by the repository; a duplicate registration fails with
// ErrEmailTaken.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          email,
		HashedPassword: string(hash),
		CreatedAt:      time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AuthenticateInput represents login credentials.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials. A missing user and a wrong password
// both fail with ErrInvalidCredentials so the response does not reveal
// which check failed.
func (uc *AuthUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
