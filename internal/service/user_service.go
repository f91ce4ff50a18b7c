package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, user *domain.User, password string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register validates and creates a new user account. The supplied password
// is stored as a bcrypt hash, never as plaintext.
func (s *userService) Register(ctx context.Context, user *domain.User, password string) error {
	if err := validateEmail(user.Email); err != nil {
		return err
	}
	if password == "" {
		return validationError("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}
	if user.Role != domain.RoleCustomer && user.Role != domain.RoleAdmin {
		return validationError("unknown role %q", user.Role)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// Update validates the record and replaces it. The target must already
// exist; the existence read happens before any write.
func (s *userService) Update(ctx context.Context, user *domain.User) error {
	if err := validateEmail(user.Email); err != nil {
		return err
	}

	existing, err := s.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return err
	}

	// Full-record replace keeps the stored credential when the caller did
	// not supply a new one.
	if user.PasswordHash == "" {
		user.PasswordHash = existing.PasswordHash
	}

	return s.userRepo.Update(ctx, user)
}

// Delete removes a user by id
func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

// Authenticate returns the user when the email exists and the password
// matches the stored bcrypt hash, ErrInvalidCredentials otherwise. A missing
// user and a wrong password are deliberately indistinguishable.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return validationError("invalid email format")
	}
	return nil
}
