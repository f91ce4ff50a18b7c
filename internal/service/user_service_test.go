package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

func TestProperty_RegistrationHashesPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are stored as bcrypt hashes, never plaintext", prop.ForAll(
		func(email string, password string, firstName string, lastName string) bool {
			userRepo := newMockUserRepository()
			service := NewUserService(userRepo)
			ctx := context.Background()

			user := &domain.User{Email: email, FirstName: firstName, LastName: lastName}
			if err := service.Register(ctx, user, password); err != nil {
				// Generated input tripping a precondition is not a failure
				return true
			}

			if user.PasswordHash == password {
				t.Logf("FAIL: password stored as plaintext for email %s", email)
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
				t.Logf("FAIL: stored hash does not verify against the password: %v", err)
				return false
			}

			stored, err := userRepo.FindByEmail(ctx, email)
			if err != nil {
				t.Logf("FAIL: could not find stored user: %v", err)
				return false
			}
			if stored.PasswordHash != user.PasswordHash {
				t.Logf("FAIL: stored hash differs from returned hash")
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRegister_DefaultsToCustomerRole(t *testing.T) {
	service := NewUserService(newMockUserRepository())

	user := &domain.User{Email: "plain@example.com"}
	if err := service.Register(context.Background(), user, "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Role != domain.RoleCustomer {
		t.Errorf("role = %q, want %q", user.Role, domain.RoleCustomer)
	}
}

func TestRegister_RejectsBadInput(t *testing.T) {
	service := NewUserService(newMockUserRepository())
	ctx := context.Background()

	tests := []struct {
		name     string
		user     *domain.User
		password string
	}{
		{"missing at sign in email", &domain.User{Email: "not-an-email"}, "secret123"},
		{"empty password", &domain.User{Email: "a@b.com"}, ""},
		{"unknown role", &domain.User{Email: "a@b.com", Role: "SUPERVISOR"}, "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := service.Register(ctx, tt.user, tt.password); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := NewUserService(newMockUserRepository())
	ctx := context.Background()

	first := &domain.User{Email: "dup@example.com"}
	if err := service.Register(ctx, first, "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	second := &domain.User{Email: "dup@example.com"}
	if err := service.Register(ctx, second, "secret123"); !errors.Is(err, repository.ErrUserAlreadyExists) {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestAuthenticate(t *testing.T) {
	service := NewUserService(newMockUserRepository())
	ctx := context.Background()

	user := &domain.User{Email: "auth@example.com"}
	if err := service.Register(ctx, user, "right-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	matched, err := service.Authenticate(ctx, "auth@example.com", "right-password")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if matched.ID != user.ID {
		t.Errorf("matched user %d, want %d", matched.ID, user.ID)
	}

	// A wrong password and an unknown email must fail identically
	if _, err := service.Authenticate(ctx, "auth@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := service.Authenticate(ctx, "nobody@example.com", "right-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdate_CarriesStoredCredential(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo)
	ctx := context.Background()

	user := &domain.User{Email: "keep@example.com", FirstName: "Before"}
	if err := service.Register(ctx, user, "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	originalHash := user.PasswordHash

	updated := &domain.User{
		ID:        user.ID,
		Email:     "keep@example.com",
		FirstName: "After",
		Role:      domain.RoleCustomer,
		IsActive:  true,
	}
	if err := service.Update(ctx, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored, err := userRepo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.FirstName != "After" {
		t.Errorf("first name = %q, want %q", stored.FirstName, "After")
	}
	if stored.PasswordHash != originalHash {
		t.Error("stored credential changed on a credential-less update")
	}

	if _, err := service.Authenticate(ctx, "keep@example.com", "secret123"); err != nil {
		t.Errorf("Authenticate after update: %v", err)
	}
}

func TestUpdate_UnknownUser(t *testing.T) {
	service := NewUserService(newMockUserRepository())

	err := service.Update(context.Background(), &domain.User{ID: 99, Email: "ghost@example.com"})
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
