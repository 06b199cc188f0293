package services

import (
	"errors"
	"fmt"

	"livemart/internal/models"
	"livemart/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Identity abstracts how a login request maps to a stored user. Local
// credentials and external (OAuth-style) logins both resolve through it, so
// business logic only ever sees a models.User.
type Identity interface {
	Resolve(repo repositories.UserRepository) (*models.User, error)
}

// PasswordIdentity is a local email/password login.
type PasswordIdentity struct {
	Email    string
	Password string
}

// Resolve looks the user up and checks the password hash. The error never
// reveals whether the email exists.
func (id PasswordIdentity) Resolve(repo repositories.UserRepository) (*models.User, error) {
	user, err := repo.GetByEmail(id.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(id.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// ExternalIdentity is a login already verified by an external provider. The
// provider vouches for the email, so a missing account is created enabled.
type ExternalIdentity struct {
	Email    string
	FullName string
}

// Resolve finds or creates the user behind the external login.
func (id ExternalIdentity) Resolve(repo repositories.UserRepository) (*models.User, error) {
	user, err := repo.GetByEmail(id.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	// The password column stays unusable for local login: a throwaway
	// random value is hashed in.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	user = &models.User{
		Email:    id.Email,
		FullName: id.FullName,
		Password: string(hashed),
		Role:     models.RoleCustomer,
		Enabled:  true,
	}
	if err := repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create externally identified user: %w", err)
	}
	return user, nil
}
