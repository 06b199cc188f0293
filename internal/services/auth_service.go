package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"livemart/internal/models"
	"livemart/internal/repositories"
	"livemart/pkg/otpstore"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Mailer delivers one-time codes to users. The content and transport of the
// mail are outside the core; LogMailer is the default.
type Mailer interface {
	SendOTP(email, code string) error
}

// LogMailer writes the code to the process log instead of sending mail.
type LogMailer struct{}

func (LogMailer) SendOTP(email, code string) error {
	log.Printf("OTP for %s: %s (valid %s)", email, code, otpstore.TTL)
	return nil
}

// AuthService handles registration, OTP verification and login.
type AuthService struct {
	userRepo   repositories.UserRepository
	otpStore   otpstore.Store
	mailer     Mailer
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, otpStore otpstore.Store, mailer Mailer, jwtSecret string) *AuthService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &AuthService{
		userRepo:   userRepo,
		otpStore:   otpStore,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new user, hashes their password, stores them
// disabled, and sends an OTP to their email.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email %q: %w", user.Email, models.ErrAlreadyExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password
	user.Enabled = false

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	return s.issueOTP(ctx, user.Email)
}

// VerifyOTP checks the submitted code and enables the account on success.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if err := s.otpStore.Verify(ctx, email, code); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	user.Enabled = true
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to enable user %s: %w", email, err)
	}
	return nil
}

// ResendOTP issues a fresh code to an existing account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	if _, err := s.userRepo.GetByEmail(email); err != nil {
		return err
	}
	return s.issueOTP(ctx, email)
}

func (s *AuthService) issueOTP(ctx context.Context, email string) error {
	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := s.otpStore.Set(ctx, email, code); err != nil {
		return err
	}
	if err := s.mailer.SendOTP(email, code); err != nil {
		// The code is stored; resend covers a lost mail.
		log.Printf("Warning: failed to send OTP mail to %s: %v", email, err)
	}
	return nil
}

// Authenticate resolves any identity (local credentials or external login)
// to a user and returns a JWT for them.
func (s *AuthService) Authenticate(identity Identity) (string, error) {
	user, err := identity.Resolve(s.userRepo)
	if err != nil {
		return "", err
	}
	if !user.Enabled {
		return "", fmt.Errorf("account %s is not verified", user.Email)
	}
	return s.issueToken(user)
}

// LoginUser authenticates local credentials and returns a JWT token.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	return s.Authenticate(PasswordIdentity{Email: email, Password: password})
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
