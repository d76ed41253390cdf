package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"itemvault/internal/config"
	"itemvault/internal/models"
	"itemvault/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	// ErrEmailTaken is returned on registration (or a profile email change)
	// when another account already holds the address.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	method     jwt.SigningMethod
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, jwtCfg config.JWT, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		signingKey: []byte(jwtCfg.Secret),
		method:     signingMethod(jwtCfg.Algorithm),
		tokenTTL:   tokenTTL,
	}
}

// signingMethod maps a config algorithm name to a jwt HMAC method.
// config.Load validates the name, so unknown values only appear in tests.
func signingMethod(name string) jwt.SigningMethod {
	switch name {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// Register hashes the password and creates a new user, rejecting duplicate
// emails before touching the store.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(ctx, input.Email, hash, input.FullName)
	if err != nil {
		return nil, err
	}

	// Re-read to pick up server-assigned fields (id, timestamps, is_active).
	created, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("user id=%d vanished after insert", id)
	}
	return created, nil
}

// Login validates credentials and returns a signed bearer token. Unknown email
// and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.HashedPassword, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(u.Email)
}

// ParseToken verifies signature and expiry and returns the subject email.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Only the configured HMAC method is acceptable; anything else is an
		// algorithm-substitution attempt.
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Authenticate resolves a bearer token to its user record.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	email, err := s.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// Subject no longer resolves to an account; same failure as a bad token.
		return nil, ErrInvalidToken
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash. A malformed stored hash simply fails
// verification.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT carrying the user email as subject
func (s *AuthService) issueToken(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(s.method, &jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	return token.SignedString(s.signingKey)
}
