package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	userRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/user"
)

// Claims is the JWT payload of a staff session
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies staff session tokens
type Service struct {
	userRepo UserRepository
	audit    AuditLog
	logger   Logger
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates the auth service
func NewService(userRepo UserRepository, audit AuditLog, logger Logger, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo: userRepo,
		audit:    audit,
		logger:   logger,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Login checks the credentials and, on success, returns a signed session
// token and the account it belongs to
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", username)
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", username, err)
		return "", nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("Login: token signing failed for username=%s: %v", username, err)
		return "", nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	if err := s.audit.Record("login", map[string]interface{}{
		"username": user.Username,
		"role":     string(user.Role),
	}); err != nil {
		s.logger.Error("Login: audit write failed for username=%s: %v", username, err)
	}

	s.logger.Info("Login: username=%s role=%s signed in", user.Username, user.Role)
	return token, user, nil
}

// VerifyToken parses and validates a session token, returning the actor it
// identifies
func (s *Service) VerifyToken(tokenString string) (domain.Actor, error) {
	if tokenString == "" {
		return domain.Actor{}, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Actor{}, ErrInvalidToken
	}

	return domain.Actor{Username: claims.Subject, Role: role}, nil
}

// TokenTTL returns how long issued tokens live, for cookie expiry
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// HashPassword produces the bcrypt hash stored for an account. The seeding
// tool uses this when creating the initial master user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
