package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

const tokenIssuer = "meetdesk"

// AuthService implements credential checks and session token handling.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL, now: time.Now}
}

// HashPassword bcrypts a plain password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !user.CanLogin() {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	return token, user, nil
}

// ResolveToken verifies the token and loads its user. The persisted user id
// must match the token subject.
func (s *AuthService) ResolveToken(ctx context.Context, token, userID string) (*domain.User, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	if userID != "" && userID != strconv.FormatInt(claims.UserID, 10) {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return user, nil
}

func (s *AuthService) VerifyToken(token string) (*ports.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrNotAuthenticated
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	out := &ports.TokenClaims{UserID: id, Permissions: domain.PermissionSet{}}
	out.Username, _ = claims["username"].(string)
	role, _ := claims["role"].(string)
	out.Role = domain.Role(role)

	raw, _ := claims["perms"].([]interface{})
	for _, v := range raw {
		str, _ := v.(string)
		p, err := domain.ParsePermission(str)
		if err != nil {
			continue
		}
		out.Permissions[p] = struct{}{}
	}
	return out, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	perms := make([]string, 0, len(user.Permissions))
	for _, p := range user.Permissions {
		perms = append(perms, string(p))
	}

	claims := jwt.MapClaims{
		"iss":      tokenIssuer,
		"sub":      user.IDString(),
		"username": user.Username,
		"role":     string(user.Role),
		"perms":    perms,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
