package ports

import (
	"context"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// TokenClaims is the identity carried by a session token.
type TokenClaims struct {
	UserID      int64
	Username    string
	Role        domain.Role
	Permissions domain.PermissionSet
}

// AuthService checks credentials and issues/resolves session tokens.
type AuthService interface {
	// Login verifies the credential pair and returns a fresh token for the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// ResolveToken maps a persisted token and user id back to the user record.
	ResolveToken(ctx context.Context, token, userID string) (*domain.User, error)
	// VerifyToken validates a bearer token without touching the repository.
	VerifyToken(token string) (*TokenClaims, error)
}

// UserService serves the user administration pages.
type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
}
