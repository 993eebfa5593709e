package ports

import (
	"context"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// UserFilter narrows user listings. Zero values mean "no filter".
type UserFilter struct {
	Role       domain.Role
	Department string
	Search     string // partial, case-insensitive match on username, name or email
}

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
