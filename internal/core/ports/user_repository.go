package ports

import (
	"context"

	"github.com/gatewise/auth-service/internal/core/domain"
)

// UserRepository defines the persistence interface for registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
