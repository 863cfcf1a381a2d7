package ports

import (
	"context"

	"github.com/gatewise/auth-service/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
