package ports

import (
	"context"

	"github.com/clinicore/patients-api/internal/core/domain"
)

// AuthRepository defines the interface for account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
