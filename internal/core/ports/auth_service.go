package ports

import (
	"context"

	"github.com/clinicore/patients-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
