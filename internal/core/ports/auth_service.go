package ports

import (
	"context"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a user account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService defines the authentication use cases. Both operations return a
// signed bearer token so a fresh registration is immediately logged in.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}
