package ports

import (
	"context"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// UserRepository defines persistence for users. List is ordered by descending
// creation time. Update applies the given column changes and returns the
// updated row; Delete returns the deleted row (the API echoes it back).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, changes map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
