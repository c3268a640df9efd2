package ports

import (
	"context"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// The CRM repositories share a common shape: lists are ordered by descending
// creation time, single-row reads embed related records, Update takes a map of
// column changes (a nil value clears a nullable column) and returns the
// reloaded row, and OwnerID resolves the owning user for the authorization
// gate without loading the full record. OwnerID returns "" for unowned rows.

type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, changes map[string]any) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	OwnerID(ctx context.Context, id string) (string, error)
}

type ContactRepository interface {
	List(ctx context.Context) ([]domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, id string, changes map[string]any) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	OwnerID(ctx context.Context, id string) (string, error)
}

type DealRepository interface {
	List(ctx context.Context) ([]domain.Deal, error)
	Create(ctx context.Context, deal *domain.Deal) error
	FindByID(ctx context.Context, id string) (*domain.Deal, error)
	Update(ctx context.Context, id string, changes map[string]any) (*domain.Deal, error)
	Delete(ctx context.Context, id string) error
	OwnerID(ctx context.Context, id string) (string, error)
}

type ActivityRepository interface {
	List(ctx context.Context) ([]domain.Activity, error)
	Create(ctx context.Context, activity *domain.Activity) error
	FindByID(ctx context.Context, id string) (*domain.Activity, error)
	Update(ctx context.Context, id string, changes map[string]any) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
	OwnerID(ctx context.Context, id string) (string, error)
}
