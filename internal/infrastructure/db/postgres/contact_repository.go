package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// ContactRepository persists contacts via gorm. Reads preload the contact's
// account, owner and activities.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Account").
		Preload("Owner").
		Preload("Activities")
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	var contacts []domain.Contact
	if err := r.withRelations(ctx).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("insert contact: %w", translateWriteError(err))
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.withRelations(ctx).Where("id = ?", id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return &contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, changes map[string]any) (*domain.Contact, error) {
	if err := r.exists(ctx, id); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).Model(&domain.Contact{}).Where("id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("update contact: %w", translateWriteError(err))
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Contact{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) OwnerID(ctx context.Context, id string) (string, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).Select("owner_id").Where("id = ?", id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrContactNotFound
		}
		return "", fmt.Errorf("resolve contact owner: %w", err)
	}
	if contact.OwnerID == nil {
		return "", nil
	}
	return *contact.OwnerID, nil
}

func (r *ContactRepository) exists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Contact{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check contact: %w", err)
	}
	if count == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
