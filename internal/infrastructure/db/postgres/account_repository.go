package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// AccountRepository persists accounts via gorm. Single-row reads preload the
// owning user and the account's contacts, deals and activities.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&accounts).
		Error
	if err != nil {
		return nil, fmt.Errorf("list accounts by owner: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("insert account: %w", translateWriteError(err))
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Contacts").
		Preload("Deals").
		Preload("Activities").
		Where("id = ?", id).
		First(&account).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, changes map[string]any) (*domain.Account, error) {
	if err := r.exists(ctx, id); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("update account: %w", translateWriteError(err))
		}
	}
	return r.FindByID(ctx, id)
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Account{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) OwnerID(ctx context.Context, id string) (string, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Select("owner_id").Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrAccountNotFound
		}
		return "", fmt.Errorf("resolve account owner: %w", err)
	}
	if account.OwnerID == nil {
		return "", nil
	}
	return *account.OwnerID, nil
}

func (r *AccountRepository) exists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if count == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
