package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// DealRepository persists deals via gorm. Reads preload the deal's account,
// owner and activities.
type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Account").
		Preload("Owner").
		Preload("Activities")
}

func (r *DealRepository) List(ctx context.Context) ([]domain.Deal, error) {
	var deals []domain.Deal
	if err := r.withRelations(ctx).Order("created_at DESC").Find(&deals).Error; err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return deals, nil
}

func (r *DealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	if err := r.db.WithContext(ctx).Create(deal).Error; err != nil {
		return fmt.Errorf("insert deal: %w", translateWriteError(err))
	}
	return nil
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*domain.Deal, error) {
	var deal domain.Deal
	err := r.withRelations(ctx).Where("id = ?", id).First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDealNotFound
		}
		return nil, fmt.Errorf("find deal: %w", err)
	}
	return &deal, nil
}

func (r *DealRepository) Update(ctx context.Context, id string, changes map[string]any) (*domain.Deal, error) {
	if err := r.exists(ctx, id); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).Model(&domain.Deal{}).Where("id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("update deal: %w", translateWriteError(err))
		}
	}
	return r.FindByID(ctx, id)
}

func (r *DealRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Deal{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete deal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrDealNotFound
	}
	return nil
}

func (r *DealRepository) OwnerID(ctx context.Context, id string) (string, error) {
	var deal domain.Deal
	err := r.db.WithContext(ctx).Select("owner_id").Where("id = ?", id).First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrDealNotFound
		}
		return "", fmt.Errorf("resolve deal owner: %w", err)
	}
	if deal.OwnerID == nil {
		return "", nil
	}
	return *deal.OwnerID, nil
}

func (r *DealRepository) exists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Deal{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check deal: %w", err)
	}
	if count == 0 {
		return domain.ErrDealNotFound
	}
	return nil
}
