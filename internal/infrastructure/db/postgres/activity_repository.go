package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// ActivityRepository persists activities via gorm. Reads preload the owner,
// deal, contact and account references.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Deal").
		Preload("Contact").
		Preload("Account")
}

func (r *ActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := r.withRelations(ctx).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("insert activity: %w", translateWriteError(err))
	}
	return nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*domain.Activity, error) {
	var activity domain.Activity
	err := r.withRelations(ctx).Where("id = ?", id).First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return &activity, nil
}

func (r *ActivityRepository) Update(ctx context.Context, id string, changes map[string]any) (*domain.Activity, error) {
	if err := r.exists(ctx, id); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		err := r.db.WithContext(ctx).Model(&domain.Activity{}).Where("id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("update activity: %w", translateWriteError(err))
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Activity{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) OwnerID(ctx context.Context, id string) (string, error) {
	var activity domain.Activity
	err := r.db.WithContext(ctx).Select("owner_id").Where("id = ?", id).First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrActivityNotFound
		}
		return "", fmt.Errorf("resolve activity owner: %w", err)
	}
	if activity.OwnerID == nil {
		return "", nil
	}
	return *activity.OwnerID, nil
}

func (r *ActivityRepository) exists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Activity{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check activity: %w", err)
	}
	if count == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}
