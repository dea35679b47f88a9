package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelplan/internal/models/db_models"
)

type TravelPlanRepositoryInterface interface {
	Create(ctx context.Context, plan *db_models.TravelPlan) error
	FindByUserID(ctx context.Context, userID string) ([]db_models.TravelPlan, error)
	FindByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (*db_models.TravelPlan, error)
	UpdateByIDAndUserID(ctx context.Context, id uuid.UUID, userID string, changes map[string]any) (*db_models.TravelPlan, error)
	DeleteByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (bool, error)
	ExistsByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (bool, error)
}

func NewTravelPlanRepository(db *gorm.DB) TravelPlanRepositoryInterface {
	return &TravelPlanRepository{db: db}
}

type TravelPlanRepository struct {
	db *gorm.DB
}

// Columns served by the list endpoint; itinerary and additional_info stay in the table.
var summaryColumns = []string{
	"id", "clerk_user_id", "destination", "type", "budget_level",
	"days", "budget", "cost_summary", "created_at", "updated_at",
}

func (r *TravelPlanRepository) Create(ctx context.Context, plan *db_models.TravelPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *TravelPlanRepository) FindByUserID(ctx context.Context, userID string) ([]db_models.TravelPlan, error) {
	var plans []db_models.TravelPlan
	err := r.db.WithContext(ctx).
		Select(summaryColumns).
		Where("clerk_user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *TravelPlanRepository) FindByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (*db_models.TravelPlan, error) {
	var plan db_models.TravelPlan
	err := r.db.WithContext(ctx).
		Where("id = ? AND clerk_user_id = ?", id, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// UpdateByIDAndUserID applies changes to the plan owned by userID and returns the updated
// row, or nil when no such plan exists.
func (r *TravelPlanRepository) UpdateByIDAndUserID(ctx context.Context, id uuid.UUID, userID string, changes map[string]any) (*db_models.TravelPlan, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.TravelPlan{}).
		Where("id = ? AND clerk_user_id = ?", id, userID).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByIDAndUserID(ctx, id, userID)
}

func (r *TravelPlanRepository) DeleteByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND clerk_user_id = ?", id, userID).
		Delete(&db_models.TravelPlan{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *TravelPlanRepository) ExistsByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.TravelPlan{}).
		Where("id = ? AND clerk_user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
