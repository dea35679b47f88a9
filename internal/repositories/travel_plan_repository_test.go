package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"travelplan/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&db_models.TravelPlan{}))
	return db
}

func seedPlan(t *testing.T, repo TravelPlanRepositoryInterface, userID, destination string, createdAt time.Time) *db_models.TravelPlan {
	t.Helper()
	days := 3
	plan := &db_models.TravelPlan{
		ClerkUserID:    userID,
		Destination:    destination,
		Type:           db_models.TravelTypeVacation,
		BudgetLevel:    db_models.BudgetLevelLow,
		Days:           &days,
		Itinerary:      datatypes.JSON(`{"overview":{"climate":"Mild"}}`),
		CostSummary:    datatypes.JSON(`{"totalDaily":{"min":30,"max":50}}`),
		AdditionalInfo: datatypes.JSON(`{"model":"gemini-2.5-flash"}`),
	}
	plan.CreatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), plan))
	require.NotEqual(t, uuid.Nil, plan.ID)
	return plan
}

func TestCreateAndFind(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()
	plan := seedPlan(t, repo, "user_a", "Lisbon", time.Now())

	found, err := repo.FindByIDAndUserID(ctx, plan.ID, "user_a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Lisbon", found.Destination)
	assert.JSONEq(t, `{"overview":{"climate":"Mild"}}`, string(found.Itinerary))

	other, err := repo.FindByIDAndUserID(ctx, plan.ID, "user_b")
	require.NoError(t, err)
	assert.Nil(t, other)

	missing, err := repo.FindByIDAndUserID(ctx, uuid.New(), "user_a")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByUserIDNewestFirstWithoutItinerary(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	seedPlan(t, repo, "user_a", "Oldest", base)
	seedPlan(t, repo, "user_a", "Newest", base.Add(2*time.Hour))
	seedPlan(t, repo, "user_a", "Middle", base.Add(time.Hour))
	seedPlan(t, repo, "user_b", "Elsewhere", base.Add(3*time.Hour))

	plans, err := repo.FindByUserID(context.Background(), "user_a")
	require.NoError(t, err)
	require.Len(t, plans, 3)

	var names []string
	for _, p := range plans {
		names = append(names, p.Destination)
		assert.Empty(t, p.Itinerary)
		assert.Empty(t, p.AdditionalInfo)
		assert.NotEmpty(t, p.CostSummary)
	}
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, names)
}

func TestUpdateByIDAndUserID(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()
	plan := seedPlan(t, repo, "user_a", "Lisbon", time.Now().Add(-time.Hour))

	updated, err := repo.UpdateByIDAndUserID(ctx, plan.ID, "user_a", map[string]any{"destination": "Porto", "days": 5})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Porto", updated.Destination)
	assert.Equal(t, 5, *updated.Days)
	assert.True(t, updated.UpdatedAt.After(plan.UpdatedAt) || updated.UpdatedAt.Equal(plan.UpdatedAt))

	notOwned, err := repo.UpdateByIDAndUserID(ctx, plan.ID, "user_b", map[string]any{"destination": "Madrid"})
	require.NoError(t, err)
	assert.Nil(t, notOwned)

	still, err := repo.FindByIDAndUserID(ctx, plan.ID, "user_a")
	require.NoError(t, err)
	assert.Equal(t, "Porto", still.Destination)
}

func TestDeleteByIDAndUserID(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()
	plan := seedPlan(t, repo, "user_a", "Lisbon", time.Now())

	deleted, err := repo.DeleteByIDAndUserID(ctx, plan.ID, "user_b")
	require.NoError(t, err)
	assert.False(t, deleted)

	exists, err := repo.ExistsByIDAndUserID(ctx, plan.ID, "user_a")
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err = repo.DeleteByIDAndUserID(ctx, plan.ID, "user_a")
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err = repo.ExistsByIDAndUserID(ctx, plan.ID, "user_a")
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repo.FindByIDAndUserID(ctx, plan.ID, "user_a")
	require.NoError(t, err)
	assert.Nil(t, found)
}
