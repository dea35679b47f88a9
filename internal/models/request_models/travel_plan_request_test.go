package request_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelplan/internal/models/db_models"
	"travelplan/pkg/utils"
)

func intPtr(v int) *int { return &v }

func TestCreateTravelPlanRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        CreateTravelPlanRequest
		wantFields []string
	}{
		{
			name: "valid vacation",
			req:  CreateTravelPlanRequest{Destination: " Rome ", Type: "VACATION", BudgetLevel: "LOW", Days: intPtr(3)},
		},
		{
			name: "relocation without days",
			req:  CreateTravelPlanRequest{Destination: "Berlin", Type: "RELOCATION", BudgetLevel: "HIGH"},
		},
		{
			name:       "relocation with days",
			req:        CreateTravelPlanRequest{Destination: "Berlin", Type: "RELOCATION", BudgetLevel: "HIGH", Days: intPtr(7)},
			wantFields: []string{"days"},
		},
		{
			name:       "vacation without days",
			req:        CreateTravelPlanRequest{Destination: "Rome", Type: "VACATION", BudgetLevel: "LOW"},
			wantFields: []string{"days"},
		},
		{
			name:       "everything wrong",
			req:        CreateTravelPlanRequest{Destination: "  ", Type: "CRUISE", BudgetLevel: "CHEAP", Days: intPtr(0)},
			wantFields: []string{"destination", "type", "budgetLevel", "days"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			var verr *utils.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.Fields())
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestCreateTravelPlanRequestTrimsDestination(t *testing.T) {
	req := CreateTravelPlanRequest{Destination: "  Lisbon ", Type: "RELOCATION", BudgetLevel: "MEDIUM"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Lisbon", req.Destination)
}

func TestUpdateTravelPlanRequest(t *testing.T) {
	empty := UpdateTravelPlanRequest{}
	assert.ErrorIs(t, empty.Validate(), utils.ErrValidation)

	blank := "   "
	assert.ErrorIs(t, (&UpdateTravelPlanRequest{Destination: &blank}).Validate(), utils.ErrValidation)

	level := db_models.BudgetLevelHigh
	dest := " Porto "
	patch := UpdateTravelPlanRequest{Destination: &dest, BudgetLevel: &level, Days: intPtr(4)}
	require.NoError(t, patch.Validate())
	assert.Equal(t, map[string]any{
		"destination":  "Porto",
		"budget_level": db_models.BudgetLevelHigh,
		"days":         4,
	}, patch.Changes())
}
