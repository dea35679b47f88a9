package request_models

import (
	"strings"

	"travelplan/internal/models/db_models"
	"travelplan/pkg/utils"
)

type CreateTravelPlanRequest struct {
	Destination string                `json:"destination" binding:"required"`
	Type        db_models.TravelType  `json:"type" binding:"required,oneof=VACATION RELOCATION"`
	BudgetLevel db_models.BudgetLevel `json:"budgetLevel" binding:"required,oneof=LOW MEDIUM HIGH"`
	Days        *int                  `json:"days,omitempty" binding:"omitempty,gt=0"`
	Budget      *float64              `json:"budget,omitempty" binding:"omitempty,gte=0"`
}

// Validate checks the rules binding tags cannot express, and re-checks the rest so the
// service does not depend on the HTTP layer having run.
func (r *CreateTravelPlanRequest) Validate() error {
	var details []utils.FieldViolation
	if strings.TrimSpace(r.Destination) == "" {
		details = append(details, utils.FieldViolation{Field: "destination", Message: "is required"})
	}
	if !validTravelType(r.Type) {
		details = append(details, utils.FieldViolation{Field: "type", Message: "must be one of VACATION RELOCATION"})
	}
	if !validBudgetLevel(r.BudgetLevel) {
		details = append(details, utils.FieldViolation{Field: "budgetLevel", Message: "must be one of LOW MEDIUM HIGH"})
	}
	switch {
	case r.Days != nil && *r.Days <= 0:
		details = append(details, utils.FieldViolation{Field: "days", Message: "must be greater than 0"})
	case r.Days == nil && r.Type == db_models.TravelTypeVacation:
		details = append(details, utils.FieldViolation{Field: "days", Message: "is required for VACATION plans"})
	case r.Days != nil && r.Type == db_models.TravelTypeRelocation:
		details = append(details, utils.FieldViolation{Field: "days", Message: "is only allowed for VACATION plans"})
	}
	if r.Budget != nil && *r.Budget < 0 {
		details = append(details, utils.FieldViolation{Field: "budget", Message: "must be at least 0"})
	}

	if len(details) > 0 {
		return utils.NewValidationError(details...)
	}
	r.Destination = strings.TrimSpace(r.Destination)
	return nil
}

// UpdateTravelPlanRequest is a partial patch. The plan type is fixed at creation.
type UpdateTravelPlanRequest struct {
	Destination *string                `json:"destination,omitempty"`
	BudgetLevel *db_models.BudgetLevel `json:"budgetLevel,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Days        *int                   `json:"days,omitempty" binding:"omitempty,gt=0"`
	Budget      *float64               `json:"budget,omitempty" binding:"omitempty,gte=0"`
}

func (r *UpdateTravelPlanRequest) Validate() error {
	if r.Destination == nil && r.BudgetLevel == nil && r.Days == nil && r.Budget == nil {
		return utils.NewValidationError(utils.FieldViolation{Field: "body", Message: "must contain at least one field to update"})
	}

	var details []utils.FieldViolation
	if r.Destination != nil && strings.TrimSpace(*r.Destination) == "" {
		details = append(details, utils.FieldViolation{Field: "destination", Message: "must not be blank"})
	}
	if r.BudgetLevel != nil && !validBudgetLevel(*r.BudgetLevel) {
		details = append(details, utils.FieldViolation{Field: "budgetLevel", Message: "must be one of LOW MEDIUM HIGH"})
	}
	if r.Days != nil && *r.Days <= 0 {
		details = append(details, utils.FieldViolation{Field: "days", Message: "must be greater than 0"})
	}
	if r.Budget != nil && *r.Budget < 0 {
		details = append(details, utils.FieldViolation{Field: "budget", Message: "must be at least 0"})
	}
	if len(details) > 0 {
		return utils.NewValidationError(details...)
	}
	return nil
}

// Changes returns the patch as a column -> value map for gorm's Updates.
func (r *UpdateTravelPlanRequest) Changes() map[string]any {
	changes := make(map[string]any, 4)
	if r.Destination != nil {
		changes["destination"] = strings.TrimSpace(*r.Destination)
	}
	if r.BudgetLevel != nil {
		changes["budget_level"] = *r.BudgetLevel
	}
	if r.Days != nil {
		changes["days"] = *r.Days
	}
	if r.Budget != nil {
		changes["budget"] = *r.Budget
	}
	return changes
}

func validTravelType(t db_models.TravelType) bool {
	return t == db_models.TravelTypeVacation || t == db_models.TravelTypeRelocation
}

func validBudgetLevel(l db_models.BudgetLevel) bool {
	switch l {
	case db_models.BudgetLevelLow, db_models.BudgetLevelMedium, db_models.BudgetLevelHigh:
		return true
	}
	return false
}
