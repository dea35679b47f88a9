package db_models

import (
	"gorm.io/datatypes"
)

type TravelType string

const (
	TravelTypeVacation   TravelType = "VACATION"
	TravelTypeRelocation TravelType = "RELOCATION"
)

type BudgetLevel string

const (
	BudgetLevelLow    BudgetLevel = "LOW"
	BudgetLevelMedium BudgetLevel = "MEDIUM"
	BudgetLevelHigh   BudgetLevel = "HIGH"
)

type TravelPlan struct {
	BaseModel
	ClerkUserID string      `gorm:"column:clerk_user_id;not null;index"`
	Destination string      `gorm:"not null"`
	Type        TravelType  `gorm:"type:varchar(16);not null"`
	BudgetLevel BudgetLevel `gorm:"type:varchar(16);not null"`
	Days        *int
	Budget      *float64
	// Normalized plan as returned by the model
	Itinerary      datatypes.JSON `gorm:"type:jsonb;not null"`
	CostSummary    datatypes.JSON `gorm:"type:jsonb"`
	AdditionalInfo datatypes.JSON `gorm:"type:jsonb"`
}

func (TravelPlan) TableName() string {
	return "travel_plans"
}
