package response_models

import (
	"encoding/json"
	"time"
)

type PlanMetadata struct {
	GeneratedAt        time.Time `json:"generatedAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	EstimatedTotalCost *float64  `json:"estimatedTotalCost,omitempty"`
	Model              string    `json:"model,omitempty"`
}

// TravelPlanResponse is served flat: the plan's top-level sections sit next to the plan fields.
type TravelPlanResponse struct {
	ID          string
	Destination string
	Type        string
	BudgetLevel string
	Days        *int
	Budget      *float64
	Plan        map[string]any
	Metadata    PlanMetadata
}

var responseFields = []string{"id", "destination", "type", "budgetLevel", "days", "budget", "metadata"}

func (r TravelPlanResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Plan)+len(responseFields))
	for k, v := range r.Plan {
		out[k] = v
	}
	out["id"] = r.ID
	out["destination"] = r.Destination
	out["type"] = r.Type
	out["budgetLevel"] = r.BudgetLevel
	if r.Days != nil {
		out["days"] = *r.Days
	} else {
		delete(out, "days")
	}
	if r.Budget != nil {
		out["budget"] = *r.Budget
	} else {
		delete(out, "budget")
	}
	out["metadata"] = r.Metadata
	return json.Marshal(out)
}

func (r *TravelPlanResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		key  string
		dest any
	}{
		{"id", &r.ID},
		{"destination", &r.Destination},
		{"type", &r.Type},
		{"budgetLevel", &r.BudgetLevel},
		{"days", &r.Days},
		{"budget", &r.Budget},
		{"metadata", &r.Metadata},
	}
	for _, f := range fields {
		if v, ok := raw[f.key]; ok {
			if err := json.Unmarshal(v, f.dest); err != nil {
				return err
			}
			delete(raw, f.key)
		}
	}

	r.Plan = make(map[string]any, len(raw))
	for k, v := range raw {
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return err
		}
		r.Plan[k] = decoded
	}
	return nil
}

// TravelPlanSummary is the list projection: no itinerary or generation details.
type TravelPlanSummary struct {
	ID          string          `json:"id"`
	Destination string          `json:"destination"`
	Type        string          `json:"type"`
	BudgetLevel string          `json:"budgetLevel"`
	Days        *int            `json:"days,omitempty"`
	Budget      *float64        `json:"budget,omitempty"`
	CostSummary json.RawMessage `json:"costSummary,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type TravelPlanListResponse struct {
	TravelPlans []TravelPlanSummary `json:"travelPlans"`
	Total       int                 `json:"total"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
