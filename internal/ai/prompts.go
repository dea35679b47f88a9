package ai

import (
	"fmt"
	"strings"

	"travelplan/internal/normalizer"
)

// Budget levels understood by the vacation prompt.
const (
	BudgetLow    = "LOW"
	BudgetMedium = "MEDIUM"
	BudgetHigh   = "HIGH"
)

var budgetContexts = map[string]string{
	BudgetLow:    "up to $50/day - hostels, public transport, local food, free attractions",
	BudgetMedium: "$50-150/day - mid-range hotels, mixed transport, local restaurants, paid attractions",
	BudgetHigh:   "$150+/day - premium hotels, private transport, fine dining, exclusive experiences",
}

// BudgetContext describes the spending range for a budget level. Unknown levels read as MEDIUM.
func BudgetContext(level string) string {
	if ctx, ok := budgetContexts[strings.ToUpper(level)]; ok {
		return ctx
	}
	return budgetContexts[BudgetMedium]
}

// PlanPrompt is everything needed to ask a model for one plan.
type PlanPrompt struct {
	Kind        normalizer.Kind
	Destination string
	Days        int
	BudgetLevel string
}

func VacationPrompt(destination string, days int, budgetLevel string) PlanPrompt {
	return PlanPrompt{Kind: normalizer.KindVacation, Destination: destination, Days: days, BudgetLevel: budgetLevel}
}

func RelocationPrompt(destination, budgetLevel string) PlanPrompt {
	return PlanPrompt{Kind: normalizer.KindRelocation, Destination: destination, BudgetLevel: budgetLevel}
}

// NormalizeOptions returns the normalizer options implied by the prompt.
func (p PlanPrompt) NormalizeOptions() []normalizer.Option {
	if p.Kind == normalizer.KindVacation && p.Days > 0 {
		return []normalizer.Option{normalizer.WithExpectedDays(p.Days)}
	}
	return nil
}

// Text renders the prompt sent to the model.
func (p PlanPrompt) Text() string {
	if p.Kind == normalizer.KindRelocation {
		return fmt.Sprintf(relocationTemplate, p.Destination, relocationSkeleton, p.Destination)
	}
	level := strings.ToUpper(p.BudgetLevel)
	if _, ok := budgetContexts[level]; !ok {
		level = BudgetMedium
	}
	return fmt.Sprintf(vacationTemplate,
		p.Days, p.Destination, level,
		BudgetContext(level),
		p.Days,
		vacationSkeleton,
		p.Days, p.Destination,
	)
}

const vacationTemplate = `You plan trips for a living. Build a %d-day itinerary for %s on a %s budget.

Budget: %s

Rules:
- The "itinerary" array must contain exactly %d day objects, numbered from 1.
- Write everything in English.
- Every cost is a plain number in USD; express ranges with separate "min" and "max" fields.
- Attraction "category" must be exactly one of "free", "paid" or "optional".
- Answer with one JSON object and nothing else: no markdown, no commentary.

Use this structure (values are examples):
%s

Return the JSON object for %d days in %s now.`

const relocationTemplate = `You advise people moving abroad. Write a relocation guide for %s.

Rules:
- Use current figures and write everything in English.
- Costs are monthly amounts as plain numbers; express ranges with separate "min" and "max" fields.
- employeeRate, employerRate, vacationDays and every other rate or percentage are numbers, never strings.
- "max" of the top income tax bracket is null.
- Answer with one JSON object and nothing else: no markdown, no commentary.

Use this structure (values are examples):
%s

Return the JSON object for %s now.`

const vacationSkeleton = `{
  "overview": {"climate": "", "bestTime": "", "characteristics": ""},
  "itinerary": [
    {
      "day": 1,
      "morning": {"name": "", "location": "", "cost": 0, "duration": "2 hours", "description": ""},
      "afternoon": {"name": "", "location": "", "cost": 15, "duration": "3 hours", "description": ""},
      "evening": {"name": "", "location": "", "cost": 10, "duration": "2 hours", "description": ""},
      "dailyCost": 25,
      "notes": [""]
    }
  ],
  "costs": {
    "accommodation": {"min": 15, "max": 25, "notes": ""},
    "food": {"min": 10, "max": 15, "notes": ""},
    "transportation": {"min": 5, "max": 7, "notes": ""},
    "attractions": {"min": 0, "max": 10, "notes": ""},
    "miscellaneous": {"min": 3, "max": 5, "notes": ""},
    "totalDaily": {"min": 33, "max": 62}
  },
  "attractions": [{"name": "", "cost": 0, "category": "free", "description": "", "tips": [""]}],
  "tips": [{"category": "", "title": "", "content": ""}],
  "comparisons": [{"destination": "", "dailyBudget": {"min": 25, "max": 40}, "notes": ""}]
}`

const relocationSkeleton = `{
  "overview": {"population": "", "language": "", "currency": "", "timeZone": "", "generalInfo": ""},
  "costOfLiving": {
    "housing": {"min": 500, "max": 1200, "notes": ""},
    "utilities": {"min": 80, "max": 150, "notes": ""},
    "food": {"min": 200, "max": 400, "notes": ""},
    "transportation": {"min": 50, "max": 100, "notes": ""},
    "healthcare": {"min": 30, "max": 80, "notes": ""},
    "entertainment": {"min": 100, "max": 300, "notes": ""},
    "totalMonthly": {"min": 960, "max": 2230}
  },
  "visaRequirements": {
    "touristVisa": {"required": true, "duration": "", "process": ""},
    "workVisa": {"types": [""], "requirements": [""], "processingTime": ""},
    "residency": {"requirements": [""], "processingTime": "", "cost": 500},
    "citizenship": {"available": true, "requirements": [""], "timeRequired": ""}
  },
  "taxation": {
    "incomeTax": {"rate": "", "brackets": [{"min": 0, "max": 25000, "rate": 10}, {"min": 25000, "max": null, "rate": 20}]},
    "propertyTax": {"rate": "", "notes": ""},
    "vatSalesTax": {"rate": 20, "notes": ""},
    "socialSecurity": {"employeeRate": 8, "employerRate": 12, "notes": ""}
  },
  "climate": {
    "averageTemperature": {"summer": {"min": 20, "max": 30}, "winter": {"min": 5, "max": 15}},
    "sunnyDaysPerYear": 200,
    "rainyDaysPerYear": 120,
    "humidity": "",
    "bestMonths": [""]
  },
  "jobMarket": {
    "unemploymentRate": 5.2,
    "averageSalary": {"min": 30000, "max": 60000, "currency": "USD"},
    "inDemandSkills": [""],
    "majorIndustries": [""],
    "workCulture": {"workingHours": "", "vacationDays": 25, "workLifeBalance": ""}
  },
  "lifestyle": {
    "safetyIndex": 8.5,
    "healthcareQuality": "",
    "educationSystem": {"quality": "", "publicSchools": true, "internationalSchools": true},
    "transportation": {"publicTransport": "", "carOwnership": "", "walkability": ""},
    "culture": {"socialLife": "", "expatCommunity": "", "languageBarrier": ""}
  },
  "banking": {"requirements": [""], "majorBanks": [""], "services": [""], "tips": [""]},
  "comparisons": [
    {"destination": "", "monthlyCost": {"min": 800, "max": 1500}, "climate": "", "safety": "", "languageBarrier": "", "jobMarket": "", "notes": ""}
  ]
}`
