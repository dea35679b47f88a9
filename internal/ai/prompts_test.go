package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetContext(t *testing.T) {
	assert.Contains(t, BudgetContext("LOW"), "up to $50/day")
	assert.Contains(t, BudgetContext("high"), "$150+/day")
	assert.Equal(t, BudgetContext(BudgetMedium), BudgetContext("LUXURY"))
	assert.Equal(t, BudgetContext(BudgetMedium), BudgetContext(""))
}

func TestVacationPromptText(t *testing.T) {
	text := VacationPrompt("Kyoto", 4, "low").Text()

	assert.Contains(t, text, "4-day itinerary for Kyoto on a LOW budget")
	assert.Contains(t, text, "exactly 4 day objects")
	assert.Contains(t, text, BudgetContext(BudgetLow))
	assert.Contains(t, text, `"totalDaily"`)
	assert.NotContains(t, text, "%!")
}

func TestRelocationPromptText(t *testing.T) {
	p := RelocationPrompt("Lisbon", BudgetHigh)
	text := p.Text()

	assert.Contains(t, text, "relocation guide for Lisbon")
	assert.Contains(t, text, `"costOfLiving"`)
	assert.Contains(t, text, `"socialSecurity"`)
	assert.NotContains(t, text, "%!")
	assert.Empty(t, p.NormalizeOptions())
}
