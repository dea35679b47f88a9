package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Destination string `json:"destination" binding:"required"`
	BudgetLevel string `json:"budgetLevel" binding:"required,oneof=LOW MEDIUM HIGH"`
	Days        *int   `json:"days" binding:"omitempty,gt=0"`
}

func bind(t *testing.T, body string) *ValidationError {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	err := c.ShouldBindJSON(&target)
	require.Error(t, err)
	return BindingError(err)
}

func TestBindingErrorFromValidator(t *testing.T) {
	verr := bind(t, `{"budgetLevel":"CHEAP","days":0}`)

	assert.Equal(t, []string{"destination", "budgetLevel", "days"}, verr.Fields())
	assert.Equal(t, "must be one of LOW MEDIUM HIGH", verr.Details[1].Message)
	assert.ErrorIs(t, verr, ErrValidation)
}

func TestBindingErrorFromJSON(t *testing.T) {
	verr := bind(t, `{"destination":"Rome","budgetLevel":"LOW","days":"five"}`)
	assert.Equal(t, []string{"days"}, verr.Fields())

	verr = bind(t, `{"destination":`)
	assert.Equal(t, []string{"body"}, verr.Fields())
}
