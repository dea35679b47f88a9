package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelplan/internal/ai"
	"travelplan/internal/models/request_models"
	"travelplan/internal/models/response_models"
	"travelplan/pkg/utils"
)

type fakeService struct {
	create       func(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error)
	createStream func(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest, observer ai.StreamObserver) (*response_models.TravelPlanResponse, error)
	list         func(ctx context.Context, userID string) (*response_models.TravelPlanListResponse, error)
	get          func(ctx context.Context, id, userID string) (*response_models.TravelPlanResponse, error)
	update       func(ctx context.Context, id, userID string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error)
	remove       func(ctx context.Context, id, userID string) error
}

func (f *fakeService) CreateTravelPlan(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	return f.create(ctx, userID, req)
}

func (f *fakeService) CreateTravelPlanStream(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest, observer ai.StreamObserver) (*response_models.TravelPlanResponse, error) {
	return f.createStream(ctx, userID, req, observer)
}

func (f *fakeService) GetUserTravelPlans(ctx context.Context, userID string) (*response_models.TravelPlanListResponse, error) {
	return f.list(ctx, userID)
}

func (f *fakeService) GetTravelPlanByID(ctx context.Context, id, userID string) (*response_models.TravelPlanResponse, error) {
	return f.get(ctx, id, userID)
}

func (f *fakeService) UpdateTravelPlan(ctx context.Context, id, userID string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	return f.update(ctx, id, userID, req)
}

func (f *fakeService) DeleteTravelPlan(ctx context.Context, id, userID string) error {
	return f.remove(ctx, id, userID)
}

func newTestRouter(svc *fakeService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})

	tc := NewTravelPlanController(svc)
	g := r.Group("/api/travel-plans")
	g.POST("", tc.CreateTravelPlan)
	g.POST("/stream", tc.StreamTravelPlan)
	g.GET("", tc.GetUserTravelPlans)
	g.GET("/:id", tc.GetTravelPlanByID)
	g.PUT("/:id", tc.UpdateTravelPlan)
	g.DELETE("/:id", tc.DeleteTravelPlan)
	r.GET("/health", NewHealthController().Health)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func samplePlan() *response_models.TravelPlanResponse {
	days := 3
	return &response_models.TravelPlanResponse{
		ID:          "6d1f5c1e-4b8a-4f0e-9c44-2b8f1d3c7a10",
		Destination: "Lisbon",
		Type:        "VACATION",
		BudgetLevel: "MEDIUM",
		Days:        &days,
		Plan:        map[string]any{"destination": "Lisbon"},
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateTravelPlan(t *testing.T) {
	var gotUser string
	svc := &fakeService{
		create: func(_ context.Context, userID string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
			gotUser = userID
			assert.Equal(t, "Lisbon", req.Destination)
			return samplePlan(), nil
		},
	}
	r := newTestRouter(svc, "user_1")

	w := doRequest(r, http.MethodPost, "/api/travel-plans", `{"destination":"Lisbon","type":"VACATION","budgetLevel":"MEDIUM","days":3}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user_1", gotUser)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Lisbon", data["destination"])
	assert.Equal(t, float64(3), data["days"])
}

func TestCreateTravelPlanErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		body   string
		svcErr error
		status int
		code   string
	}{
		{"unauthenticated", "", `{"destination":"Lisbon","type":"VACATION","budgetLevel":"LOW","days":2}`, nil, http.StatusUnauthorized, "unauthenticated"},
		{"bad type", "u", `{"destination":"Lisbon","type":"CRUISE","budgetLevel":"LOW","days":2}`, nil, http.StatusBadRequest, "validation_error"},
		{"malformed body", "u", `{"destination":`, nil, http.StatusBadRequest, "validation_error"},
		{"upstream down", "u", `{"destination":"Lisbon","type":"VACATION","budgetLevel":"LOW","days":2}`, utils.ErrUpstreamUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
		{"generation failed", "u", `{"destination":"Lisbon","type":"VACATION","budgetLevel":"LOW","days":2}`, fmt.Errorf("%w: bad output", utils.ErrGenerationFailed), http.StatusServiceUnavailable, "service_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &fakeService{
				create: func(context.Context, string, request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
					called = true
					return nil, tt.svcErr
				},
			}
			w := doRequest(newTestRouter(svc, tt.userID), http.MethodPost, "/api/travel-plans", tt.body)

			assert.Equal(t, tt.status, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["error"])
			assert.Equal(t, tt.svcErr != nil, called)
		})
	}
}

func TestCreateTravelPlanValidationDetails(t *testing.T) {
	svc := &fakeService{
		create: func(_ context.Context, _ string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
			return nil, req.Validate()
		},
	}
	w := doRequest(newTestRouter(svc, "u"), http.MethodPost, "/api/travel-plans", `{"destination":"Lisbon","type":"VACATION","budgetLevel":"LOW"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp utils.APIErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "days", resp.Details[0].Field)
}

func TestStreamTravelPlan(t *testing.T) {
	svc := &fakeService{
		createStream: func(_ context.Context, _ string, _ request_models.CreateTravelPlanRequest, observer ai.StreamObserver) (*response_models.TravelPlanResponse, error) {
			observer(ai.StreamEvent{Type: ai.StreamChunk, Model: "gemini-2.5-flash", Text: "{\"dest"})
			observer(ai.StreamEvent{Type: ai.StreamReset, Model: "gemini-2.0-flash"})
			observer(ai.StreamEvent{Type: ai.StreamChunk, Model: "gemini-2.0-flash", Text: "{}"})
			return samplePlan(), nil
		},
	}
	w := doRequest(newTestRouter(svc, "u"), http.MethodPost, "/api/travel-plans/stream", `{"destination":"Lisbon","type":"VACATION","budgetLevel":"MEDIUM","days":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	out := w.Body.String()
	assert.Contains(t, out, "event:chunk")
	assert.Contains(t, out, "event:reset")
	assert.Contains(t, out, `"model":"gemini-2.0-flash"`)
	assert.Contains(t, out, "event:complete")
	assert.Less(t, strings.Index(out, "event:reset"), strings.Index(out, "event:complete"))
}

func TestStreamTravelPlanErrors(t *testing.T) {
	t.Run("validation before stream", func(t *testing.T) {
		svc := &fakeService{}
		w := doRequest(newTestRouter(svc, "u"), http.MethodPost, "/api/travel-plans/stream", `{"destination":"  ","type":"VACATION","budgetLevel":"MEDIUM","days":3}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("generation error event", func(t *testing.T) {
		svc := &fakeService{
			createStream: func(context.Context, string, request_models.CreateTravelPlanRequest, ai.StreamObserver) (*response_models.TravelPlanResponse, error) {
				return nil, utils.ErrUpstreamUnavailable
			},
		}
		w := doRequest(newTestRouter(svc, "u"), http.MethodPost, "/api/travel-plans/stream", `{"destination":"Berlin","type":"RELOCATION","budgetLevel":"HIGH"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "event:error")
		assert.NotContains(t, w.Body.String(), "event:complete")
	})
}

func TestGetUserTravelPlans(t *testing.T) {
	svc := &fakeService{
		list: func(_ context.Context, userID string) (*response_models.TravelPlanListResponse, error) {
			assert.Equal(t, "user_1", userID)
			return &response_models.TravelPlanListResponse{
				TravelPlans: []response_models.TravelPlanSummary{{ID: "a", Destination: "Lisbon"}},
				Total:       1,
				Page:        1,
				Limit:       1,
			}, nil
		},
	}
	w := doRequest(newTestRouter(svc, "user_1"), http.MethodGet, "/api/travel-plans", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
	assert.Len(t, data["travelPlans"], 1)
}

func TestGetTravelPlanByID(t *testing.T) {
	svc := &fakeService{
		get: func(_ context.Context, id, _ string) (*response_models.TravelPlanResponse, error) {
			if id == "missing" {
				return nil, utils.ErrPlanNotFound
			}
			return samplePlan(), nil
		},
	}
	r := newTestRouter(svc, "u")

	w := doRequest(r, http.MethodGet, "/api/travel-plans/"+samplePlan().ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/travel-plans/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["error"])
}

func TestUpdateTravelPlan(t *testing.T) {
	svc := &fakeService{
		update: func(_ context.Context, id, _ string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			plan := samplePlan()
			plan.ID = id
			plan.Destination = *req.Destination
			return plan, nil
		},
	}
	r := newTestRouter(svc, "u")

	w := doRequest(r, http.MethodPut, "/api/travel-plans/abc", `{"destination":"Porto"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Porto", data["destination"])
	assert.Equal(t, "abc", data["id"])

	w = doRequest(r, http.MethodPut, "/api/travel-plans/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/api/travel-plans/abc", `{"budgetLevel":"LUXURY"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTravelPlan(t *testing.T) {
	svc := &fakeService{
		remove: func(_ context.Context, id, _ string) error {
			if id == "gone" {
				return utils.ErrPlanNotFound
			}
			return nil
		},
	}
	r := newTestRouter(svc, "u")

	w := doRequest(r, http.MethodDelete, "/api/travel-plans/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])

	w = doRequest(r, http.MethodDelete, "/api/travel-plans/gone", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	w := doRequest(newTestRouter(&fakeService{}, ""), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}
