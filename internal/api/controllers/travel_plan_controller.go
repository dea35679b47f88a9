package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplan/internal/ai"
	"travelplan/internal/models/request_models"
	"travelplan/internal/services"
	"travelplan/pkg/middleware"
	"travelplan/pkg/utils"
)

type TravelPlanController struct {
	travelPlanService services.TravelPlanServiceInterface
}

func NewTravelPlanController(travelPlanService services.TravelPlanServiceInterface) *TravelPlanController {
	return &TravelPlanController{
		travelPlanService: travelPlanService,
	}
}

// CreateTravelPlan godoc
// @Summary Create a travel plan
// @Description Generate a vacation itinerary or relocation guide with AI and store it for the authenticated user
// @Tags TravelPlan
// @Accept json
// @Produce json
// @Param request body request_models.CreateTravelPlanRequest true "Destination, type, budget level and days"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIErrorResponse
// @Failure 401 {object} utils.APIErrorResponse
// @Failure 503 {object} utils.APIErrorResponse
// @Security BearerAuth
// @Router /api/travel-plans [post]
func (tc *TravelPlanController) CreateTravelPlan(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.HandleServiceError(c, utils.ErrUnauthenticated)
		return
	}

	var req request_models.CreateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	plan, err := tc.travelPlanService.CreateTravelPlan(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, plan, "Travel plan created successfully")
}

// StreamTravelPlan godoc
// @Summary Create a travel plan with streamed output
// @Description Same as create, but raw model output is streamed as Server Sent Events. Events: chunk {text}, reset {model}, complete {data}, error {message}
// @Tags TravelPlan
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.CreateTravelPlanRequest true "Destination, type, budget level and days"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} utils.APIErrorResponse
// @Failure 401 {object} utils.APIErrorResponse
// @Security BearerAuth
// @Router /api/travel-plans/stream [post]
func (tc *TravelPlanController) StreamTravelPlan(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.HandleServiceError(c, utils.ErrUnauthenticated)
		return
	}

	var req request_models.CreateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}
	// Validation errors still get a plain JSON 400 before the stream opens
	if err := req.Validate(); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	flusher, ok := middleware.PrepareSSE(c)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, "Streaming is not supported")
		return
	}
	c.Status(http.StatusOK)

	send := func(event string, data any) {
		c.SSEvent(event, data)
		flusher.Flush()
	}
	observer := func(ev ai.StreamEvent) {
		switch ev.Type {
		case ai.StreamChunk:
			send("chunk", gin.H{"text": ev.Text})
		case ai.StreamReset:
			send("reset", gin.H{"model": ev.Model})
		}
	}

	plan, err := tc.travelPlanService.CreateTravelPlanStream(c.Request.Context(), userID, req, observer)
	if err != nil {
		_ = c.Error(err)
		_, message := utils.ErrorStatus(err)
		send("error", gin.H{"message": message})
		return
	}
	send("complete", gin.H{"data": plan})
}

// GetUserTravelPlans godoc
// @Summary List travel plans
// @Description List the authenticated user's travel plans, newest first, without itineraries
// @Tags TravelPlan
// @Produce json
// @Success 200 {object} response_models.TravelPlanListResponse
// @Failure 401 {object} utils.APIErrorResponse
// @Security BearerAuth
// @Router /api/travel-plans [get]
func (tc *TravelPlanController) GetUserTravelPlans(c *gin.Context) {
	plans, err := tc.travelPlanService.GetUserTravelPlans(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Travel plans retrieved successfully")
}

// GetTravelPlanByID godoc
// @Summary Get a travel plan
// @Tags TravelPlan
// @Produce json
// @Param id path string true "Travel plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIErrorResponse
// @Failure 404 {object} utils.APIErrorResponse
// @Security BearerAuth
// @Router /api/travel-plans/{id} [get]
func (tc *TravelPlanController) GetTravelPlanByID(c *gin.Context) {
	plan, err := tc.travelPlanService.GetTravelPlanByID(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Travel plan retrieved successfully")
}

// UpdateTravelPlan godoc
// @Summary Update a travel plan
// @Description Partially update destination, budget level, days or budget. The itinerary is not regenerated.
// @Tags TravelPlan
// @Accept json
// @Produce json
// @Param id path string true "Travel plan ID"
// @Param request body request_models.UpdateTravelPlanRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIErrorResponse
// @Failure 401 {object} utils.APIErrorResponse
// @Failure 404 {object} utils.APIErrorResponse
// @Security BearerAuth
// @Router /api/travel-plans/{id} [put]
func (tc *TravelPlanController) UpdateTravelPlan(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.HandleServiceError(c, utils.ErrUnauthenticated)
		return
	}

	var req request_models.UpdateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.BindingError(err))
		return
	}

	plan, err := tc.travelPlanService.UpdateTravelPlan(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Travel plan updated successfully")
}

// DeleteTravelPlan godoc
// @Summary Delete a travel plan
// @Tags TravelPlan
// @Produce json
// @Param id path string true "Travel plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIErrorResponse
// @Failure 404 {object} utils.APIErrorResponse
// @Security BearerAuth
// @Router /api/travel-plans/{id} [delete]
func (tc *TravelPlanController) DeleteTravelPlan(c *gin.Context) {
	if err := tc.travelPlanService.DeleteTravelPlan(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Travel plan deleted successfully")
}
