package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelplan/internal/models/response_models"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response_models.HealthResponse
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response_models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}
