package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqarhub/aqar-hub-api/internal/service"
	"github.com/aqarhub/aqar-hub-api/pkg/response"
)

// StatsHandler serves the dashboard statistics endpoint.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new handler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Snapshot godoc
// @Summary Dashboard statistics
// @Description Aggregate document counts by status, year and criteria
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Snapshot(c *gin.Context) {
	stats, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats, nil)
}
