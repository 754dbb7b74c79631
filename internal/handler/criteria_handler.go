package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	"github.com/aqarhub/aqar-hub-api/pkg/response"
)

// CriteriaHandler serves the static NAAC taxonomy.
type CriteriaHandler struct{}

// NewCriteriaHandler creates a new handler.
func NewCriteriaHandler() *CriteriaHandler {
	return &CriteriaHandler{}
}

// List godoc
// @Summary List NAAC criteria
// @Description The full criteria taxonomy with sub-criteria
// @Tags Criteria
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /criteria [get]
func (h *CriteriaHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.NAACCriteria, nil)
}

// AcademicYears godoc
// @Summary List academic years
// @Tags Criteria
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-years [get]
func (h *CriteriaHandler) AcademicYears(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.AcademicYears, nil)
}
