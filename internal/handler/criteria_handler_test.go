package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteriaList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/criteria", nil)

	NewCriteriaHandler().List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []struct {
			ID          string `json:"id"`
			Number      int    `json:"number"`
			SubCriteria []struct {
				Code string `json:"code"`
			} `json:"subCriteria"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 7)
	assert.Equal(t, 1, envelope.Data[0].Number)
	assert.NotEmpty(t, envelope.Data[0].SubCriteria)
}

func TestAcademicYears(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/academic-years", nil)

	NewCriteriaHandler().AcademicYears(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data, "2024-25")
}
