package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/response"
	"github.com/stretchr/testify/assert"
)

func TestGetCategories(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{
		categories: []domain.Category{
			{Name: "Comida", Type: domain.KindExpense},
			{Name: "Transporte", Type: domain.KindExpense},
		},
	}
	handler := NewCategoryHandler(mockService, response.JSON, response.Error)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Categories []domain.Category `json:"categories"`
	}
	err := json.NewDecoder(res.Body).Decode(&body)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(body.Categories))
	assert.Equal(t, "Comida", body.Categories[0].Name)
}

func TestGetCategories_IgnoresQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/categories?type=income", nil)
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{
		categories: []domain.Category{{Name: "Comida", Type: domain.KindExpense}},
	}
	handler := NewCategoryHandler(mockService, response.JSON, response.Error)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGetCategories_ErrorFromService(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{
		shouldFail: true,
	}
	handler := NewCategoryHandler(mockService, response.JSON, response.Error)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var body map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&body)
	assert.NoError(t, err)

	assert.Equal(t, "Failed to retrieve categories", body["message"])
}
