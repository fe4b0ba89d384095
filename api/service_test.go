package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceTestRouter() (*gin.Engine, *store.Memory[models.Service, *models.Service]) {
	gin.SetMode(gin.TestMode)
	s := store.NewMemory[models.Service, *models.Service]()
	h := NewServiceHandlerWithStore(s)

	r := gin.New()
	r.POST("/services", h.Create)
	r.GET("/services", h.List)
	r.GET("/services/statistics", h.GetStatistics)
	r.GET("/services/categories", h.GetCategories)
	r.GET("/services/:id", h.Get)
	r.DELETE("/services/:id", h.Delete)
	return r, s
}

func seedService(t *testing.T, s *store.Memory[models.Service, *models.Service], name, category string, price float64) {
	t.Helper()
	require.NoError(t, s.Create(context.Background(), &models.Service{
		Name:        name,
		Description: name + " 描述",
		Category:    category,
		Price:       price,
	}))
}

func TestServiceHandler_Create(t *testing.T) {
	r, s := newServiceTestRouter()

	body := `{"name":"官网设计","description":"企业官网整站设计","category":"design","price":2000,"duration_value":2,"duration_unit":"weeks"}`
	req := httptest.NewRequest("POST", "/services", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	assert.Equal(t, 1, s.Count())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
}

func TestServiceHandler_Delete_Hard(t *testing.T) {
	r, s := newServiceTestRouter()
	seedService(t, s, "官网设计", "design", 2000)

	// 服务删除是物理删除，记录直接移除
	req := httptest.NewRequest("DELETE", "/services/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, 0, s.Count())

	_, err := s.Get(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceHandler_Statistics_TieBreak(t *testing.T) {
	r, s := newServiceTestRouter()
	// 两个类别总额相同，取类别名字典序靠前者
	seedService(t, s, "SEO 优化", "marketing", 1000)
	seedService(t, s, "官网设计", "design", 1000)

	req := httptest.NewRequest("GET", "/services/statistics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "design", data["top_category"])
}

func TestServiceHandler_GetCategories(t *testing.T) {
	r, _ := newServiceTestRouter()

	req := httptest.NewRequest("GET", "/services/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	categories := resp["data"].([]interface{})
	assert.Contains(t, categories, "design")
	assert.Contains(t, categories, "development")
	assert.Contains(t, categories, "other")
}
