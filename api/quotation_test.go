package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuotationTestRouter() (*gin.Engine, *store.Memory[models.Quotation, *models.Quotation]) {
	gin.SetMode(gin.TestMode)
	s := store.NewMemory[models.Quotation, *models.Quotation]()
	h := NewQuotationHandlerWithStore(s)

	r := gin.New()
	r.POST("/quotations", h.Create)
	r.GET("/quotations", h.List)
	r.PUT("/quotations/:id", h.Update)
	return r, s
}

func TestQuotationHandler_Create_AutoNumber(t *testing.T) {
	r, s := newQuotationTestRouter()

	body := `{"customer_name":"Acme Inc","amount":5000,"valid_until":"2024-02-15"}`
	req := httptest.NewRequest("POST", "/quotations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["quote_number"].(string), "QUO-"))
	assert.Equal(t, "draft", data["status"])

	got, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got.ValidUntil)
	assert.Equal(t, "2024-02-15", got.ValidUntil.Format("2006-01-02"))
}

func TestQuotationHandler_Update_InvalidDate(t *testing.T) {
	r, s := newQuotationTestRouter()
	require.NoError(t, s.Create(context.Background(), &models.Quotation{
		QuoteNumber:  "QUO-1",
		CustomerName: "Acme",
		Amount:       100,
	}))

	body := `{"valid_until":"15/02/2024"}`
	req := httptest.NewRequest("PUT", "/quotations/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "日期格式错误")
}

func TestQuotationHandler_Update_Status(t *testing.T) {
	r, s := newQuotationTestRouter()
	require.NoError(t, s.Create(context.Background(), &models.Quotation{
		QuoteNumber:  "QUO-1",
		CustomerName: "Acme",
		Amount:       100,
	}))

	body := `{"status":"accepted"}`
	req := httptest.NewRequest("PUT", "/quotations/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	got, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.QuotationStatusAccepted, got.Status)
}
