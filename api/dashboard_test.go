package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStores() *Stores {
	return &Stores{
		Customers:    store.NewMemory[models.Customer, *models.Customer](),
		Services:     store.NewMemory[models.Service, *models.Service](),
		Transactions: store.NewMemory[models.Transaction, *models.Transaction](),
		Expenses:     store.NewMemory[models.Expense, *models.Expense](),
		Receipts:     store.NewMemory[models.Receipt, *models.Receipt](),
		Quotations:   store.NewMemory[models.Quotation, *models.Quotation](),
		TeamMembers:  store.NewMemory[models.TeamMember, *models.TeamMember](),
	}
}

func TestDashboardHandler_GetStatistics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newMemoryStores()
	ctx := context.Background()

	// 收入：completed income 计入，refund 扣减，pending 不计
	transactions := []*models.Transaction{
		{CustomerName: "Acme", Amount: 3000, Type: "income", Status: "completed", InvoiceNumber: "INV-1", TransactionDate: time.Now()},
		{CustomerName: "Acme", Amount: 500, Type: "refund", Status: "completed", InvoiceNumber: "INV-2", TransactionDate: time.Now()},
		{CustomerName: "Beta", Amount: 9999, Type: "income", Status: "pending", InvoiceNumber: "INV-3", TransactionDate: time.Now()},
	}
	for _, txn := range transactions {
		require.NoError(t, st.Transactions.Create(ctx, txn))
	}

	expenses := []*models.Expense{
		{Title: "chairs", Amount: 400, Category: "office", ExpenseDate: time.Now()},
		{Title: "figma", Amount: 100, Category: "software", ExpenseDate: time.Now()},
	}
	for _, e := range expenses {
		require.NoError(t, st.Expenses.Create(ctx, e))
	}

	require.NoError(t, st.Customers.Create(ctx, &models.Customer{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	}))

	// 软删除的记录不计入
	deleted := &models.Expense{Title: "old", Amount: 777, Category: "other", ExpenseDate: time.Now()}
	require.NoError(t, st.Expenses.Create(ctx, deleted))
	require.NoError(t, st.Expenses.Delete(ctx, deleted.ID, store.DeleteSoft))

	h := NewDashboardHandlerWithStores(st)
	r := gin.New()
	r.GET("/dashboard/statistics", h.GetStatistics)

	req := httptest.NewRequest("GET", "/dashboard/statistics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	assert.Equal(t, 2500.0, data["total_revenue"])
	assert.Equal(t, 500.0, data["total_expenses"])
	assert.Equal(t, 2000.0, data["net_profit"])
	assert.Equal(t, "office", data["top_expense_category"])

	counts := data["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["customers"])
	assert.Equal(t, float64(3), counts["transactions"])
	assert.Equal(t, float64(2), counts["expenses"])
	assert.Equal(t, float64(0), counts["services"])
}

func TestDashboardHandler_GetStatistics_Empty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDashboardHandlerWithStores(newMemoryStores())
	r := gin.New()
	r.GET("/dashboard/statistics", h.GetStatistics)

	req := httptest.NewRequest("GET", "/dashboard/statistics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	assert.Equal(t, 0.0, data["total_revenue"])
	assert.Equal(t, 0.0, data["net_profit"])
	assert.Equal(t, "N/A", data["top_expense_category"])
}
