package api

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportHandler_ExportExcel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newMemoryStores()
	ctx := context.Background()

	require.NoError(t, st.Customers.Create(ctx, &models.Customer{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Company: "Acme",
	}))
	require.NoError(t, st.Expenses.Create(ctx, &models.Expense{
		Title: "chairs", Amount: 400, Category: "office", ExpenseDate: time.Now(),
	}))

	// 软删除的支出不出现在导出中
	deleted := &models.Expense{Title: "old", Amount: 1, Category: "other", ExpenseDate: time.Now()}
	require.NoError(t, st.Expenses.Create(ctx, deleted))
	require.NoError(t, st.Expenses.Delete(ctx, deleted.ID, store.DeleteSoft))

	h := NewExportHandlerWithStores(st)
	r := gin.New()
	r.GET("/export/excel", h.ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	names := f.GetSheetList()
	assert.Equal(t, []string{"客户", "服务", "交易", "支出", "收据", "报价单", "团队"}, names)

	v, err := f.GetCellValue("客户", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jane", v)

	// 只有一条支出数据行
	rows, err := f.GetRows("支出")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "chairs", rows[1][0])
}
