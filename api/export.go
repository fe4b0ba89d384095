package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"crm/export"
	"crm/models"

	"github.com/gin-gonic/gin"
)

// ExportHandler 全量导出处理器
type ExportHandler struct {
	stores *Stores
}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return NewExportHandlerWithStores(NewStores())
}

// NewExportHandlerWithStores 使用指定存储创建导出处理器（测试用）
func NewExportHandlerWithStores(st *Stores) *ExportHandler {
	return &ExportHandler{stores: st}
}

// ExportExcel 导出全部资源为 Excel
// @Summary 导出全部数据为 Excel
// @Description 生成多工作表的 Excel 文件，每个资源一张表，不含已删除记录
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel 文件"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	ctx := c.Request.Context()

	customers, err := visible(ctx, h.stores.Customers, func(cu *models.Customer) string { return cu.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
		return
	}
	services, err := h.stores.Services.List(ctx)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
		return
	}
	transactions, err := visible(ctx, h.stores.Transactions, func(t *models.Transaction) string { return t.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
		return
	}
	expenses, err := visible(ctx, h.stores.Expenses, func(e *models.Expense) string { return e.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
		return
	}
	receipts, err := visible(ctx, h.stores.Receipts, func(r *models.Receipt) string { return r.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
		return
	}
	quotations, err := visible(ctx, h.stores.Quotations, func(q *models.Quotation) string { return q.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
		return
	}
	team, err := visible(ctx, h.stores.TeamMembers, func(m *models.TeamMember) string { return m.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
		return
	}

	sheets := []export.Sheet{
		customerSheet(customers),
		serviceSheet(services),
		transactionSheet(transactions),
		expenseSheet(expenses),
		receiptSheet(receipts),
		quotationSheet(quotations),
		teamSheet(team),
	}

	data, err := export.Excel(sheets)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}

	filename := fmt.Sprintf("crm_export_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func customerSheet(customers []*models.Customer) export.Sheet {
	rows := make([][]interface{}, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, []interface{}{
			cu.FirstName, cu.LastName, cu.Email, cu.Phone, cu.Company, cu.Status, cu.TotalSpent,
		})
	}
	return export.Sheet{
		Name:    "客户",
		Headers: []string{"First Name", "Last Name", "Email", "Phone", "Company", "Status", "Total Spent"},
		Rows:    rows,
	}
}

func serviceSheet(services []*models.Service) export.Sheet {
	rows := make([][]interface{}, 0, len(services))
	for _, sv := range services {
		duration := ""
		if sv.DurationValue > 0 {
			duration = fmt.Sprintf("%d %s", sv.DurationValue, sv.DurationUnit)
		}
		rows = append(rows, []interface{}{
			sv.Name, sv.Category, sv.Price, duration, sv.Status, sv.Description,
		})
	}
	return export.Sheet{
		Name:    "服务",
		Headers: []string{"Name", "Category", "Price", "Duration", "Status", "Description"},
		Rows:    rows,
	}
}

func transactionSheet(transactions []*models.Transaction) export.Sheet {
	rows := make([][]interface{}, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []interface{}{
			t.InvoiceNumber, t.CustomerName, t.Amount, t.Type, t.Status,
			t.PaymentMethod, t.TransactionDate.Format("2006-01-02"), t.Description,
		})
	}
	return export.Sheet{
		Name:    "交易",
		Headers: []string{"Invoice Number", "Customer", "Amount", "Type", "Status", "Payment Method", "Date", "Description"},
		Rows:    rows,
	}
}

func expenseSheet(expenses []*models.Expense) export.Sheet {
	rows := make([][]interface{}, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []interface{}{
			e.Title, e.Amount, e.Category, e.ExpenseDate.Format("2006-01-02"), e.PaymentMethod, e.Description,
		})
	}
	return export.Sheet{
		Name:    "支出",
		Headers: []string{"Title", "Amount", "Category", "Date", "Payment Method", "Description"},
		Rows:    rows,
	}
}

func receiptSheet(receipts []*models.Receipt) export.Sheet {
	rows := make([][]interface{}, 0, len(receipts))
	for _, r := range receipts {
		rows = append(rows, []interface{}{
			r.ReceiptNumber, r.CustomerName, r.CustomerEmail, r.Amount,
			r.IssueDate.Format("2006-01-02"), r.PaymentMethod, r.Status, r.Items,
		})
	}
	return export.Sheet{
		Name:    "收据",
		Headers: []string{"Receipt Number", "Customer", "Email", "Amount", "Date", "Payment Method", "Status", "Items"},
		Rows:    rows,
	}
}

func quotationSheet(quotations []*models.Quotation) export.Sheet {
	rows := make([][]interface{}, 0, len(quotations))
	for _, q := range quotations {
		validUntil := ""
		if q.ValidUntil != nil {
			validUntil = q.ValidUntil.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			q.QuoteNumber, q.CustomerName, q.CustomerEmail, q.Amount, q.Status, validUntil,
			q.CreatedAt.Format("2006-01-02"),
		})
	}
	return export.Sheet{
		Name:    "报价单",
		Headers: []string{"Quote Number", "Customer", "Email", "Amount", "Status", "Valid Until", "Date"},
		Rows:    rows,
	}
}

func teamSheet(team []*models.TeamMember) export.Sheet {
	rows := make([][]interface{}, 0, len(team))
	for _, m := range team {
		hireDate := ""
		if !m.HireDate.IsZero() {
			hireDate = m.HireDate.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			m.FirstName, m.LastName, m.Email, m.Position, m.Department, m.Role, m.Status, m.Salary, hireDate,
		})
	}
	return export.Sheet{
		Name:    "团队",
		Headers: []string{"First Name", "Last Name", "Email", "Position", "Department", "Role", "Status", "Salary", "Hire Date"},
		Rows:    rows,
	}
}
