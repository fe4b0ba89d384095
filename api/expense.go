package api

import (
	"time"

	"crm/database"
	"crm/export"
	"crm/filter"
	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 支出处理器
type ExpenseHandler struct {
	res *resource[models.Expense, *models.Expense]
}

// NewExpenseHandler 创建支出处理器
func NewExpenseHandler() *ExpenseHandler {
	return NewExpenseHandlerWithStore(store.NewGorm[models.Expense, *models.Expense](database.GetDB))
}

// NewExpenseHandlerWithStore 使用指定存储创建支出处理器（测试用）
func NewExpenseHandlerWithStore(s store.Store[models.Expense, *models.Expense]) *ExpenseHandler {
	return &ExpenseHandler{res: &resource[models.Expense, *models.Expense]{
		store: s,
		name:  "支出",
		searchable: func(e *models.Expense) []string {
			return []string{e.Title, e.Description, e.Vendor}
		},
		filterFields: filter.Fields[*models.Expense]{
			"category":       func(e *models.Expense) string { return e.Category },
			"status":         func(e *models.Expense) string { return e.Status },
			"payment_method": func(e *models.Expense) string { return e.PaymentMethod },
		},
		filterParams: []string{"category", "status", "payment_method"},
		amount:       func(e *models.Expense) float64 { return e.Amount },
		category:     func(e *models.Expense) string { return e.Category },
		status:       func(e *models.Expense) string { return e.Status },
		csvHeaders:   []string{"Title", "Amount", "Category", "Date", "Payment Method", "Description"},
		csvRow: func(e *models.Expense) []string {
			return []string{
				e.Title,
				export.Money(e.Amount),
				e.Category,
				e.ExpenseDate.Format("2006-01-02"),
				e.PaymentMethod,
				e.Description,
			}
		},
		csvFilename: "expenses.csv",
		deleteMode:  store.DeleteSoft,
	}}
}

// CreateExpenseRequest 创建支出请求
type CreateExpenseRequest struct {
	Title         string  `json:"title" binding:"required" example:"办公用品采购"`
	Amount        float64 `json:"amount" binding:"required,gte=0" example:"99.99"`
	Currency      string  `json:"currency" example:"USD"`
	Category      string  `json:"category" binding:"required" example:"office"`
	Description   string  `json:"description"`
	Vendor        string  `json:"vendor"`
	PaymentMethod string  `json:"payment_method" example:"card"`
	ReceiptURL    string  `json:"receipt_url"`
	ExpenseDate   string  `json:"expense_date" example:"2024-01-15"`
	Status        string  `json:"status" example:"pending"`
}

// UpdateExpenseRequest 更新支出请求，仅更新出现的字段
type UpdateExpenseRequest struct {
	Title         *string  `json:"title"`
	Amount        *float64 `json:"amount"`
	Currency      *string  `json:"currency"`
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	Vendor        *string  `json:"vendor"`
	PaymentMethod *string  `json:"payment_method"`
	ReceiptURL    *string  `json:"receipt_url"`
	ExpenseDate   *string  `json:"expense_date"`
	Status        *string  `json:"status"`
}

// Create 创建支出
// @Summary 创建支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "支出信息"
// @Success 201 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		t, err := parseDate(req.ExpenseDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		expenseDate = t
	}

	expense := models.Expense{
		Title:         req.Title,
		Amount:        req.Amount,
		Currency:      defaultString(req.Currency, "USD"),
		Category:      req.Category,
		Description:   req.Description,
		Vendor:        req.Vendor,
		PaymentMethod: req.PaymentMethod,
		ReceiptURL:    req.ReceiptURL,
		ExpenseDate:   expenseDate,
		Status:        defaultString(req.Status, models.ExpenseStatusPending),
	}

	if err := h.res.store.Create(c.Request.Context(), &expense); err != nil {
		StoreError(c, err, "创建支出失败")
		return
	}
	Created(c, "创建成功", expense)
}

// Update 更新支出
// @Summary 更新支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Param request body UpdateExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var expenseDate *time.Time
	if req.ExpenseDate != nil {
		t, err := parseDate(*req.ExpenseDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		expenseDate = &t
	}

	expense, err := h.res.store.Update(c.Request.Context(), id, func(e *models.Expense) {
		setString(&e.Title, req.Title)
		setFloat(&e.Amount, req.Amount)
		setString(&e.Currency, req.Currency)
		setString(&e.Category, req.Category)
		setString(&e.Description, req.Description)
		setString(&e.Vendor, req.Vendor)
		setString(&e.PaymentMethod, req.PaymentMethod)
		setString(&e.ReceiptURL, req.ReceiptURL)
		setString(&e.Status, req.Status)
		if expenseDate != nil {
			e.ExpenseDate = *expenseDate
		}
	})
	if err != nil {
		StoreError(c, err, "更新支出失败")
		return
	}
	SuccessWithMessage(c, "更新成功", expense)
}

// List 获取支出列表
// @Summary 获取支出列表
// @Description 支持 search 关键字搜索和 category/status/payment_method 筛选，默认不含已删除记录
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param search query string false "搜索关键字（标题/描述/供应商）"
// @Param category query string false "类别筛选"
// @Param status query string false "状态筛选"
// @Param payment_method query string false "支付方式筛选"
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) { h.res.list(c) }

// Get 获取单条支出
// @Summary 获取单条支出
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除支出（软删除）
// @Summary 删除支出
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) { h.res.remove(c) }

// GetStatistics 获取支出统计
// @Summary 获取支出统计
// @Description 对当前筛选条件下的支出计算总额、均值、最大类别和类别分布
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param search query string false "搜索关键字"
// @Param category query string false "类别筛选"
// @Param status query string false "状态筛选"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/expenses/statistics [get]
func (h *ExpenseHandler) GetStatistics(c *gin.Context) { h.res.statistics(c) }

// ExportCSV 导出支出为 CSV
// @Summary 导出支出
// @Tags 支出
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "CSV 文件"
// @Router /api/v1/expenses/export/csv [get]
func (h *ExpenseHandler) ExportCSV(c *gin.Context) { h.res.exportCSV(c) }

// GetCategories 获取支出类别列表
// @Summary 获取支出类别列表
// @Tags 支出
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/expenses/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	Success(c, models.GetExpenseCategories())
}
